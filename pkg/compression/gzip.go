// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

package compression

import (
	"compress/gzip"
	"io"

	"github.com/kirku1g/dataiter/pkg/format"
)

func init() {
	mustRegister(Codec{
		Format:    format.Gzip,
		NewReader: newGzipReader,
		NewWriter: newGzipWriter,
	})
}

func newGzipReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func newGzipWriter(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriter(w), nil
}
