// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

package compression

import (
	"io"

	"github.com/klauspost/compress/s2"

	"github.com/kirku1g/dataiter/pkg/format"
)

func init() {
	mustRegister(Codec{
		Format:    format.S2,
		NewReader: newS2Reader,
		NewWriter: newS2Writer,
	})
}

func newS2Reader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}

func newS2Writer(w io.Writer) (io.WriteCloser, error) {
	return s2.NewWriter(w, s2.WriterConcurrency(1)), nil
}
