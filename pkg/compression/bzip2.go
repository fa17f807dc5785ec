// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

package compression

import (
	"compress/bzip2"
	"io"

	dbzip2 "github.com/dsnet/compress/bzip2"

	"github.com/kirku1g/dataiter/pkg/format"
)

func init() {
	mustRegister(Codec{
		Format:    format.Bzip2,
		NewReader: newBzip2Reader,
		NewWriter: newBzip2Writer,
	})
}

// The standard library only decompresses bzip2; writing goes through
// github.com/dsnet/compress.
func newBzip2Reader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(bzip2.NewReader(r)), nil
}

func newBzip2Writer(w io.Writer) (io.WriteCloser, error) {
	return dbzip2.NewWriter(w, &dbzip2.WriterConfig{Level: dbzip2.DefaultCompression})
}
