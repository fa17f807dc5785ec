// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

package compression

import (
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/kirku1g/dataiter/pkg/format"
)

func init() {
	mustRegister(Codec{
		Format:    format.LZ4,
		NewReader: newLZ4Reader,
		NewWriter: newLZ4Writer,
	})
}

func newLZ4Reader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}

func newLZ4Writer(w io.Writer) (io.WriteCloser, error) {
	return lz4.NewWriter(w), nil
}
