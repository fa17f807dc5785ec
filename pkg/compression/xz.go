// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

package compression

import (
	"io"

	"github.com/ulikunitz/xz"

	"github.com/kirku1g/dataiter/pkg/format"
)

func init() {
	mustRegister(Codec{
		Format:    format.XZ,
		NewReader: newXZReader,
		NewWriter: newXZWriter,
	})
}

func newXZReader(r io.Reader) (io.ReadCloser, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(xr), nil
}

func newXZWriter(w io.Writer) (io.WriteCloser, error) {
	return xz.NewWriter(w)
}
