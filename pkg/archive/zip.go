// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
)

// zipArchive adapts archive/zip to the Archive interface.
type zipArchive struct {
	rc *zip.ReadCloser
}

func openZip(path string) (Archive, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("zip: %w", err)
	}
	return &zipArchive{rc: rc}, nil
}

func (z *zipArchive) Names() []string {
	names := make([]string, 0, len(z.rc.File))
	for _, f := range z.rc.File {
		names = append(names, f.Name)
	}
	return names
}

func (z *zipArchive) OpenMember(name string) (io.ReadCloser, error) {
	for _, f := range z.rc.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("zip: open %s: %w", name, err)
			}
			return rc, nil
		}
	}
	return nil, fmt.Errorf("zip: %s: %w", name, fs.ErrNotExist)
}

func (z *zipArchive) Close() error {
	return z.rc.Close()
}
