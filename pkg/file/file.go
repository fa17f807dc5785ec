// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

// Package file opens data files for reading without the caller knowing how
// they are stored. The extension decides: a streaming compression extension
// decompresses on the fly, an archive extension opens the archive's sole
// member, anything else reads the raw bytes. Text mode additionally decodes
// the stream as UTF-8.
package file

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/kirku1g/dataiter/pkg/archive"
	"github.com/kirku1g/dataiter/pkg/compression"
	"github.com/kirku1g/dataiter/pkg/format"
)

// Mode selects how the opened stream decodes its bytes.
type Mode string

const (
	// ModeText decodes the stream as UTF-8 text, stripping a leading BOM.
	ModeText Mode = "r"
	// ModeBinary returns the stream's bytes untouched.
	ModeBinary Mode = "rb"
)

// ErrInvalidMode reports a mode other than ModeText or ModeBinary. It fires
// before any filesystem access.
var ErrInvalidMode = errors.New("invalid mode")

// Open opens the file at path for reading, transparently decompressing or
// unpacking based on the extension. Closing the returned stream releases
// every underlying resource.
func Open(path string, mode Mode) (io.ReadCloser, error) {
	switch mode {
	case ModeText, ModeBinary:
	default:
		return nil, fmt.Errorf("%q: %w (want %q or %q)", mode, ErrInvalidMode, ModeText, ModeBinary)
	}

	f := format.FromPath(path)
	var (
		rc  io.ReadCloser
		err error
	)
	if archive.Registered(f) {
		rc, err = archive.OpenSole(f, path)
	} else {
		rc, err = compression.OpenFormat(f, path)
	}
	if err != nil {
		return nil, err
	}

	if mode == ModeText {
		return newTextReader(rc), nil
	}
	return rc, nil
}

// newTextReader layers a UTF-8 decoder over rc. A leading byte order mark is
// dropped and invalid sequences are replaced rather than surfaced as errors.
func newTextReader(rc io.ReadCloser) io.ReadCloser {
	return &textReader{
		r:  transform.NewReader(rc, unicode.UTF8BOM.NewDecoder()),
		rc: rc,
	}
}

// textReader keeps the decoded view and the raw stream together so Close
// reaches the original resource.
type textReader struct {
	r  io.Reader
	rc io.ReadCloser
}

func (t *textReader) Read(p []byte) (int, error) {
	return t.r.Read(p)
}

func (t *textReader) Close() error {
	return t.rc.Close()
}
