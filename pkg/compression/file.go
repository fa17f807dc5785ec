// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

package compression

import (
	"fmt"
	"io"
	"os"

	"github.com/kirku1g/dataiter/pkg/format"
)

// Open opens path for reading, decompressing according to the path's
// extension. Unrecognized extensions open as plain files. Closing the
// returned stream releases the codec and the underlying file.
func Open(path string) (io.ReadCloser, error) {
	return OpenFormat(format.FromPath(path), path)
}

// OpenFormat opens path for reading with an explicit format, ignoring the
// path's extension. format.None reads the file as-is.
func OpenFormat(f format.Format, path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if f == format.None {
		return file, nil
	}
	rc, err := NewReader(f, file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &stackedReader{ReadCloser: rc, file: file}, nil
}

// Create creates path for writing, compressing according to the path's
// extension. Unrecognized extensions create plain files. Closing the
// returned stream flushes the codec trailer and releases the file.
func Create(path string) (io.WriteCloser, error) {
	return CreateFormat(format.FromPath(path), path)
}

// CreateFormat creates path for writing with an explicit format, ignoring
// the path's extension. format.None writes the file as-is.
func CreateFormat(f format.Format, path string) (io.WriteCloser, error) {
	if f == format.None {
		return os.Create(path)
	}

	// Validate the format first; os.Create truncates an existing file.
	c, err := Lookup(f)
	if err != nil {
		return nil, err
	}
	if c.NewWriter == nil {
		return nil, fmt.Errorf("%s: no streaming compressor: %w", f, ErrUnsupportedFormat)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	wc, err := c.NewWriter(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%s: %w", f, err)
	}
	return &stackedWriter{WriteCloser: wc, file: file}, nil
}

// stackedReader couples a codec stream with the file beneath it so a single
// Close releases both, codec first.
type stackedReader struct {
	io.ReadCloser
	file io.Closer
}

func (r *stackedReader) Close() error {
	err := r.ReadCloser.Close()
	if ferr := r.file.Close(); err == nil {
		err = ferr
	}
	return err
}

// stackedWriter couples a codec stream with the file beneath it. Close
// finalizes the codec (writing any trailer) before closing the file.
type stackedWriter struct {
	io.WriteCloser
	file io.Closer
}

func (w *stackedWriter) Close() error {
	err := w.WriteCloser.Close()
	if ferr := w.file.Close(); err == nil {
		err = ferr
	}
	return err
}
