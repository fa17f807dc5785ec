// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

// Package compression provides streaming compression and decompression for
// dataiter with a unified interface across formats (bzip2, gzip, xz, zstd,
// LZ4, S2). Codecs are selected through a process-wide registry keyed by
// format identifier; data flows either through whole-file open/create helpers
// or through chunk iterators with bounded memory.
package compression

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/kirku1g/dataiter/pkg/format"
)

var (
	// ErrUnsupportedFormat indicates the format has no registered capability
	// of the requested kind (unknown format, or e.g. a streaming compressor
	// requested for an archive-only format).
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrShortStream indicates the compressed input ended before the codec
	// reported a complete stream. Output produced so far is valid but partial.
	ErrShortStream = errors.New("truncated compressed stream")

	// ErrRegistrySealed indicates Register was called after the registry was
	// first consulted. Codecs must be registered during initialization.
	ErrRegistrySealed = errors.New("codec registry sealed after first use")

	// ErrDuplicateFormat indicates the format already has a registered codec.
	ErrDuplicateFormat = errors.New("format already registered")
)

// Codec associates a format with factories for its incremental decompressor
// and compressor. Either factory may be nil for formats that support only one
// direction; callers requesting the missing capability get
// ErrUnsupportedFormat.
type Codec struct {
	// Format is the identifier the codec is registered under.
	Format format.Format

	// NewReader wraps r with a fresh decompressor. The returned ReadCloser
	// owns only the codec state, not r.
	NewReader func(r io.Reader) (io.ReadCloser, error)

	// NewWriter wraps w with a fresh compressor. Closing the returned
	// WriteCloser flushes buffered data and the format trailer; it does not
	// close w.
	NewWriter func(w io.Writer) (io.WriteCloser, error)
}

// codecs is built by the per-format init functions in this package and sealed
// against mutation once any lookup has happened. It is read-only afterwards.
var codecs = map[format.Format]Codec{}

var sealed atomic.Bool

// Register adds a codec for a format not already covered. It is intended for
// init-time extension with additional formats and must happen before the
// registry is first consulted; later calls return ErrRegistrySealed.
// Register is not safe for concurrent use with lookups.
func Register(c Codec) error {
	if sealed.Load() {
		return fmt.Errorf("register %s: %w", c.Format, ErrRegistrySealed)
	}
	if c.Format == format.None || c.Format == "" {
		return fmt.Errorf("register %q: invalid format", c.Format)
	}
	if _, ok := codecs[c.Format]; ok {
		return fmt.Errorf("register %s: %w", c.Format, ErrDuplicateFormat)
	}
	if c.NewReader == nil && c.NewWriter == nil {
		return fmt.Errorf("register %s: codec has no capabilities", c.Format)
	}
	codecs[c.Format] = c
	return nil
}

func mustRegister(c Codec) {
	if err := Register(c); err != nil {
		panic(err)
	}
}

// Lookup returns the codec registered for the format. The first call seals
// the registry.
func Lookup(f format.Format) (Codec, error) {
	sealed.Store(true)
	c, ok := codecs[f]
	if !ok {
		return Codec{}, fmt.Errorf("%s: %w", f, ErrUnsupportedFormat)
	}
	return c, nil
}

// Registered reports whether the format has a codec, without distinguishing
// capabilities.
func Registered(f format.Format) bool {
	sealed.Store(true)
	_, ok := codecs[f]
	return ok
}

// NewReader wraps r with a fresh decompressor for the format.
func NewReader(f format.Format, r io.Reader) (io.ReadCloser, error) {
	c, err := Lookup(f)
	if err != nil {
		return nil, err
	}
	if c.NewReader == nil {
		return nil, fmt.Errorf("%s: no streaming decompressor: %w", f, ErrUnsupportedFormat)
	}
	rc, err := c.NewReader(r)
	if err != nil {
		// Codecs that read their header eagerly report a truncated source
		// here rather than on the first read.
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%s: %w: %s", f, ErrShortStream, err)
		}
		return nil, fmt.Errorf("%s: %w", f, err)
	}
	return rc, nil
}

// NewWriter wraps w with a fresh compressor for the format.
func NewWriter(f format.Format, w io.Writer) (io.WriteCloser, error) {
	c, err := Lookup(f)
	if err != nil {
		return nil, err
	}
	if c.NewWriter == nil {
		return nil, fmt.Errorf("%s: no streaming compressor: %w", f, ErrUnsupportedFormat)
	}
	wc, err := c.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f, err)
	}
	return wc, nil
}
