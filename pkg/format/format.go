// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

// Package format defines the compression and archive format identifiers used
// throughout dataiter and resolves identifiers from file extensions.
package format

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a compression codec or archive container.
//
// The identifier spelling doubles as the file extension that selects it, so
// every format registered for streaming is resolvable from a path suffix of
// the same spelling ("data.csv.bz2" selects Bzip2).
type Format string

const (
	// None indicates no compression; files open as plain byte streams.
	None Format = "none"
	// Bzip2 uses the bzip2 compression format (slow, high ratio).
	Bzip2 Format = "bz2"
	// Gzip uses the gzip compression format.
	Gzip Format = "gz"
	// XZ uses the xz/LZMA2 compression format.
	XZ Format = "xz"
	// Zstd uses the Zstandard compression format (balanced speed/ratio).
	Zstd Format = "zst"
	// LZ4 uses the LZ4 frame format (fast, moderate ratio).
	LZ4 Format = "lz4"
	// S2 uses klauspost's S2 format (Snappy-compatible, faster).
	S2 Format = "s2"
	// Zip is the zip archive container. Zip is not a streaming codec; it is
	// readable only through the archive layer.
	Zip Format = "zip"
)

// All lists every defined format, None first.
func All() []Format {
	return []Format{None, Bzip2, Gzip, XZ, Zstd, LZ4, S2, Zip}
}

// IsValid returns true if the format is one of the defined identifiers.
func (f Format) IsValid() bool {
	switch f {
	case None, Bzip2, Gzip, XZ, Zstd, LZ4, S2, Zip:
		return true
	default:
		return false
	}
}

// String returns the identifier spelling of the format.
func (f Format) String() string {
	return string(f)
}

// Extension returns the file extension for the format, including the leading
// dot ("" for None).
func (f Format) Extension() string {
	if f == None {
		return ""
	}
	return "." + string(f)
}

// Parse converts an identifier string into a Format. Matching is
// case-insensitive. Unlike FromPath, an unrecognized identifier is an error:
// Parse handles explicit user input, not path resolution.
func Parse(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !f.IsValid() {
		return None, fmt.Errorf("unknown format %q", s)
	}
	return f, nil
}

// FromPath resolves a format from the path's final extension. The extension
// is lowercased and matched without its leading dot. Paths with no extension
// or an unrecognized one resolve to None: unknown suffixes mean a plain file,
// not an error.
//
// Only the final extension is considered, so "logs.tar.gz" resolves to Gzip;
// the ".tar" step is not interpreted.
func FromPath(path string) Format {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if f := Format(ext); ext != "" && f != None && f.IsValid() {
		return f
	}
	return None
}
