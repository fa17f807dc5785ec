// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/kirku1g/dataiter/pkg/format"
)

// Compress compresses data in one shot using the format's streaming
// compressor.
func Compress(f format.Format, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := NewWriter(f, &buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("%s: %w", f, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%s: close: %w", f, err)
	}
	recordCompression(f, int64(len(data)), int64(buf.Len()))
	return buf.Bytes(), nil
}

// Decompress decompresses data in one shot using the format's streaming
// decompressor. Truncated input fails with an error matching ErrShortStream.
func Decompress(f format.Format, data []byte) ([]byte, error) {
	if _, err := Lookup(f); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w: empty input", f, ErrShortStream)
	}
	rc, err := NewReader(f, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	out, err := io.ReadAll(rc)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%s: %w: %s", f, ErrShortStream, err)
		}
		return nil, fmt.Errorf("%s: %w", f, err)
	}
	recordDecompression(f, int64(len(data)), int64(len(out)))
	return out, nil
}

// CompressionRatio calculates the compression ratio (original / compressed).
// Returns 1.0 if compressed size is zero or larger than original.
func CompressionRatio(originalSize, compressedSize int64) float64 {
	if compressedSize <= 0 || compressedSize >= originalSize {
		return 1.0
	}
	return float64(originalSize) / float64(compressedSize)
}
