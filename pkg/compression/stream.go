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

// DefaultChunkSize is the chunk granularity used when reading streams through
// ReaderChunks without an explicit size.
const DefaultChunkSize = 4 << 20 // 4MB

// readBufSize is the output granularity of decompression iterators.
const readBufSize = 64 << 10

// ChunkIterator is a pull-based sequence of byte chunks. Next returns io.EOF
// after the final chunk; any other error terminates the sequence. Chunks are
// delivered in order, may be empty, and are never re-read: the sequence is
// finite, forward-only, and not restartable once consumed.
type ChunkIterator interface {
	Next() ([]byte, error)
}

// Chunks returns an iterator over the given in-memory chunks.
func Chunks(chunks ...[]byte) ChunkIterator {
	return &sliceChunks{chunks: chunks}
}

type sliceChunks struct {
	chunks [][]byte
	next   int
}

func (s *sliceChunks) Next() ([]byte, error) {
	if s.next >= len(s.chunks) {
		return nil, io.EOF
	}
	c := s.chunks[s.next]
	s.next++
	return c, nil
}

// ReaderChunks returns an iterator that reads r in chunks of up to size bytes
// (DefaultChunkSize if size <= 0). Each chunk is freshly allocated; the final
// chunk may be shorter.
func ReaderChunks(r io.Reader, size int) ChunkIterator {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &readerChunks{r: r, size: size}
}

type readerChunks struct {
	r    io.Reader
	size int
	done bool
}

func (rc *readerChunks) Next() ([]byte, error) {
	if rc.done {
		return nil, io.EOF
	}
	buf := make([]byte, rc.size)
	n, err := io.ReadFull(rc.r, buf)
	switch {
	case err == nil:
		return buf[:n], nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		rc.done = true
		return buf[:n], nil
	case errors.Is(err, io.EOF):
		rc.done = true
		return nil, io.EOF
	default:
		rc.done = true
		return nil, err
	}
}

// Copy drains src, writing every chunk to dst in order. It returns the number
// of bytes written and the first error from either side.
func Copy(dst io.Writer, src ChunkIterator) (int64, error) {
	var written int64
	for {
		chunk, err := src.Next()
		if err == io.EOF {
			return written, nil
		}
		if err != nil {
			return written, err
		}
		if len(chunk) == 0 {
			continue
		}
		n, err := dst.Write(chunk)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
}

// CompressChunks returns an iterator producing the compressed form of src in
// the given format. A fresh compressor backs each call. Formats without a
// streaming compressor (zip, none) fail immediately with ErrUnsupportedFormat.
//
// Output chunk i reflects input chunks 0..i and nothing after; a chunk may be
// empty while the codec buffers internally. After src is exhausted the
// iterator yields exactly one more chunk holding the codec's flushed tail and
// trailer, then io.EOF. Production is driven entirely by Next: nothing is
// read from src ahead of demand, and no goroutines are involved.
func CompressChunks(f format.Format, src ChunkIterator) (ChunkIterator, error) {
	c, err := Lookup(f)
	if err != nil {
		return nil, err
	}
	if c.NewWriter == nil {
		return nil, fmt.Errorf("%s: no streaming compressor: %w", f, ErrUnsupportedFormat)
	}
	return &compressChunks{newWriter: c.NewWriter, f: f, src: src}, nil
}

type compressChunks struct {
	newWriter func(io.Writer) (io.WriteCloser, error)
	f         format.Format
	src       ChunkIterator
	buf       bytes.Buffer
	w         io.WriteCloser
	bytesIn   int64
	bytesOut  int64
	done      bool
	err       error
}

func (c *compressChunks) Next() ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.done {
		return nil, io.EOF
	}
	if c.w == nil {
		w, err := c.newWriter(&c.buf)
		if err != nil {
			return nil, c.fail(fmt.Errorf("%s: %w", c.f, err))
		}
		c.w = w
	}
	chunk, err := c.src.Next()
	switch {
	case err == io.EOF:
		// Final pull: flush the codec and emit whatever it held back.
		c.done = true
		if err := c.w.Close(); err != nil {
			return nil, c.fail(fmt.Errorf("%s: close: %w", c.f, err))
		}
		out := c.take()
		recordCompression(c.f, c.bytesIn, c.bytesOut)
		return out, nil
	case err != nil:
		c.w.Close()
		return nil, c.fail(err)
	}
	if _, err := c.w.Write(chunk); err != nil {
		c.w.Close()
		return nil, c.fail(fmt.Errorf("%s: %w", c.f, err))
	}
	c.bytesIn += int64(len(chunk))
	return c.take(), nil
}

// take hands out a copy of the buffered codec output; the buffer's backing
// array is reused for the next chunk.
func (c *compressChunks) take() []byte {
	out := bytes.Clone(c.buf.Bytes())
	c.buf.Reset()
	c.bytesOut += int64(len(out))
	return out
}

func (c *compressChunks) fail(err error) error {
	c.err = err
	c.done = true
	return err
}

// DecompressChunks returns an iterator producing the decompressed form of
// src in the given format. A fresh decompressor backs each call; formats
// without a streaming decompressor fail immediately with
// ErrUnsupportedFormat.
//
// Output chunk boundaries follow read granularity, not input chunk
// boundaries. Completion comes from the codec's own end-of-stream signal: if
// src runs out before the codec sees a complete stream, Next fails with an
// error matching ErrShortStream instead of silently truncating.
func DecompressChunks(f format.Format, src ChunkIterator) (ChunkIterator, error) {
	c, err := Lookup(f)
	if err != nil {
		return nil, err
	}
	if c.NewReader == nil {
		return nil, fmt.Errorf("%s: no streaming decompressor: %w", f, ErrUnsupportedFormat)
	}
	return &decompressChunks{
		newReader: c.NewReader,
		f:         f,
		src:       &iteratorReader{src: src},
		buf:       make([]byte, readBufSize),
	}, nil
}

type decompressChunks struct {
	newReader func(io.Reader) (io.ReadCloser, error)
	f         format.Format
	src       *iteratorReader
	rc        io.ReadCloser
	buf       []byte
	bytesOut  int64
	done      bool
	err       error
}

func (c *decompressChunks) Next() ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.done {
		return nil, io.EOF
	}
	if c.rc == nil {
		// Codecs read headers eagerly, so construction waits for the first
		// pull. An input that ends inside the header is already short.
		rc, err := c.newReader(c.src)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				err = fmt.Errorf("%s: %w: %s", c.f, ErrShortStream, err)
			} else {
				err = fmt.Errorf("%s: %w", c.f, err)
			}
			return nil, c.fail(err)
		}
		c.rc = rc
	}
	for {
		n, err := c.rc.Read(c.buf)
		if n > 0 {
			c.bytesOut += int64(n)
			if err != nil {
				c.settle(err)
			}
			return bytes.Clone(c.buf[:n]), nil
		}
		if err == nil {
			continue
		}
		c.settle(err)
		if c.err != nil {
			return nil, c.err
		}
		return nil, io.EOF
	}
}

// settle records the codec's terminal condition and releases it exactly once.
func (c *decompressChunks) settle(err error) {
	if c.rc != nil {
		c.rc.Close()
		c.rc = nil
	}
	if errors.Is(err, io.EOF) {
		// Some codecs report a clean end on zero input. No bytes consumed
		// means no stream was present at all.
		if c.src.read == 0 {
			c.fail(fmt.Errorf("%s: %w: empty input", c.f, ErrShortStream))
			return
		}
		c.done = true
		recordDecompression(c.f, c.src.read, c.bytesOut)
		return
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = fmt.Errorf("%s: %w: %s", c.f, ErrShortStream, err)
	} else {
		err = fmt.Errorf("%s: %w", c.f, err)
	}
	c.fail(err)
}

func (c *decompressChunks) fail(err error) error {
	c.err = err
	c.done = true
	return err
}

// iteratorReader adapts a ChunkIterator to io.Reader for codec readers,
// skipping empty chunks and keeping a byte count.
type iteratorReader struct {
	src  ChunkIterator
	rem  []byte
	err  error
	read int64
}

func (r *iteratorReader) Read(p []byte) (int, error) {
	for len(r.rem) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		chunk, err := r.src.Next()
		if err != nil {
			r.err = err
			return 0, err
		}
		r.read += int64(len(chunk))
		r.rem = chunk
	}
	n := copy(p, r.rem)
	r.rem = r.rem[n:]
	return n, nil
}
