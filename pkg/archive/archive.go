// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

// Package archive opens container formats that hold named members, such as
// zip. Containers differ from streaming codecs: they cannot be read as a
// single byte stream, so they are accessed through a handle that lists
// members and opens them individually.
package archive

import (
	"errors"
	"fmt"
	"io"

	"github.com/kirku1g/dataiter/pkg/compression"
	"github.com/kirku1g/dataiter/pkg/format"
)

// ErrNotSingleMember reports an archive whose member count is not exactly
// one. Transparent reads treat such archives as ambiguous rather than
// guessing which member was meant.
var ErrNotSingleMember = errors.New("not a single-member archive")

// Archive is an open container handle. Close releases the handle and every
// resource behind it.
type Archive interface {
	// Names lists the member names in archive order, directories included.
	Names() []string

	// OpenMember opens the named member for reading.
	OpenMember(name string) (io.ReadCloser, error)

	Close() error
}

type openerFunc func(path string) (Archive, error)

var openers = map[format.Format]openerFunc{
	format.Zip: openZip,
}

// Registered reports whether f has an archive opener.
func Registered(f format.Format) bool {
	_, ok := openers[f]
	return ok
}

// Open opens the archive at path in the given format.
func Open(f format.Format, path string) (Archive, error) {
	open, ok := openers[f]
	if !ok {
		return nil, fmt.Errorf("%s: no archive opener: %w", f, compression.ErrUnsupportedFormat)
	}
	return open(path)
}

// OpenSole opens the single member of the archive at path and returns its
// stream. The stream owns the archive handle: closing the stream closes the
// member and then the archive. Archives with zero or multiple members fail
// with ErrNotSingleMember and the handle is released before returning.
func OpenSole(f format.Format, path string) (io.ReadCloser, error) {
	a, err := Open(f, path)
	if err != nil {
		return nil, err
	}
	names := a.Names()
	if len(names) != 1 {
		a.Close()
		return nil, fmt.Errorf("%s: %d members: %w", path, len(names), ErrNotSingleMember)
	}
	member, err := a.OpenMember(names[0])
	if err != nil {
		a.Close()
		return nil, err
	}
	return &memberReader{member: member, archive: a}, nil
}

// memberReader couples a member stream to its archive handle so one Close
// releases both, member first.
type memberReader struct {
	member  io.ReadCloser
	archive Archive
}

func (m *memberReader) Read(p []byte) (int, error) {
	return m.member.Read(p)
}

func (m *memberReader) Close() error {
	err := m.member.Close()
	if cerr := m.archive.Close(); err == nil {
		err = cerr
	}
	return err
}
