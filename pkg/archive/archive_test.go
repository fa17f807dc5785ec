// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirku1g/dataiter/pkg/compression"
	"github.com/kirku1g/dataiter/pkg/format"
)

type zipMember struct {
	name    string
	content string
}

func writeZip(t *testing.T, members ...zipMember) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.zip")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, m := range members {
		w, err := zw.Create(m.name)
		require.NoError(t, err)
		if m.content != "" {
			_, err = io.WriteString(w, m.content)
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestRegistered(t *testing.T) {
	assert.True(t, Registered(format.Zip))
	assert.False(t, Registered(format.Gzip))
	assert.False(t, Registered(format.None))
}

func TestOpenUnsupportedFormat(t *testing.T) {
	_, err := Open(format.Gzip, "whatever.gz")
	assert.ErrorIs(t, err, compression.ErrUnsupportedFormat)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(format.Zip, filepath.Join(t.TempDir(), "nope.zip"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNamesAndOpenMember(t *testing.T) {
	path := writeZip(t,
		zipMember{name: "first.txt", content: "first"},
		zipMember{name: "second.txt", content: "second"},
	)

	a, err := Open(format.Zip, path)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, []string{"first.txt", "second.txt"}, a.Names())

	rc, err := a.OpenMember("second.txt")
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "second", string(content))

	_, err = a.OpenMember("missing.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOpenSoleSingleMember(t *testing.T) {
	path := writeZip(t, zipMember{name: "data.txt", content: "abc"})

	rc, err := OpenSole(format.Zip, path)
	require.NoError(t, err)

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(content))
	assert.NoError(t, rc.Close())
}

func TestOpenSoleEmptyArchive(t *testing.T) {
	path := writeZip(t)

	_, err := OpenSole(format.Zip, path)
	assert.ErrorIs(t, err, ErrNotSingleMember)
}

func TestOpenSoleMultipleMembers(t *testing.T) {
	path := writeZip(t,
		zipMember{name: "a.txt", content: "a"},
		zipMember{name: "b.txt", content: "b"},
	)

	_, err := OpenSole(format.Zip, path)
	assert.ErrorIs(t, err, ErrNotSingleMember)
	assert.Contains(t, err.Error(), "2 members")
}

func TestOpenSoleCountsDirectoryEntries(t *testing.T) {
	// A lone file under a directory entry is still two members.
	path := writeZip(t,
		zipMember{name: "dir/"},
		zipMember{name: "dir/data.txt", content: "abc"},
	)

	_, err := OpenSole(format.Zip, path)
	assert.ErrorIs(t, err, ErrNotSingleMember)
}

func TestOpenSoleLargeMember(t *testing.T) {
	content := strings.Repeat("zip round trip payload ", 10000)
	path := writeZip(t, zipMember{name: "big.txt", content: content})

	rc, err := OpenSole(format.Zip, path)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

type closeRecorder struct {
	io.Reader
	log  *[]string
	name string
	err  error
}

func (c *closeRecorder) Close() error {
	*c.log = append(*c.log, c.name)
	return c.err
}

type stubArchive struct {
	closeRecorder
}

func (s *stubArchive) Names() []string { return []string{"m"} }

func (s *stubArchive) OpenMember(string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func TestMemberCloseClosesArchive(t *testing.T) {
	var log []string
	m := &memberReader{
		member:  &closeRecorder{log: &log, name: "member"},
		archive: &stubArchive{closeRecorder: closeRecorder{log: &log, name: "archive"}},
	}

	require.NoError(t, m.Close())
	assert.Equal(t, []string{"member", "archive"}, log, "member releases before the archive")
}

func TestMemberCloseReportsFirstError(t *testing.T) {
	memberErr := io.ErrClosedPipe
	var log []string
	m := &memberReader{
		member:  &closeRecorder{log: &log, name: "member", err: memberErr},
		archive: &stubArchive{closeRecorder: closeRecorder{log: &log, name: "archive"}},
	}

	assert.ErrorIs(t, m.Close(), memberErr)
	assert.Equal(t, []string{"member", "archive"}, log, "archive is released even when the member close fails")
}
