// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirku1g/dataiter/pkg/compression"
	"github.com/kirku1g/dataiter/pkg/format"
)

// assertNoLeftovers fails if the directory holds stray temp files.
func assertNoLeftovers(t *testing.T, dir string) {
	t.Helper()
	leftovers, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestCompressDecompressFiles(t *testing.T) {
	content := strings.Repeat("csv,data,to,compress\n", 2000)

	for _, f := range []format.Format{format.Bzip2, format.Gzip, format.Zstd} {
		t.Run(f.String(), func(t *testing.T) {
			dir := t.TempDir()
			input := filepath.Join(dir, "data.csv")
			require.NoError(t, os.WriteFile(input, []byte(content), 0o644))

			compressed := input + f.Extension()
			res, err := compressFile(input, compressed, f, 0)
			require.NoError(t, err)
			assert.Equal(t, int64(len(content)), res.bytesIn)

			raw, err := os.ReadFile(compressed)
			require.NoError(t, err)
			assert.Equal(t, int64(len(raw)), res.bytesOut)
			assert.Less(t, len(raw), len(content))

			restored := filepath.Join(dir, "restored.csv")
			dres, err := decompressFile(compressed, restored, f, 0)
			require.NoError(t, err)
			assert.Equal(t, int64(len(content)), dres.bytesOut)

			got, err := os.ReadFile(restored)
			require.NoError(t, err)
			assert.Equal(t, content, string(got))

			assertNoLeftovers(t, dir)
		})
	}
}

func TestCompressFileBzip2Magic(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(input, []byte("magic check"), 0o644))

	output := input + ".bz2"
	_, err := compressFile(input, output, format.Bzip2, 0)
	require.NoError(t, err)

	raw, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "BZh"))
}

func TestCompressFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := compressFile(filepath.Join(dir, "absent.csv"), filepath.Join(dir, "out.bz2"), format.Bzip2, 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assertNoLeftovers(t, dir)
}

func TestCompressFileUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0o644))

	output := filepath.Join(dir, "out.zip")
	_, err := compressFile(input, output, format.Zip, 0)
	assert.ErrorIs(t, err, compression.ErrUnsupportedFormat)

	_, statErr := os.Stat(output)
	assert.ErrorIs(t, statErr, os.ErrNotExist, "no output file on failure")
	assertNoLeftovers(t, dir)
}

func TestDecompressFileTruncated(t *testing.T) {
	dir := t.TempDir()
	compressed, err := compression.Compress(format.Gzip, []byte(strings.Repeat("truncated ", 1000)))
	require.NoError(t, err)

	input := filepath.Join(dir, "cut.gz")
	require.NoError(t, os.WriteFile(input, compressed[:len(compressed)/2], 0o644))

	output := filepath.Join(dir, "cut")
	_, err = decompressFile(input, output, format.Gzip, 0)
	assert.ErrorIs(t, err, compression.ErrShortStream)

	_, statErr := os.Stat(output)
	assert.ErrorIs(t, statErr, os.ErrNotExist, "no partial output on failure")
	assertNoLeftovers(t, dir)
}

func TestCommandRoundTrip(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("round trip through the cobra commands\n", 500)
	input := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(input, []byte(content), 0o644))

	compressed := filepath.Join(dir, "data.txt.gz")
	rootCmd.SetArgs([]string{"compress", input, "-f", "gz", "-o", compressed})
	require.NoError(t, rootCmd.Execute())

	restored := filepath.Join(dir, "restored.txt")
	rootCmd.SetArgs([]string{"decompress", compressed, "-o", restored})
	require.NoError(t, rootCmd.Execute())

	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

// resetFlags restores named flags to their defaults. Flag state on the
// package-level commands persists across Execute calls.
func resetFlags(t *testing.T, cmd *cobra.Command, names ...string) {
	t.Helper()
	for _, name := range names {
		fl := cmd.Flags().Lookup(name)
		require.NotNil(t, fl)
		require.NoError(t, fl.Value.Set(fl.DefValue))
		fl.Changed = false
	}
}

func TestCommandDefaultOutputNaming(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "table.csv")
	require.NoError(t, os.WriteFile(input, []byte("a,b,c\n"), 0o644))

	// Without -o the compressed file lands next to the input with the
	// format's extension appended.
	resetFlags(t, compressCmd, "output")
	rootCmd.SetArgs([]string{"compress", "-f", "gz", input})
	require.NoError(t, rootCmd.Execute())
	compressed := input + ".gz"
	require.FileExists(t, compressed)

	// Without -o decompression strips the extension, restoring the
	// original path.
	require.NoError(t, os.Remove(input))
	resetFlags(t, decompressCmd, "output")
	rootCmd.SetArgs([]string{"decompress", compressed})
	require.NoError(t, rootCmd.Execute())

	got, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, "a,b,c\n", string(got))
	assertNoLeftovers(t, dir)
}
