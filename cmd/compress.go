// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/kirku1g/dataiter/pkg/compression"
	"github.com/kirku1g/dataiter/pkg/format"
	"github.com/kirku1g/dataiter/pkg/logger"
	"github.com/kirku1g/dataiter/pkg/utils"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var compressCmd = &cobra.Command{
	Use:   "compress <input>",
	Short: "Compress a file",
	Long: `Compress a file with one of the streaming formats.

The output path defaults to the input path plus the format's extension.
Data streams through a hidden temp file that is renamed into place once
the compressed stream is complete, so a failed run never leaves a
truncated output behind.

Example:
  dataiter compress measurements.csv
  dataiter compress -f zst -o /tmp/out.zst measurements.csv`,
	Args: cobra.ExactArgs(1),
	Run:  runCompress,
}

func init() {
	rootCmd.AddCommand(compressCmd)

	compressCmd.Flags().StringP("format", "f", string(format.Bzip2), "Compression format ("+formatList()+")")
	compressCmd.Flags().StringP("output", "o", "", "Output file path (default: input plus the format extension)")
	compressCmd.Flags().Int("chunk_size", compression.DefaultChunkSize, "Read chunk size in bytes")

	viper.SetDefault("format", string(format.Bzip2))
	viper.SetDefault("chunk_size", compression.DefaultChunkSize)
}

// formatList names every format with a streaming compressor, for help text.
func formatList() string {
	var names []string
	for _, f := range format.All() {
		if compression.Registered(f) {
			names = append(names, f.String())
		}
	}
	return strings.Join(names, ", ")
}

func runCompress(cmd *cobra.Command, args []string) {
	input := args[0]
	loader := NewFlagLoader(cmd)

	f, err := format.Parse(loader.String("format"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	output := loader.String("output")
	if output == "" {
		output = input + f.Extension()
	}

	res, err := compressFile(input, output, f, loader.Int("chunk_size"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to compress %s: %v\n", input, err)
		os.Exit(1)
	}

	logger.Ctx(cmd.Context()).Debug().
		Str("input", input).
		Str("output", output).
		Int64("bytes_in", res.bytesIn).
		Int64("bytes_out", res.bytesOut).
		Msg("compression finished")

	fmt.Printf("Compressed %s -> %s\n", input, output)
	fmt.Printf("  Format: %s\n", f)
	fmt.Printf("  Input:  %s\n", humanize.Bytes(uint64(res.bytesIn)))
	fmt.Printf("  Output: %s\n", humanize.Bytes(uint64(res.bytesOut)))
	fmt.Printf("  Ratio:  %.2fx\n", compression.CompressionRatio(res.bytesIn, res.bytesOut))
}

type pipeResult struct {
	bytesIn  int64
	bytesOut int64
}

// compressFile streams input through the format's compressor into a hidden
// temp file beside output, renaming it into place on success.
func compressFile(input, output string, f format.Format, chunkSize int) (*pipeResult, error) {
	in, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return nil, err
	}

	it, err := compression.CompressChunks(f, compression.ReaderChunks(in, chunkSize))
	if err != nil {
		return nil, err
	}

	written, err := writeAtomic(output, it)
	if err != nil {
		return nil, err
	}
	return &pipeResult{bytesIn: info.Size(), bytesOut: written}, nil
}

// writeAtomic drains the iterator into a temp file next to path and renames
// it into place. Nothing is left behind on failure.
func writeAtomic(path string, src compression.ChunkIterator) (int64, error) {
	tmp := utils.TempPath(path)
	out, err := os.Create(tmp)
	if err != nil {
		return 0, err
	}

	written, err := compression.Copy(out, src)
	if err != nil {
		out.Close()
		os.Remove(tmp)
		return 0, err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return 0, err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return 0, err
	}
	return written, nil
}
