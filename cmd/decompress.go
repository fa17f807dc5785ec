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

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var decompressCmd = &cobra.Command{
	Use:   "decompress <input>",
	Short: "Decompress a file",
	Long: `Decompress a file, inferring the format from its extension.

The output path defaults to the input path with the compression
extension removed.

Example:
  dataiter decompress measurements.csv.bz2
  dataiter decompress -o plain.csv measurements.csv.zst`,
	Args: cobra.ExactArgs(1),
	Run:  runDecompress,
}

func init() {
	rootCmd.AddCommand(decompressCmd)

	decompressCmd.Flags().StringP("output", "o", "", "Output file path (default: input without the compression extension)")
	decompressCmd.Flags().Int("chunk_size", compression.DefaultChunkSize, "Read chunk size in bytes")
}

func runDecompress(cmd *cobra.Command, args []string) {
	input := args[0]
	loader := NewFlagLoader(cmd)

	f := format.FromPath(input)
	if f == format.None {
		fmt.Fprintf(os.Stderr, "Error: Cannot infer a compression format from %s\n", input)
		os.Exit(1)
	}

	output := loader.String("output")
	if output == "" {
		output = strings.TrimSuffix(input, f.Extension())
	}

	res, err := decompressFile(input, output, f, loader.Int("chunk_size"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to decompress %s: %v\n", input, err)
		os.Exit(1)
	}

	logger.Ctx(cmd.Context()).Debug().
		Str("input", input).
		Str("output", output).
		Int64("bytes_in", res.bytesIn).
		Int64("bytes_out", res.bytesOut).
		Msg("decompression finished")

	fmt.Printf("Decompressed %s -> %s\n", input, output)
	fmt.Printf("  Format: %s\n", f)
	fmt.Printf("  Input:  %s\n", humanize.Bytes(uint64(res.bytesIn)))
	fmt.Printf("  Output: %s\n", humanize.Bytes(uint64(res.bytesOut)))
}

// decompressFile streams input through the format's decompressor into a
// hidden temp file beside output, renaming it into place on success.
func decompressFile(input, output string, f format.Format, chunkSize int) (*pipeResult, error) {
	in, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return nil, err
	}

	it, err := compression.DecompressChunks(f, compression.ReaderChunks(in, chunkSize))
	if err != nil {
		return nil, err
	}

	written, err := writeAtomic(output, it)
	if err != nil {
		return nil, err
	}
	return &pipeResult{bytesIn: info.Size(), bytesOut: written}, nil
}
