// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/kirku1g/dataiter/pkg/archive"
	"github.com/kirku1g/dataiter/pkg/compression"
	"github.com/kirku1g/dataiter/pkg/format"

	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported formats and their capabilities",
	Run:   runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, args []string) {
	fmt.Printf("%-8s %-11s %-10s %-12s %s\n", "FORMAT", "EXTENSION", "COMPRESS", "DECOMPRESS", "ARCHIVE")

	for _, f := range format.All() {
		compress, decompress := "no", "no"
		if c, err := compression.Lookup(f); err == nil {
			if c.NewWriter != nil {
				compress = "yes"
			}
			if c.NewReader != nil {
				decompress = "yes"
			}
		}

		arch := "no"
		if archive.Registered(f) {
			arch = "yes"
		}

		ext := f.Extension()
		if ext == "" {
			ext = "-"
		}
		fmt.Printf("%-8s %-11s %-10s %-12s %s\n", f, ext, compress, decompress, arch)
	}
}
