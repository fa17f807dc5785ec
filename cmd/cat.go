// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/kirku1g/dataiter/pkg/file"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var catCmd = &cobra.Command{
	Use:   "cat <file>...",
	Short: "Print decompressed file contents",
	Long: `Print file contents to stdout, decompressing or unpacking each file
according to its extension. Zip archives must hold exactly one member.

Mode r decodes the stream as UTF-8 text and strips a leading byte order
mark; mode rb copies the raw decompressed bytes.

Example:
  dataiter cat results.csv.bz2
  dataiter cat -m r archive.zip`,
	Args: cobra.MinimumNArgs(1),
	Run:  runCat,
}

func init() {
	rootCmd.AddCommand(catCmd)

	catCmd.Flags().StringP("mode", "m", string(file.ModeBinary), `Open mode: "r" (text) or "rb" (binary)`)

	viper.SetDefault("mode", string(file.ModeBinary))
}

func runCat(cmd *cobra.Command, args []string) {
	mode := file.Mode(NewFlagLoader(cmd).String("mode"))

	for _, path := range args {
		if err := catFile(os.Stdout, path, mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to read %s: %v\n", path, err)
			os.Exit(1)
		}
	}
}

// catFile copies one file's decompressed contents to w.
func catFile(w io.Writer, path string, mode file.Mode) error {
	rc, err := file.Open(path, mode)
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = io.Copy(w, rc)
	return err
}
