// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"

	"github.com/kirku1g/dataiter/pkg/debug"
	"github.com/kirku1g/dataiter/pkg/logger"
	"github.com/kirku1g/dataiter/pkg/utils"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dataiter",
	Short: "Dataiter - transparent compression for data files",
	Long: `Dataiter reads and writes compressed data files through one interface.
The file extension selects the codec: bz2, gz, xz, zst, lz4 and s2 streams
are (de)compressed on the fly, and zip archives holding a single member
are read as if they were plain files.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentPreRun = initializeConfig
	rootCmd.PersistentFlags().StringVar(&utils.ConfigurationFileDirectory, "config_dir", ".", "Directory for configuration files")
	rootCmd.PersistentFlags().String("debug_addr", "", "Serve metrics and pprof on this address (e.g. 127.0.0.1:6060)")
}

// initializeConfig loads the optional config file, scopes the logger to the
// running command, and starts the debug listener when requested.
func initializeConfig(cmd *cobra.Command, args []string) {
	utils.LoadConfiguration("dataiter", false)

	l := logger.Ctx(cmd.Context()).With().Str("command", cmd.Name()).Logger()
	cmd.SetContext(logger.WithLogger(cmd.Context(), &l))

	if addr, _ := rootCmd.PersistentFlags().GetString("debug_addr"); addr != "" {
		debug.Serve(addr)
	}
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
