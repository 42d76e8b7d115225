package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "wavetray",
	Short: "wavetray - audio tray panel for PipeWire desktops",
	Long: `wavetray is a tray panel for PipeWire desktops:
  - output and input volume sliders with drag-to-commit
  - default device selection
  - media player controls over MPRIS

Examples:
  wavetray                 # Launch the panel
  wavetray panel -v        # Launch with verbose tracing`,
	Version: "0.1.0",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPanel()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
