package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wavetray/wavetray/internal/ui"
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Launch the tray panel",
	Long: `Launch the tray panel: a volume icon with a popup holding output and
input sliders, device lists, and media controls.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPanel()
	},
}

func runPanel() error {
	return ui.Run(verbose)
}

func init() {
	rootCmd.AddCommand(panelCmd)
}
