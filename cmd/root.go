package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/edition-advisor/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Decision-tree advisor for Deckhouse Kubernetes Platform editions",
	Long: `Edition Advisor walks a short yes/no questionnaire and recommends a
Deckhouse Kubernetes Platform edition. It serves an interactive tree in the
browser, renders the tree to SVG, compares editions feature by feature, and
exposes the same answers to AI agents via MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
