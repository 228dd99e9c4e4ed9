package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/edition-advisor/internal/diagrams"
	mcpserver "github.com/ziadkadry99/edition-advisor/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing edition recommendation, comparison and diagram tools to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)
		ds, err := loadDataset(log)
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "advisor MCP server started on stdio (%d editions, %d questions)\n",
			len(ds.Editions()), countQuestions(ds))

		srv := mcpserver.NewServer(ds, diagrams.Options{YesLabel: cfg.YesLabel, NoLabel: cfg.NoLabel})
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
