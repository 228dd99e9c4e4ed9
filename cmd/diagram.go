package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/diagrams"
	"github.com/ziadkadry99/edition-advisor/internal/tree"
)

var diagramCmd = &cobra.Command{
	Use:   "diagram",
	Short: "Print the decision graph as a Mermaid flowchart",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ds := dataset.Default()

		direction, _ := cmd.Flags().GetString("direction")
		node, _ := cmd.Flags().GetString("node")

		opts := diagrams.Options{Direction: direction, YesLabel: cfg.YesLabel, NoLabel: cfg.NoLabel}
		if node != "" {
			path, err := tree.ResolvePath(ds, node)
			if err != nil {
				return err
			}
			opts.Path = path
		}
		fmt.Print(diagrams.DecisionDiagram(ds, opts))
		return nil
	},
}

func init() {
	diagramCmd.Flags().String("direction", "LR", "flowchart direction (LR or TD)")
	diagramCmd.Flags().String("node", "", "highlight the path to this node")
	rootCmd.AddCommand(diagramCmd)
}
