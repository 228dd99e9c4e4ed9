package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/tree"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the built-in edition data for consistency",
	Long:  `Validates node references, edition references, cycles and reachability of the decision tree, and prints a summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, rep, err := dataset.LoadDefault()
		for _, e := range rep.Errors {
			color.New(color.FgRed).Printf("  ✗ %s\n", e.Error())
		}
		for _, w := range rep.Warnings {
			color.New(color.FgYellow).Printf("  ! %s\n", w.Error())
		}
		if err != nil {
			return fmt.Errorf("%d blocking issue(s)", len(rep.Errors))
		}

		h := tree.Build(ds)
		color.New(color.FgGreen).Println("  ✓ dataset is consistent")
		fmt.Printf("    %d features, %d editions, %d nodes (%d questions)\n",
			len(ds.Features()), len(ds.Editions()), len(ds.Nodes()), countQuestions(ds))
		fmt.Printf("    drawn tree: %d slots, depth %d, widest level %d\n",
			h.Len(), h.MaxDepth(), h.MaxLevelWidth())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func countQuestions(ds *dataset.Dataset) int {
	n := 0
	for _, node := range ds.Nodes() {
		if !node.IsTerminal() {
			n++
		}
	}
	return n
}
