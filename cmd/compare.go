package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/edition-advisor/internal/catalog"
	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/ui"
)

var compareCmd = &cobra.Command{
	Use:   "compare [edition...]",
	Short: "Compare features across editions",
	Long:  `Prints a feature availability table for all editions, or only the given edition ids.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, _ := cmd.Flags().GetStringSlice("category")
		minImportance, _ := cmd.Flags().GetInt("min-importance")
		asMarkdown, _ := cmd.Flags().GetBool("markdown")

		f := catalog.Filter{Editions: args, MinImportance: minImportance}
		for _, c := range categories {
			f.Categories = append(f.Categories, dataset.Category(c))
		}
		t, err := catalog.Compare(dataset.Default(), f)
		if err != nil {
			return err
		}

		if asMarkdown {
			fmt.Print(catalog.Markdown(t))
			return nil
		}
		ui.ComparisonTable(os.Stdout, t)
		return nil
	},
}

var editionCmd = &cobra.Command{
	Use:   "edition <id>",
	Short: "Show one edition's features and install snippet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		card, err := catalog.EditionCard(dataset.Default(), args[0])
		if err != nil {
			return err
		}
		if md, _ := cmd.Flags().GetBool("markdown"); md {
			fmt.Print(catalog.CardMarkdown(card))
			return nil
		}
		ui.EditionCard(os.Stdout, card)
		return nil
	},
}

func init() {
	compareCmd.Flags().StringSlice("category", nil, "only these categories (general, security, network, storage, virtualization, observability, other)")
	compareCmd.Flags().Int("min-importance", 0, "only features at or above this importance")
	compareCmd.Flags().Bool("markdown", false, "print Markdown instead of a terminal table")
	editionCmd.Flags().Bool("markdown", false, "print Markdown instead of a terminal card")
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(editionCmd)
}
