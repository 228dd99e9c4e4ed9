package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/edition-advisor/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the decision tree to SVG",
	Long:  `Draws the whole decision tree as a standalone SVG, highlighting the path to --node.`,
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

		node, _ := cmd.Flags().GetString("node")
		output, _ := cmd.Flags().GetString("output")

		sc, err := render.StaticScene(ds, newEngine(cfg, log), node, render.Options{Logger: log})
		if err != nil {
			return fmt.Errorf("rendering tree: %w", err)
		}

		w, err := outputWriter(output)
		if err != nil {
			return err
		}
		if err := render.WriteSVG(w, sc); err != nil {
			w.Close()
			return fmt.Errorf("writing svg: %w", err)
		}
		if err := w.Close(); err != nil {
			return err
		}
		if output != "" && output != "-" {
			log.Info("tree rendered", "path", output, "width", sc.Size.W, "height", sc.Size.H)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().String("node", "", "highlight the path to this node (default root)")
	renderCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(renderCmd)
}
