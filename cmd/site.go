package cmd

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/edition-advisor/internal/progress"
	"github.com/ziadkadry99/edition-advisor/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate a static comparison website",
	Long:  `Generates a self-contained static HTML site with the full decision tree, the comparison table and a page per edition.`,
	RunE:  runSite,
}

func init() {
	siteCmd.Flags().Bool("serve", false, "start a local HTTP server after generating")
	siteCmd.Flags().Int("port", 8080, "port for the local dev server")
	siteCmd.Flags().String("output", "site", "output directory")
	siteCmd.Flags().String("name", "Редакции Deckhouse", "site name shown in the header")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	ds, err := loadDataset(log)
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	name, _ := cmd.Flags().GetString("name")

	generator := site.NewGenerator(ds, newEngine(cfg, log), outputDir, name)
	rep := progress.NewReporter(os.Stderr)
	rep.Start(generator.PageCount(), "Generating site")
	written := 0
	generator.OnPage = func(rel string) {
		written++
		rep.Update(written, rel)
	}
	pageCount, err := generator.Generate()
	rep.Finish()
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d pages)\n", outputDir, pageCount)

	// Optionally serve the site.
	serve, _ := cmd.Flags().GetBool("serve")
	if !serve {
		return nil
	}
	port, _ := cmd.Flags().GetInt("port")
	addr := fmt.Sprintf(":%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	abs, _ := filepath.Abs(outputDir)
	fmt.Printf("Serving %s at http://localhost:%d, press Ctrl+C to stop\n", abs, port)
	return http.Serve(ln, http.FileServer(http.Dir(outputDir)))
}
