package site

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ziadkadry99/edition-advisor/internal/catalog"
	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/layout"
	"github.com/ziadkadry99/edition-advisor/internal/render"
)

// Generator writes a static site: a comparison page with the full decision
// tree, plus one page per edition.
type Generator struct {
	Dataset   *dataset.Dataset
	Engine    *layout.Engine
	OutputDir string
	SiteName  string
	// OnPage is called after each page is written, with its relative path.
	OnPage func(rel string)
}

// NewGenerator creates a Generator writing into outputDir.
func NewGenerator(ds *dataset.Dataset, engine *layout.Engine, outputDir, siteName string) *Generator {
	return &Generator{
		Dataset:   ds,
		Engine:    engine,
		OutputDir: outputDir,
		SiteName:  siteName,
	}
}

// EditionPath returns the site-relative path of an edition page.
func EditionPath(id string) string { return "editions/" + id + ".html" }

// PageCount returns how many pages Generate will write.
func (g *Generator) PageCount() int { return 1 + len(g.Dataset.Editions()) }

// Generate builds the site and returns the number of pages written.
func (g *Generator) Generate() (int, error) {
	if err := os.MkdirAll(filepath.Join(g.OutputDir, "editions"), 0o755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}

	sc, err := render.StaticScene(g.Dataset, g.Engine, "", render.Options{})
	if err != nil {
		return 0, fmt.Errorf("rendering tree: %w", err)
	}
	var svgBuf bytes.Buffer
	if err := render.WriteSVG(&svgBuf, sc); err != nil {
		return 0, fmt.Errorf("rendering tree: %w", err)
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "tree.svg"), svgBuf.Bytes(), 0o644); err != nil {
		return 0, err
	}

	r, err := NewRenderer()
	if err != nil {
		return 0, err
	}

	table, err := catalog.Compare(g.Dataset, catalog.Filter{})
	if err != nil {
		return 0, err
	}
	var index strings.Builder
	index.WriteString("![Дерево решений](tree.svg)\n\n")
	index.WriteString(catalog.Markdown(table))
	if err := g.writePage(r, "index.html", "Сравнение редакций", index.String()); err != nil {
		return 0, err
	}
	pages := 1

	for _, ed := range g.Dataset.Editions() {
		card, err := catalog.EditionCard(g.Dataset, ed.ID)
		if err != nil {
			return pages, err
		}
		if err := g.writePage(r, EditionPath(ed.ID), ed.Name, catalog.CardMarkdown(card)); err != nil {
			return pages, fmt.Errorf("rendering %s: %w", ed.ID, err)
		}
		pages++
	}
	return pages, nil
}

func (g *Generator) nav(active string) []NavLink {
	links := []NavLink{{Title: "Сравнение", Href: "index.html", Active: active == "index.html"}}
	for _, ed := range g.Dataset.Editions() {
		href := EditionPath(ed.ID)
		links = append(links, NavLink{Title: ed.Name, Href: href, Active: active == href})
	}
	return links
}

func (g *Generator) writePage(r *Renderer, rel, title, markdown string) error {
	outPath := filepath.Join(g.OutputDir, filepath.FromSlash(rel))
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	// Compute base path for CSS references.
	basePath := strings.Repeat("../", strings.Count(rel, "/"))
	if err := r.Page(f, g.SiteName, title, markdown, basePath, g.nav(rel)); err != nil {
		return err
	}
	if g.OnPage != nil {
		g.OnPage(rel)
	}
	return nil
}
