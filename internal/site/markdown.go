// Package site turns catalog markdown into HTML pages, either one at a time
// for the dashboard or as a complete static site.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// NavLink is one entry of the page sidebar.
type NavLink struct {
	Title  string
	Href   string
	Active bool
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title    string
	SiteName string
	Content  template.HTML
	Nav      []NavLink
	BasePath string
}

// Renderer converts markdown to HTML pages.
type Renderer struct {
	md   goldmark.Markdown
	page *template.Template
}

// NewRenderer returns a renderer with GFM tables and highlighted code blocks.
func NewRenderer() (*Renderer, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Renderer{md: md, page: tmpl}, nil
}

// HTML converts a markdown fragment.
func (r *Renderer) HTML(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Page writes a complete HTML document. basePath prefixes the stylesheet link.
func (r *Renderer) Page(w io.Writer, siteName, title, markdown, basePath string, nav []NavLink) error {
	content, err := r.HTML(markdown)
	if err != nil {
		return err
	}
	return r.page.Execute(w, pageData{
		Title:    title,
		SiteName: siteName,
		Content:  content,
		Nav:      nav,
		BasePath: basePath,
	})
}
