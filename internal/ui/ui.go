// Package ui prints coloured terminal output for the CLI.
package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/ziadkadry99/edition-advisor/internal/catalog"
	"github.com/ziadkadry99/edition-advisor/internal/dataset"
)

// Brand colors
var (
	Brand  = color.New(color.FgHiBlue, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// Banner prints the advisor banner.
func Banner(w io.Writer, subtitle string) {
	fmt.Fprintf(w, "%s · %s\n\n", Brand.Sprint("Deckhouse edition advisor"), subtitle)
}

// StatusColor returns the colour used for a feature status.
func StatusColor(s dataset.Status) *color.Color {
	switch s {
	case dataset.StatusPresent:
		return Good
	case dataset.StatusConditional:
		return Warn
	case dataset.StatusPlanned:
		return Info
	}
	return Subtle
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// Table prints a simple aligned table. paint, when set, colours a padded
// cell given its row and column.
func Table(w io.Writer, headers []string, rows [][]string, paint func(row, col int, cell string) string) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	// Print header
	var header, sep strings.Builder
	header.WriteString("  ")
	sep.WriteString("  ")
	for i, h := range headers {
		header.WriteString(pad(h, widths[i]) + "  ")
		sep.WriteString(strings.Repeat("─", widths[i]) + "  ")
	}
	Subtle.Fprintln(w, strings.TrimRight(header.String(), " "))
	Subtle.Fprintln(w, strings.TrimRight(sep.String(), " "))

	// Print rows
	for r, row := range rows {
		var line strings.Builder
		line.WriteString("  ")
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			cell = pad(cell, widths[i])
			if paint != nil {
				cell = paint(r, i, cell)
			}
			line.WriteString(cell + "  ")
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

// abbreviations shorten edition names for narrow table columns.
var abbreviations = map[string]string{
	"community":          "CE",
	"basic":              "BE",
	"standard":           "SE",
	"standard_plus":      "SE+",
	"enterprise":         "EE",
	"cert_security_lite": "CSE Lite",
	"cert_security_pro":  "CSE Pro",
}

// Abbrev returns a short column title for an edition.
func Abbrev(e dataset.Edition) string {
	if a, ok := abbreviations[e.ID]; ok {
		return a
	}
	return e.Name
}

// ComparisonTable prints a comparison table, one block per category.
func ComparisonTable(w io.Writer, t catalog.Table) {
	if t.Len() == 0 {
		Warn.Fprintln(w, "No features match the filter.")
		return
	}
	headers := []string{"Функция"}
	for _, e := range t.Editions {
		headers = append(headers, Abbrev(e))
	}
	for _, g := range t.Groups {
		Brand.Fprintf(w, "%s\n", g.Category.Title())
		rows := make([][]string, len(g.Rows))
		for i, r := range g.Rows {
			rows[i] = append([]string{r.Feature.Name}, make([]string, len(r.Statuses))...)
			for j, s := range r.Statuses {
				rows[i][j+1] = catalog.Mark(s)
			}
		}
		Table(w, headers, rows, func(row, col int, cell string) string {
			if col == 0 {
				return cell
			}
			return StatusColor(g.Rows[row].Statuses[col-1]).Sprint(cell)
		})
		fmt.Fprintln(w)
	}
}

// EditionCard prints an edition card: features grouped by status.
func EditionCard(w io.Writer, c catalog.Card) {
	Brand.Fprintln(w, c.Edition.Name)
	if c.Edition.Description != "" {
		Subtle.Fprintln(w, c.Edition.Description)
	}
	fmt.Fprintf(w, "Покрытие функций: %s\n\n", Info.Sprintf("%d%%", c.Coverage))
	for _, s := range dataset.Statuses() {
		fs := c.Buckets[s]
		if len(fs) == 0 {
			continue
		}
		StatusColor(s).Fprintf(w, "%s %s (%d)\n", catalog.Mark(s), s.Title(), len(fs))
		for _, f := range fs {
			fmt.Fprintf(w, "  • %s\n", f.Name)
		}
		fmt.Fprintln(w)
	}
}

// Breadcrumb prints the answered path as "question → answer" lines.
func Breadcrumb(w io.Writer, steps []string) {
	for i, s := range steps {
		Subtle.Fprintf(w, "%d. ", i+1)
		fmt.Fprintln(w, s)
	}
}
