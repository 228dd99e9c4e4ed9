package catalog

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
)

// statusMarks are the table cell markers per status.
var statusMarks = map[dataset.Status]string{
	dataset.StatusPresent:     "✅",
	dataset.StatusAbsent:      "—",
	dataset.StatusPlanned:     "🕓",
	dataset.StatusConditional: "⚠️",
}

// Mark returns the table marker for a status.
func Mark(s dataset.Status) string {
	if m, ok := statusMarks[s]; ok {
		return m
	}
	return string(s)
}

// registryCodes maps edition ids to their image repository suffix.
var registryCodes = map[string]string{
	"community":          "ce",
	"basic":              "be",
	"standard":           "se",
	"standard_plus":      "se-plus",
	"enterprise":         "ee",
	"cert_security_lite": "cse",
	"cert_security_pro":  "cse",
}

// InstallSnippet returns the InitConfiguration fragment that selects the
// edition at install time, or "" when the edition has no known repository.
func InstallSnippet(editionID string) string {
	code, ok := registryCodes[editionID]
	if !ok {
		return ""
	}
	host := "registry.deckhouse.ru"
	if code == "cse" {
		host = "registry-cse.deckhouse.ru"
	}
	var b strings.Builder
	b.WriteString("apiVersion: deckhouse.io/v1\n")
	b.WriteString("kind: InitConfiguration\n")
	b.WriteString("deckhouse:\n")
	fmt.Fprintf(&b, "  imagesRepo: %s/deckhouse/%s\n", host, code)
	if code != "ce" {
		b.WriteString("  registryDockerCfg: <license-key-dockercfg>\n")
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Markdown renders the table as GFM: one section per category, a legend at the end.
func Markdown(t Table) string {
	var b strings.Builder
	b.WriteString("# Сравнение редакций\n\n")
	if t.Len() == 0 {
		b.WriteString("Нет функций, подходящих под фильтр.\n")
		return b.String()
	}

	names := lo.Map(t.Editions, func(e dataset.Edition, _ int) string { return escapeCell(e.Name) })
	for _, g := range t.Groups {
		fmt.Fprintf(&b, "## %s\n\n", g.Category.Title())
		fmt.Fprintf(&b, "| Функция | %s |\n", strings.Join(names, " | "))
		fmt.Fprintf(&b, "|---|%s\n", strings.Repeat(":---:|", len(names)))
		for _, r := range g.Rows {
			marks := lo.Map(r.Statuses, func(s dataset.Status, _ int) string { return Mark(s) })
			fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(r.Feature.Name), strings.Join(marks, " | "))
		}
		b.WriteString("\n")
	}

	legend := lo.Map(dataset.Statuses(), func(s dataset.Status, _ int) string {
		return fmt.Sprintf("%s %s", Mark(s), s.Title())
	})
	fmt.Fprintf(&b, "_%s_\n", strings.Join(legend, " · "))
	return b.String()
}

// CardMarkdown renders an edition card with its install snippet.
func CardMarkdown(c Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Edition.Name)
	if c.Edition.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", c.Edition.Description)
	}
	fmt.Fprintf(&b, "Покрытие функций: **%d%%**\n\n", c.Coverage)

	for _, s := range dataset.Statuses() {
		fs := c.Buckets[s]
		if len(fs) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s %s\n\n", Mark(s), s.Title())
		for _, f := range fs {
			fmt.Fprintf(&b, "- **%s** (%s, важность %d)", f.Name, f.Category.Title(), f.Importance)
			if f.Description != "" {
				fmt.Fprintf(&b, ": %s", f.Description)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if snippet := InstallSnippet(c.Edition.ID); snippet != "" {
		b.WriteString("## Установка\n\n")
		b.WriteString("```yaml\n")
		b.WriteString(snippet)
		b.WriteString("```\n")
	}
	return b.String()
}
