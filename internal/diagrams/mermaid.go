// Package diagrams exports the decision graph as Mermaid flowcharts.
package diagrams

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/tree"
)

// Options controls a decision diagram.
type Options struct {
	// Direction is a Mermaid flowchart direction, LR when empty.
	Direction string
	YesLabel  string
	NoLabel   string
	// Path, when set, is highlighted; its last node is drawn as current.
	Path tree.Path
}

func (o Options) label(c dataset.Choice) string {
	if c == dataset.Yes && o.YesLabel != "" {
		return o.YesLabel
	}
	if c == dataset.No && o.NoLabel != "" {
		return o.NoLabel
	}
	return string(c)
}

// DecisionDiagram generates a Mermaid flowchart of every node reachable from
// the root. Converging branches share one node, unlike the drawn tree.
func DecisionDiagram(ds *dataset.Dataset, opts Options) string {
	dir := opts.Direction
	if dir == "" {
		dir = "LR"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "graph %s\n", dir)

	// Breadth-first from root so the text reads in question order.
	var order []*dataset.Node
	seen := map[string]bool{}
	queue := []*dataset.Node{ds.Root()}
	seen[dataset.RootID] = true
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, c := range dataset.Choices() {
			id, ok := n.Target(c)
			if !ok || seen[id] {
				continue
			}
			if next, found := ds.Node(id); found {
				seen[id] = true
				queue = append(queue, next)
			}
		}
	}

	for _, n := range order {
		id := sanitizeID(n.ID())
		if n.IsTerminal() {
			fmt.Fprintf(&b, "    %s([\"%s\"])\n", id, escapeMermaid(n.Text()))
		} else {
			fmt.Fprintf(&b, "    %s{\"%s\"}\n", id, escapeMermaid(n.Text()))
		}
	}

	onPath := map[[2]string]bool{}
	for i := 1; i < len(opts.Path); i++ {
		onPath[[2]string{opts.Path[i-1].ID(), opts.Path[i].ID()}] = true
	}
	var highlighted []int
	edge := 0
	for _, n := range order {
		for _, c := range dataset.Choices() {
			to, ok := n.Target(c)
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "    %s -->|%s| %s\n", sanitizeID(n.ID()), escapeMermaid(opts.label(c)), sanitizeID(to))
			if onPath[[2]string{n.ID(), to}] {
				highlighted = append(highlighted, edge)
			}
			edge++
		}
	}

	b.WriteString("    classDef terminal fill:#10b981,stroke:#059669,color:#fff\n")
	var terminals []string
	for _, n := range order {
		if n.IsTerminal() {
			terminals = append(terminals, sanitizeID(n.ID()))
		}
	}
	if len(terminals) > 0 {
		fmt.Fprintf(&b, "    class %s terminal\n", strings.Join(terminals, ","))
	}

	if len(opts.Path) > 0 {
		b.WriteString("    classDef onpath fill:#e0e7ff,stroke:#6366f1,color:#1f2937\n")
		b.WriteString("    classDef current fill:#4f46e5,stroke:#4338ca,color:#fff\n")
		ids := opts.Path.IDs()
		if len(ids) > 1 {
			prefix := make([]string, len(ids)-1)
			for i, id := range ids[:len(ids)-1] {
				prefix[i] = sanitizeID(id)
			}
			fmt.Fprintf(&b, "    class %s onpath\n", strings.Join(prefix, ","))
		}
		fmt.Fprintf(&b, "    class %s current\n", sanitizeID(ids[len(ids)-1]))
		for _, i := range highlighted {
			fmt.Fprintf(&b, "    linkStyle %d stroke:#4f46e5,stroke-width:3px\n", i)
		}
	}
	return b.String()
}

// sanitizeID converts a string into a safe mermaid node ID.
func sanitizeID(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		".", "_",
		"-", "_",
		" ", "_",
		":", "_",
	)
	id := replacer.Replace(s)
	// "end" is reserved in flowcharts.
	if strings.EqualFold(id, "end") {
		id = "n_" + id
	}
	return id
}

// escapeMermaid escapes characters that have special meaning in mermaid labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "(", "#lpar;")
	s = strings.ReplaceAll(s, ")", "#rpar;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	s = strings.ReplaceAll(s, "|", "#124;")
	return s
}
