package diagrams

import (
	"strings"
	"testing"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/tree"
)

func TestDecisionDiagram(t *testing.T) {
	ds := dataset.Default()
	result := DecisionDiagram(ds, Options{YesLabel: "Да", NoLabel: "Нет"})

	if !strings.HasPrefix(result, "graph LR\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(result, "\n", 2)[0])
	}
	if n := strings.Count(result, " -->|"); n != 16 {
		t.Errorf("expected 16 edges, got %d", n)
	}
	// Shared nodes appear once.
	if n := strings.Count(result, "    basic_result(["); n != 1 {
		t.Errorf("basic_result declared %d times", n)
	}
	for _, want := range []string{
		`root{"Требуется ли сертификация ФСТЭК?"}`,
		"root -->|Да| fstek_cert_node",
		"registry_node -->|Нет| community_result",
		"classDef terminal",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(result, "linkStyle") || strings.Contains(result, "classDef current") {
		t.Error("no highlighting without a path")
	}
}

func TestDecisionDiagramHighlightsPath(t *testing.T) {
	ds := dataset.Default()
	path, err := tree.ResolvePath(ds, "community_result")
	if err != nil {
		t.Fatal(err)
	}
	result := DecisionDiagram(ds, Options{Direction: "TD", Path: path})

	for _, want := range []string{
		"graph TD\n",
		"root -->|no| registry_node",
		"class root,registry_node onpath",
		"class community_result current",
		"linkStyle 1 stroke",
		"linkStyle 5 stroke",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("missing %q in\n%s", want, result)
		}
	}
	if n := strings.Count(result, "linkStyle"); n != 2 {
		t.Errorf("expected 2 highlighted links, got %d", n)
	}
}

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"root", "root"},
		{"a-b.c", "a_b_c"},
		{"end", "n_end"},
		{"with space", "with_space"},
	}
	for _, tt := range tests {
		if got := sanitizeID(tt.in); got != tt.want {
			t.Errorf("sanitizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeMermaid(t *testing.T) {
	got := escapeMermaid(`a "b" (c) <d> |e|`)
	want := "a #quot;b#quot; #lpar;c#rpar; #lt;d#gt; #124;e#124;"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
