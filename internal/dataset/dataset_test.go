package dataset

import (
	"errors"
	"testing"
)

func TestDefaultDataset(t *testing.T) {
	ds := Default()
	if got := len(ds.Features()); got != 18 {
		t.Errorf("expected 18 features, got %d", got)
	}
	if got := len(ds.Editions()); got != 7 {
		t.Errorf("expected 7 editions, got %d", got)
	}
	if got := len(ds.Nodes()); got != 15 {
		t.Errorf("expected 15 nodes, got %d", got)
	}
	if ds.Root().ID() != RootID {
		t.Errorf("root id: got %q", ds.Root().ID())
	}
	if ds.Root().Text() != "Требуется ли сертификация ФСТЭК?" {
		t.Errorf("unexpected root question %q", ds.Root().Text())
	}
	loaded, rep, err := LoadDefault()
	if err != nil || !rep.Valid() || len(rep.Warnings) != 0 {
		t.Errorf("expected clean report, got %+v (%v)", rep, err)
	}
	if loaded != ds {
		t.Error("LoadDefault and Default should share one dataset")
	}
}

func TestEditionsCoverEveryFeature(t *testing.T) {
	ds := Default()
	for _, e := range ds.Editions() {
		for _, f := range ds.Features() {
			if _, ok := e.Features[f.ID]; !ok {
				t.Errorf("edition %s has no status for %s", e.ID, f.ID)
			}
		}
	}
}

func TestEditionStatusDefaultsToAbsent(t *testing.T) {
	e := Edition{ID: "x", Name: "X", Features: map[string]Status{"a": StatusPresent}}
	if e.Status("a") != StatusPresent {
		t.Errorf("expected present")
	}
	if e.Status("missing") != StatusAbsent {
		t.Errorf("expected unspecified feature to be absent")
	}
}

func TestNodeVariants(t *testing.T) {
	q := NewQuestion("q", "?", "", "a", "")
	if q.IsTerminal() {
		t.Fatal("question reported as terminal")
	}
	if id, ok := q.Target(Yes); !ok || id != "a" {
		t.Errorf("yes target: got %q %v", id, ok)
	}
	if _, ok := q.Target(No); ok {
		t.Error("absent no edge reported as present")
	}
	if _, ok := q.Result(); ok {
		t.Error("question node has a result")
	}

	term := NewTerminal("t", "done", "ed")
	if !term.IsTerminal() {
		t.Fatal("terminal not reported as terminal")
	}
	if _, ok := term.Target(Yes); ok {
		t.Error("terminal node has an outgoing edge")
	}
	if r, ok := term.Result(); !ok || r != "ed" {
		t.Errorf("result: got %q %v", r, ok)
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		in      string
		want    Choice
		wantErr bool
	}{
		{"yes", Yes, false},
		{"Y", Yes, false},
		{"Да", Yes, false},
		{"no", No, false},
		{" нет ", No, false},
		{"maybe", "", true},
	}
	for _, tt := range tests {
		got, err := ParseChoice(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseChoice(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseChoice(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func smallFixture() ([]Feature, []Edition) {
	features := []Feature{{ID: "f", Name: "F", Category: CategoryGeneral, Importance: 5}}
	editions := []Edition{{ID: "ed", Name: "Ed", Features: map[string]Status{"f": StatusPresent}}}
	return features, editions
}

func TestLoadIntegrityErrors(t *testing.T) {
	features, editions := smallFixture()
	tests := []struct {
		name  string
		nodes []*Node
		want  error
	}{
		{
			name:  "missing root",
			nodes: []*Node{NewTerminal("leaf", "done", "ed")},
			want:  ErrMissingRoot,
		},
		{
			name:  "dangling yes",
			nodes: []*Node{NewQuestion(RootID, "?", "", "nowhere", "")},
			want:  ErrDanglingReference,
		},
		{
			name: "terminal with unknown edition",
			nodes: []*Node{
				NewQuestion(RootID, "?", "", "leaf", ""),
				NewTerminal("leaf", "done", "ghost"),
			},
			want: ErrInvalidResult,
		},
		{
			name: "cycle",
			nodes: []*Node{
				NewQuestion(RootID, "?", "", "a", ""),
				NewQuestion("a", "?", "", RootID, ""),
			},
			want: ErrCycle,
		},
		{
			name: "duplicate",
			nodes: []*Node{
				NewQuestion(RootID, "?", "", "leaf", ""),
				NewTerminal("leaf", "done", "ed"),
				NewTerminal("leaf", "again", "ed"),
			},
			want: ErrDuplicateID,
		},
		{
			name:  "question without edges",
			nodes: []*Node{NewQuestion(RootID, "?", "", "", "")},
			want:  ErrMalformedNode,
		},
		{
			name: "unknown feature annotation",
			nodes: []*Node{
				NewQuestion(RootID, "?", "nope", "leaf", ""),
				NewTerminal("leaf", "done", "ed"),
			},
			want: ErrUnknownFeature,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, rep, err := Load(features, editions, tt.nodes)
			if err == nil {
				t.Fatal("expected error")
			}
			if ds != nil {
				t.Error("expected nil dataset on failure")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if rep.Valid() {
				t.Error("report should not be valid")
			}
		})
	}
}

func TestLoadInvalidFields(t *testing.T) {
	features := []Feature{{ID: "f", Name: "F", Category: "bogus", Importance: 11}}
	editions := []Edition{{ID: "ed", Name: "Ed", Features: map[string]Status{"f": "sometimes"}}}
	nodes := []*Node{
		NewQuestion(RootID, "?", "", "leaf", ""),
		NewTerminal("leaf", "done", "ed"),
	}
	_, rep, err := Load(features, editions, nodes)
	if !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
	if len(rep.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(rep.Errors), rep.Errors)
	}
}

func TestLoadOrphanIsWarning(t *testing.T) {
	features, editions := smallFixture()
	nodes := []*Node{
		NewQuestion(RootID, "?", "", "leaf", ""),
		NewTerminal("leaf", "done", "ed"),
		NewTerminal("orphan", "alone", "ed"),
	}
	ds, rep, err := Load(features, editions, nodes)
	if err != nil {
		t.Fatalf("orphan should not be fatal: %v", err)
	}
	if len(rep.Warnings) != 1 || rep.Warnings[0].Subject != "orphan" {
		t.Fatalf("expected one orphan warning, got %+v", rep.Warnings)
	}
	if !errors.Is(rep.Warnings[0], ErrUnreachable) {
		t.Errorf("warning should wrap ErrUnreachable")
	}
	if _, ok := ds.Node("orphan"); !ok {
		t.Error("orphan should still be indexed")
	}
}

func TestCategoriesOrder(t *testing.T) {
	cats := Categories()
	if cats[0] != CategoryGeneral || cats[len(cats)-1] != CategoryOther {
		t.Errorf("unexpected category order %v", cats)
	}
	if CategorySecurity.Title() != "Безопасность" {
		t.Errorf("unexpected title %q", CategorySecurity.Title())
	}
}

func TestLookupsReturnCopies(t *testing.T) {
	ds := Default()

	ed, _ := ds.Edition("community")
	ed.Features["fstek_cert"] = StatusPresent
	ed.Name = "changed"
	if again, _ := ds.Edition("community"); again.Status("fstek_cert") != StatusAbsent || again.Name == "changed" {
		t.Errorf("edition changed through a lookup: %+v", again)
	}

	list := ds.Editions()
	for i := range list {
		list[i].Features["registry"] = StatusAbsent
	}
	if basic, _ := ds.Edition("basic"); basic.Status("registry") != StatusPresent {
		t.Errorf("basic registry = %s after writing into a listing", basic.Status("registry"))
	}

	f, _ := ds.Feature("fstek_cert")
	f.Importance = 1
	if again, _ := ds.Feature("fstek_cert"); again.Importance == 1 {
		t.Error("feature changed through a lookup")
	}
}

func TestLoadCopiesInput(t *testing.T) {
	features, editions := smallFixture()
	ds, _, err := Load(features, editions, []*Node{
		NewQuestion(RootID, "?", "", "leaf", ""),
		NewTerminal("leaf", "done", "ed"),
	})
	if err != nil {
		t.Fatal(err)
	}
	editions[0].Features["f"] = StatusAbsent
	features[0].Name = "changed"
	if ed, _ := ds.Edition("ed"); ed.Status("f") != StatusPresent {
		t.Error("dataset shares edition maps with the input")
	}
	if f, _ := ds.Feature("f"); f.Name != "F" {
		t.Error("dataset shares features with the input")
	}
}
