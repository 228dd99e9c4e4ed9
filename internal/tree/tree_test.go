package tree

import (
	"errors"
	"slices"
	"testing"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
)

func TestBuildSampleHierarchy(t *testing.T) {
	h := Build(dataset.Default())

	if h.Root().Decision.ID() != dataset.RootID {
		t.Fatalf("root slot draws %q", h.Root().Decision.ID())
	}
	if h.Len() != 17 {
		t.Errorf("expected 17 slots, got %d", h.Len())
	}
	if h.MaxDepth() != 8 {
		t.Errorf("expected max depth 8, got %d", h.MaxDepth())
	}
	if h.MaxLevelWidth() != 4 {
		t.Errorf("expected max level width 4, got %d", h.MaxLevelWidth())
	}

	root := h.Root()
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children", len(root.Children))
	}
	if root.Children[0].Branch != dataset.Yes || root.Children[0].Decision.ID() != "fstek_cert_node" {
		t.Errorf("first child should be the yes branch, got %s/%s", root.Children[0].Branch, root.Children[0].Decision.ID())
	}
	if root.Children[1].Branch != dataset.No || root.Children[1].Decision.ID() != "registry_node" {
		t.Errorf("second child should be the no branch, got %s/%s", root.Children[1].Branch, root.Children[1].Decision.ID())
	}
}

func TestConvergingNodesAreDuplicated(t *testing.T) {
	h := Build(dataset.Default())

	basic := h.SlotsOf("basic_result")
	if len(basic) != 2 {
		t.Fatalf("expected basic_result drawn twice, got %d", len(basic))
	}
	keys := []string{basic[0].Key, basic[1].Key}
	want := []string{"root/no/yes/no", "root/no/yes/yes/no"}
	if !slices.Equal(keys, want) {
		t.Errorf("keys: got %v, want %v", keys, want)
	}
	for _, k := range want {
		if _, ok := h.Slot(k); !ok {
			t.Errorf("slot %q not indexed", k)
		}
	}
}

func TestPreOrderIndexes(t *testing.T) {
	h := Build(dataset.Default())
	for i, n := range h.Slots() {
		if n.Index != i {
			t.Errorf("slot %s has index %d at position %d", n.Key, n.Index, i)
		}
		if n.Parent != nil && n.Depth != n.Parent.Depth+1 {
			t.Errorf("slot %s depth %d, parent depth %d", n.Key, n.Depth, n.Parent.Depth)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	ds := dataset.Default()
	a, b := Build(ds), Build(ds)
	if a == b {
		t.Fatal("Build should return a fresh hierarchy")
	}
	if a.Len() != b.Len() {
		t.Fatalf("slot counts differ: %d vs %d", a.Len(), b.Len())
	}
	for i, s := range a.Slots() {
		if o := b.Slots()[i]; o.Key != s.Key || o.Decision != s.Decision {
			t.Errorf("slot %d: %s vs %s", i, s.Key, o.Key)
		}
	}
}

func TestResolvePathValidity(t *testing.T) {
	ds := dataset.Default()
	for _, n := range ds.Nodes() {
		path, err := ResolvePath(ds, n.ID())
		if err != nil {
			t.Fatalf("ResolvePath(%s): %v", n.ID(), err)
		}
		if path[0].ID() != dataset.RootID {
			t.Errorf("path to %s starts at %s", n.ID(), path[0].ID())
		}
		if path.Last().ID() != n.ID() {
			t.Errorf("path to %s ends at %s", n.ID(), path.Last().ID())
		}
		for i := 1; i < len(path); i++ {
			yes, _ := path[i-1].Target(dataset.Yes)
			no, _ := path[i-1].Target(dataset.No)
			if path[i].ID() != yes && path[i].ID() != no {
				t.Errorf("path to %s: %s is not a child of %s", n.ID(), path[i].ID(), path[i-1].ID())
			}
		}
		if len(path.Choices()) != len(path)-1 {
			t.Errorf("path to %s: %d choices for %d nodes", n.ID(), len(path.Choices()), len(path))
		}
	}
}

func TestResolvePathPrefersYes(t *testing.T) {
	ds := dataset.Default()
	path, err := ResolvePath(ds, "basic_result")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"root", "registry_node", "closed_env_node", "admin_ui_node", "basic_result"}
	if !slices.Equal(path.IDs(), want) {
		t.Errorf("got %v, want %v", path.IDs(), want)
	}

	again, _ := ResolvePath(ds, "basic_result")
	if !slices.Equal(again.IDs(), path.IDs()) {
		t.Error("resolution is not deterministic")
	}
}

func TestResolvePathRoot(t *testing.T) {
	path, err := ResolvePath(dataset.Default(), dataset.RootID)
	if err != nil {
		t.Fatal(err)
	}
	if len(path) != 1 || path[0].ID() != dataset.RootID {
		t.Errorf("expected single-element root path, got %v", path.IDs())
	}
}

func TestResolvePathNotFound(t *testing.T) {
	ds := dataset.Default()
	if _, err := ResolvePath(ds, "nope"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}

	features := []dataset.Feature{{ID: "f", Name: "F", Category: dataset.CategoryGeneral, Importance: 1}}
	editions := []dataset.Edition{{ID: "ed", Name: "Ed"}}
	orphaned, _, err := dataset.Load(features, editions, []*dataset.Node{
		dataset.NewQuestion(dataset.RootID, "?", "", "leaf", ""),
		dataset.NewTerminal("leaf", "done", "ed"),
		dataset.NewTerminal("orphan", "alone", "ed"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ResolvePath(orphaned, "orphan"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound for orphan, got %v", err)
	}
}

func TestLocate(t *testing.T) {
	ds := dataset.Default()
	h := Build(ds)

	path, _ := ResolvePath(ds, "standard_result")
	slots, err := h.Locate(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != len(path) {
		t.Fatalf("got %d slots for %d nodes", len(slots), len(path))
	}
	if got := slots[len(slots)-1].Key; got != "root/no/yes/yes/yes/yes/no/no" {
		t.Errorf("unexpected terminal slot %q", got)
	}

	bad := Path{ds.Root(), mustNode(t, ds, "vm_node")}
	if _, err := h.Locate(bad); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound for a broken path, got %v", err)
	}
}

func mustNode(t *testing.T, ds *dataset.Dataset, id string) *dataset.Node {
	t.Helper()
	n, ok := ds.Node(id)
	if !ok {
		t.Fatalf("node %q missing", id)
	}
	return n
}
