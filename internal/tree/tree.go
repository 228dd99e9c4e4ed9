// Package tree derives the drawn hierarchy from the decision graph and
// resolves root-to-node paths through it.
package tree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
)

// ErrNodeNotFound is returned when a node id is not reachable from root.
var ErrNodeNotFound = errors.New("node not found")

// Node is one slot of the hierarchy. A decision node reachable along several
// paths gets one slot per path.
type Node struct {
	Key      string // choice path from root, e.g. "root/no/yes"
	Decision *dataset.Node
	Parent   *Node
	Children []*Node
	Branch   dataset.Choice // choice taken from Parent; empty at root
	Depth    int
	Index    int // pre-order position
}

// IsLeaf reports whether the slot has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Hierarchy is the tree view of a dataset, children ordered yes then no.
type Hierarchy struct {
	root   *Node
	slots  []*Node
	byKey  map[string]*Node
	byID   map[string][]*Node
	levels []int
}

// Build constructs the hierarchy. The dataset must be acyclic, which Load
// guarantees. The result is never modified, so callers build it once and share it.
func Build(ds *dataset.Dataset) *Hierarchy {
	h := &Hierarchy{
		byKey: make(map[string]*Node),
		byID:  make(map[string][]*Node),
	}
	h.root = h.add(ds, ds.Root(), nil, "", dataset.RootID, 0)
	return h
}

func (h *Hierarchy) add(ds *dataset.Dataset, d *dataset.Node, parent *Node, branch dataset.Choice, key string, depth int) *Node {
	n := &Node{
		Key:      key,
		Decision: d,
		Parent:   parent,
		Branch:   branch,
		Depth:    depth,
		Index:    len(h.slots),
	}
	h.slots = append(h.slots, n)
	h.byKey[key] = n
	h.byID[d.ID()] = append(h.byID[d.ID()], n)
	if depth >= len(h.levels) {
		h.levels = append(h.levels, 0)
	}
	h.levels[depth]++

	for _, c := range dataset.Choices() {
		target, ok := d.Target(c)
		if !ok {
			continue
		}
		child, ok := ds.Node(target)
		if !ok {
			continue
		}
		n.Children = append(n.Children, h.add(ds, child, n, c, key+"/"+string(c), depth+1))
	}
	return n
}

// Root returns the root slot.
func (h *Hierarchy) Root() *Node { return h.root }

// Slots returns every slot in pre-order.
func (h *Hierarchy) Slots() []*Node { return h.slots }

// Len returns the number of slots.
func (h *Hierarchy) Len() int { return len(h.slots) }

// Slot returns the slot with the given key.
func (h *Hierarchy) Slot(key string) (*Node, bool) {
	n, ok := h.byKey[key]
	return n, ok
}

// SlotsOf returns all slots drawing the given decision node, in pre-order.
func (h *Hierarchy) SlotsOf(id string) []*Node { return h.byID[id] }

// MaxDepth is the number of levels: the longest root-to-leaf chain plus one.
func (h *Hierarchy) MaxDepth() int { return len(h.levels) }

// MaxLevelWidth is the largest number of slots at any single depth.
func (h *Hierarchy) MaxLevelWidth() int {
	w := 0
	for _, n := range h.levels {
		w = max(w, n)
	}
	return w
}

// Locate maps a root-to-node path onto hierarchy slots. When a question
// has both edges pointing at the same node the yes slot is used.
func (h *Hierarchy) Locate(path Path) ([]*Node, error) {
	if len(path) == 0 {
		return nil, nil
	}
	if path[0].ID() != h.root.Decision.ID() {
		return nil, fmt.Errorf("path starts at %q: %w", path[0].ID(), ErrNodeNotFound)
	}
	slots := []*Node{h.root}
	cur := h.root
	for _, next := range path[1:] {
		var found *Node
		for _, c := range cur.Children {
			if c.Decision.ID() == next.ID() {
				found = c
				break
			}
		}
		if found == nil {
			return nil, fmt.Errorf("no edge from %q to %q: %w", cur.Decision.ID(), next.ID(), ErrNodeNotFound)
		}
		slots = append(slots, found)
		cur = found
	}
	return slots, nil
}

// Path is an ordered sequence of decision nodes from root.
type Path []*dataset.Node

// Last returns the final node of the path, or nil.
func (p Path) Last() *dataset.Node {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// IDs returns the node ids along the path.
func (p Path) IDs() []string {
	ids := make([]string, len(p))
	for i, n := range p {
		ids[i] = n.ID()
	}
	return ids
}

// Contains reports whether the node id lies on the path.
func (p Path) Contains(id string) bool {
	for _, n := range p {
		if n.ID() == id {
			return true
		}
	}
	return false
}

// Choices returns the answer taken between each consecutive pair of nodes.
func (p Path) Choices() []dataset.Choice {
	if len(p) < 2 {
		return nil
	}
	out := make([]dataset.Choice, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		for _, c := range dataset.Choices() {
			if t, ok := p[i-1].Target(c); ok && t == p[i].ID() {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func (p Path) String() string { return strings.Join(p.IDs(), " > ") }

// ResolvePath finds the root-to-target path with a depth-first search that
// follows yes before no and returns the first match.
func ResolvePath(ds *dataset.Dataset, target string) (Path, error) {
	if _, ok := ds.Node(target); !ok {
		return nil, fmt.Errorf("resolving %q: %w", target, ErrNodeNotFound)
	}
	var path Path
	var search func(n *dataset.Node) bool
	search = func(n *dataset.Node) bool {
		path = append(path, n)
		if n.ID() == target {
			return true
		}
		for _, c := range dataset.Choices() {
			id, ok := n.Target(c)
			if !ok {
				continue
			}
			child, ok := ds.Node(id)
			if !ok {
				continue
			}
			if search(child) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}
	if !search(ds.Root()) {
		return nil, fmt.Errorf("resolving %q: %w", target, ErrNodeNotFound)
	}
	return path, nil
}
