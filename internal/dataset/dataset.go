package dataset

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Integrity errors reported by Load.
var (
	ErrMissingRoot       = errors.New("missing root node")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrDanglingReference = errors.New("dangling reference")
	ErrInvalidResult     = errors.New("invalid result")
	ErrCycle             = errors.New("cycle detected")
	ErrInvalidField      = errors.New("invalid field")
	ErrUnknownFeature    = errors.New("unknown feature")
	ErrMalformedNode     = errors.New("malformed node")
	ErrUnreachable       = errors.New("unreachable from root")
)

// Severity tells blocking findings from advisory ones.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Issue is a single validation finding.
type Issue struct {
	Subject  string // node, feature or edition id; empty for dataset-level findings
	Message  string
	Severity Severity
	Err      error
}

func (i Issue) Error() string {
	if i.Subject == "" {
		return fmt.Sprintf("[%s] %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Subject, i.Message)
}

func (i Issue) Unwrap() error { return i.Err }

// Report bundles blocking errors and advisory warnings.
type Report struct {
	Errors   []Issue
	Warnings []Issue
}

// Valid reports whether the dataset has no blocking findings.
func (r Report) Valid() bool { return len(r.Errors) == 0 }

// Err joins all blocking findings, or returns nil.
func (r Report) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

func (r *Report) fail(subject string, err error, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Subject: subject, Message: fmt.Sprintf(format, args...), Severity: SeverityError, Err: err})
}

func (r *Report) warn(subject string, err error, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Subject: subject, Message: fmt.Sprintf(format, args...), Severity: SeverityWarning, Err: err})
}

// Dataset is the immutable lookup table of features, editions and nodes.
// Lookups and listings hand out copies, so callers cannot change it.
type Dataset struct {
	features []Feature
	editions []Edition
	nodes    []*Node

	featuresByID map[string]*Feature
	editionsByID map[string]*Edition
	nodesByID    map[string]*Node
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load indexes and validates the given definitions. It refuses to build a
// dataset when any blocking finding exists; unreachable nodes are only warned about.
func Load(features []Feature, editions []Edition, nodes []*Node) (*Dataset, Report, error) {
	d := &Dataset{
		features:     slices.Clone(features),
		editions:     cloneEditions(editions),
		nodes:        slices.Clone(nodes),
		featuresByID: make(map[string]*Feature, len(features)),
		editionsByID: make(map[string]*Edition, len(editions)),
		nodesByID:    make(map[string]*Node, len(nodes)),
	}

	var rep Report
	d.index(&rep)
	d.checkReferences(&rep)
	d.checkCycles(&rep)
	d.checkReachability(&rep)

	if err := rep.Err(); err != nil {
		return nil, rep, fmt.Errorf("loading dataset: %w", err)
	}
	return d, rep, nil
}

func (d *Dataset) index(rep *Report) {
	for i := range d.features {
		f := &d.features[i]
		if err := validate.Struct(f); err != nil {
			rep.fail(f.ID, ErrInvalidField, "feature: %v", err)
		}
		if _, dup := d.featuresByID[f.ID]; dup {
			rep.fail(f.ID, ErrDuplicateID, "feature defined more than once")
			continue
		}
		d.featuresByID[f.ID] = f
	}

	for i := range d.editions {
		e := &d.editions[i]
		if err := validate.Struct(e); err != nil {
			rep.fail(e.ID, ErrInvalidField, "edition: %v", err)
		}
		if _, dup := d.editionsByID[e.ID]; dup {
			rep.fail(e.ID, ErrDuplicateID, "edition defined more than once")
			continue
		}
		d.editionsByID[e.ID] = e
	}

	for i, n := range d.nodes {
		if n == nil {
			rep.fail(fmt.Sprintf("nodes[%d]", i), ErrMalformedNode, "nil node")
			continue
		}
		if n.id == "" {
			rep.fail(fmt.Sprintf("nodes[%d]", i), ErrInvalidField, "node id is required")
			continue
		}
		if _, dup := d.nodesByID[n.id]; dup {
			rep.fail(n.id, ErrDuplicateID, "node defined more than once")
			continue
		}
		d.nodesByID[n.id] = n
	}
	d.nodes = slices.DeleteFunc(d.nodes, func(n *Node) bool { return n == nil })

	if _, ok := d.nodesByID[RootID]; !ok {
		rep.fail(RootID, ErrMissingRoot, "no node with id %q", RootID)
	}
}

func (d *Dataset) checkReferences(rep *Report) {
	for _, e := range d.editions {
		for fid := range e.Features {
			if _, ok := d.featuresByID[fid]; !ok {
				rep.fail(e.ID, ErrUnknownFeature, "status given for unknown feature %q", fid)
			}
		}
	}

	for _, n := range d.nodes {
		if n.featureID != "" {
			if _, ok := d.featuresByID[n.featureID]; !ok {
				rep.fail(n.id, ErrUnknownFeature, "annotated with unknown feature %q", n.featureID)
			}
		}
		switch n.kind {
		case KindQuestion:
			if n.yes == "" && n.no == "" {
				rep.fail(n.id, ErrMalformedNode, "question node has no outgoing edges")
			}
			for _, c := range Choices() {
				target, ok := n.Target(c)
				if !ok {
					continue
				}
				if _, exists := d.nodesByID[target]; !exists {
					rep.fail(n.id, ErrDanglingReference, "%s edge points to missing node %q", c, target)
				}
			}
		case KindTerminal:
			if _, ok := d.editionsByID[n.result]; !ok {
				rep.fail(n.id, ErrInvalidResult, "result %q is not a known edition", n.result)
			}
		default:
			rep.fail(n.id, ErrMalformedNode, "unknown node kind %s", n.kind)
		}
	}
}

// checkCycles runs a three-color DFS over every node.
func (d *Dataset) checkCycles(rep *Report) {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(d.nodes))

	var visit func(id string) bool
	visit = func(id string) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			rep.fail(id, ErrCycle, "node is part of a cycle")
			return true
		}
		color[id] = gray
		if n, ok := d.nodesByID[id]; ok {
			for _, c := range Choices() {
				if target, ok := n.Target(c); ok && visit(target) {
					return true
				}
			}
		}
		color[id] = black
		return false
	}

	for _, n := range d.nodes {
		if color[n.id] == white && visit(n.id) {
			return
		}
	}
}

func (d *Dataset) checkReachability(rep *Report) {
	if _, ok := d.nodesByID[RootID]; !ok {
		return
	}
	seen := map[string]bool{}
	stack := []string{RootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		n, ok := d.nodesByID[id]
		if !ok {
			continue
		}
		for _, c := range Choices() {
			if target, ok := n.Target(c); ok {
				stack = append(stack, target)
			}
		}
	}
	for _, n := range d.nodes {
		if !seen[n.id] {
			rep.warn(n.id, ErrUnreachable, "node is not reachable from %q", RootID)
		}
	}
}

// Feature looks up a feature by id and returns a copy of it.
func (d *Dataset) Feature(id string) (*Feature, bool) {
	f, ok := d.featuresByID[id]
	if !ok {
		return nil, false
	}
	c := *f
	return &c, true
}

// Edition looks up an edition by id and returns a copy of it.
func (d *Dataset) Edition(id string) (*Edition, bool) {
	e, ok := d.editionsByID[id]
	if !ok {
		return nil, false
	}
	c := e.clone()
	return &c, true
}

// Node looks up a decision node by id.
func (d *Dataset) Node(id string) (*Node, bool) {
	n, ok := d.nodesByID[id]
	return n, ok
}

// Root returns the root node. Load guarantees it exists.
func (d *Dataset) Root() *Node { return d.nodesByID[RootID] }

// Features returns all features in definition order.
func (d *Dataset) Features() []Feature { return slices.Clone(d.features) }

// Editions returns all editions in definition order.
func (d *Dataset) Editions() []Edition { return cloneEditions(d.editions) }

func cloneEditions(in []Edition) []Edition {
	out := make([]Edition, len(in))
	for i, e := range in {
		out[i] = e.clone()
	}
	return out
}

// Nodes returns all nodes in definition order.
func (d *Dataset) Nodes() []*Node { return slices.Clone(d.nodes) }

type loaded struct {
	ds  *Dataset
	rep Report
	err error
}

var loadDefault = sync.OnceValue(func() loaded {
	ds, rep, err := Load(sampleFeatures(), sampleEditions(), sampleNodes())
	return loaded{ds: ds, rep: rep, err: err}
})

// LoadDefault loads the compiled-in dataset once and returns it with its
// validation report. The dataset is nil when the report has blocking findings.
func LoadDefault() (*Dataset, Report, error) {
	l := loadDefault()
	return l.ds, l.rep, l.err
}

// Default returns the compiled-in dataset. It panics if the data is inconsistent.
func Default() *Dataset {
	ds, _, err := LoadDefault()
	if err != nil {
		panic(err)
	}
	return ds
}
