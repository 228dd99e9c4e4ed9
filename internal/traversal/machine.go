// Package traversal holds the position of a user in the decision tree and
// applies yes/no transitions to it.
package traversal

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/tree"
)

var (
	// ErrInvalidTransition is returned for an answer with no matching edge,
	// or any answer once an edition is resolved.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrUnknownEdition means a terminal node names an edition that does not exist.
	ErrUnknownEdition = errors.New("unknown edition")
)

// State is the phase of a traversal.
type State int

const (
	Questioning State = iota
	Resolved
)

func (s State) String() string {
	switch s {
	case Questioning:
		return "questioning"
	case Resolved:
		return "resolved"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Observer receives the resolved edition after every transition, or nil
// when the current node is not terminal.
type Observer func(*dataset.Edition)

// Snapshot is a copy of the traversal state.
type Snapshot struct {
	CurrentID string
	Path      tree.Path
	History   []string
	State     State
	Edition   *dataset.Edition
}

// Machine is the traversal state machine. It is not safe for concurrent use;
// callers drive it from a single goroutine.
type Machine struct {
	ds        *dataset.Dataset
	observer  Observer
	questions int

	current *dataset.Node
	path    tree.Path
	state   State
	edition *dataset.Edition
	// history holds the ids of the nodes left by Answer and JumpTo, oldest
	// first. Back pops it.
	history []string
}

// New returns a machine positioned at the root. The observer may be nil.
func New(ds *dataset.Dataset, observer Observer) *Machine {
	m := &Machine{
		ds:        ds,
		observer:  observer,
		questions: tree.Build(ds).MaxDepth() - 1,
		current:   ds.Root(),
		path:      tree.Path{ds.Root()},
		state:     Questioning,
	}
	return m
}

// Dataset returns the dataset the machine walks.
func (m *Machine) Dataset() *dataset.Dataset { return m.ds }

// Current returns the current node.
func (m *Machine) Current() *dataset.Node { return m.current }

// Path returns a copy of the root-to-current path.
func (m *Machine) Path() tree.Path { return slices.Clone(m.path) }

// State returns the current phase.
func (m *Machine) State() State { return m.state }

// Edition returns the resolved edition, or nil while questioning.
func (m *Machine) Edition() *dataset.Edition { return m.edition }

// History returns the ids of the visited nodes that Back would return to,
// oldest first.
func (m *Machine) History() []string { return slices.Clone(m.history) }

// Snapshot returns a copy of the whole state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		CurrentID: m.current.ID(),
		Path:      m.Path(),
		History:   m.History(),
		State:     m.state,
		Edition:   m.edition,
	}
}

// CanAnswer reports whether Answer(c) would succeed. Hosts use it to
// enable or disable their yes/no controls.
func (m *Machine) CanAnswer(c dataset.Choice) bool {
	if m.state != Questioning {
		return false
	}
	_, ok := m.current.Target(c)
	return ok
}

// Answer follows the edge for c from the current node.
func (m *Machine) Answer(c dataset.Choice) error {
	if m.state != Questioning {
		return fmt.Errorf("answer %s in state %s: %w", c, m.state, ErrInvalidTransition)
	}
	target, ok := m.current.Target(c)
	if !ok {
		return fmt.Errorf("node %q has no %s edge: %w", m.current.ID(), c, ErrInvalidTransition)
	}
	return m.enter(target, m.pushed())
}

// JumpTo moves to any node reachable from root, as if it had been reached by answering.
func (m *Machine) JumpTo(id string) error {
	return m.enter(id, m.pushed())
}

// Back returns to the node the user was at before the last Answer or
// JumpTo. With no history it resets.
func (m *Machine) Back() error {
	n := len(m.history)
	if n == 0 {
		m.Reset()
		return nil
	}
	return m.enter(m.history[n-1], slices.Clone(m.history[:n-1]))
}

func (m *Machine) pushed() []string {
	return append(slices.Clone(m.history), m.current.ID())
}

// Reset returns to the root and clears any resolved edition.
func (m *Machine) Reset() {
	root := m.ds.Root()
	m.current = root
	m.path = tree.Path{root}
	m.state = Questioning
	m.edition = nil
	m.history = nil
	m.notify(nil)
}

// Progress estimates completion in percent from the number of steps taken.
// It reaches 100 only when an edition is resolved.
func (m *Machine) Progress() int {
	if m.state == Resolved {
		return 100
	}
	if m.questions <= 0 {
		return 0
	}
	steps := len(m.history)
	return min(int(math.Round(float64(steps)/float64(m.questions)*100)), 95)
}

// enter computes the full next state first and commits it, with history,
// only on success.
func (m *Machine) enter(id string, history []string) error {
	path, err := tree.ResolvePath(m.ds, id)
	if err != nil {
		return fmt.Errorf("jump to %q: %w", id, err)
	}
	node := path.Last()

	state := Questioning
	var ed *dataset.Edition
	if result, ok := node.Result(); ok {
		e, found := m.ds.Edition(result)
		if !found {
			return fmt.Errorf("node %q recommends %q: %w", node.ID(), result, ErrUnknownEdition)
		}
		state, ed = Resolved, e
	}

	m.current = node
	m.path = path
	m.state = state
	m.edition = ed
	m.history = history
	m.notify(ed)
	return nil
}

func (m *Machine) notify(ed *dataset.Edition) {
	if m.observer != nil {
		m.observer(ed)
	}
}
