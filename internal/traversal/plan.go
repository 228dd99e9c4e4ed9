package traversal

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
)

// ErrUnknownFeature is returned by Plan for a feature id not in the dataset.
var ErrUnknownFeature = errors.New("unknown feature")

// Replay returns to the root and applies answers in order, replacing the
// history with the nodes they pass through. Nothing changes if any answer
// cannot be taken.
func (m *Machine) Replay(answers []dataset.Choice) error {
	node := m.ds.Root()
	visited := make([]string, 0, len(answers))
	for i, c := range answers {
		if node.IsTerminal() {
			return fmt.Errorf("answer %d (%s) after %q: %w", i+1, c, node.ID(), ErrInvalidTransition)
		}
		next, ok := node.Target(c)
		if !ok {
			return fmt.Errorf("answer %d: node %q has no %s edge: %w", i+1, node.ID(), c, ErrInvalidTransition)
		}
		visited = append(visited, node.ID())
		node, _ = m.ds.Node(next)
	}
	return m.enter(node.ID(), visited)
}

// Plan picks the answers, starting at the root, that lead to an edition
// offering every required feature. At each question it says yes when the
// question is about a required feature, otherwise no when the no branch
// still satisfies the requirements. When nothing satisfies them it leans
// towards yes, which leads to the richer editions.
func Plan(ds *dataset.Dataset, required []string) ([]dataset.Choice, error) {
	for _, id := range required {
		if _, ok := ds.Feature(id); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, id)
		}
	}
	p := &planner{ds: ds, required: required, memo: make(map[string]plan)}
	return p.walk(dataset.RootID).answers, nil
}

// Missing lists the required features ed does not fully provide.
func Missing(ds *dataset.Dataset, ed *dataset.Edition, required []string) []dataset.Feature {
	var out []dataset.Feature
	for _, id := range required {
		if ed.Status(id) == dataset.StatusPresent {
			continue
		}
		if f, ok := ds.Feature(id); ok {
			out = append(out, *f)
		}
	}
	return out
}

type plan struct {
	answers []dataset.Choice
	edition *dataset.Edition
}

type planner struct {
	ds       *dataset.Dataset
	required []string
	memo     map[string]plan
}

func (p *planner) walk(id string) plan {
	if pl, ok := p.memo[id]; ok {
		return pl
	}
	n, _ := p.ds.Node(id)
	var pl plan
	if result, ok := n.Result(); ok {
		pl.edition, _ = p.ds.Edition(result)
	} else {
		c := p.choose(n)
		next, _ := n.Target(c)
		sub := p.walk(next)
		pl = plan{answers: append([]dataset.Choice{c}, sub.answers...), edition: sub.edition}
	}
	p.memo[id] = pl
	return pl
}

func (p *planner) choose(n *dataset.Node) dataset.Choice {
	_, hasYes := n.Target(dataset.Yes)
	no, hasNo := n.Target(dataset.No)
	switch {
	case !hasNo:
		return dataset.Yes
	case !hasYes:
		return dataset.No
	case n.FeatureID() != "" && slices.Contains(p.required, n.FeatureID()):
		return dataset.Yes
	case p.covers(p.walk(no).edition):
		return dataset.No
	}
	return dataset.Yes
}

func (p *planner) covers(ed *dataset.Edition) bool {
	return ed != nil && lo.EveryBy(p.required, func(id string) bool {
		return ed.Status(id) == dataset.StatusPresent
	})
}
