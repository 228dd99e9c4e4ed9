package layout

import "github.com/ziadkadry99/edition-advisor/internal/tree"

// walker is the per-slot state of the Buchheim/Walker tidy tree algorithm.
type walker struct {
	slot     *tree.Node
	parent   *walker
	children []*walker

	ancestor        *walker // a
	defaultAncestor *walker // A
	thread          *walker // t

	prelim float64 // z
	mod    float64 // m
	change float64 // c
	shift  float64 // s
	index  int     // position among siblings

	breadth float64
}

// separationFunc returns the gap between two neighbouring slots in units of node spacing.
type separationFunc func(a, b *tree.Node) float64

// tidy assigns each slot a breadth coordinate in units of node spacing, the
// root at zero. The result is indexed by slot Index.
func tidy(h *tree.Hierarchy, sep separationFunc) []float64 {
	root := wrap(h.Root(), nil, 0)
	sentinel := &walker{children: []*walker{root}}
	sentinel.ancestor = sentinel
	root.parent = sentinel

	eachAfter(root, func(v *walker) { firstWalk(v, sep) })
	sentinel.mod = -root.prelim
	eachBefore(root, secondWalk)

	out := make([]float64, h.Len())
	eachBefore(root, func(v *walker) { out[v.slot.Index] = v.breadth })
	return out
}

func wrap(n *tree.Node, parent *walker, index int) *walker {
	w := &walker{slot: n, parent: parent, index: index}
	w.ancestor = w
	for i, c := range n.Children {
		w.children = append(w.children, wrap(c, w, i))
	}
	return w
}

func eachAfter(v *walker, fn func(*walker)) {
	for _, c := range v.children {
		eachAfter(c, fn)
	}
	fn(v)
}

func eachBefore(v *walker, fn func(*walker)) {
	fn(v)
	for _, c := range v.children {
		eachBefore(c, fn)
	}
}

// firstWalk computes a preliminary position for v once its subtree and left
// siblings are placed, then pushes v's subtree clear of its left neighbours.
func firstWalk(v *walker, sep separationFunc) {
	siblings := v.parent.children
	var w *walker
	if v.index > 0 {
		w = siblings[v.index-1]
	}
	if len(v.children) > 0 {
		executeShifts(v)
		midpoint := (v.children[0].prelim + v.children[len(v.children)-1].prelim) / 2
		if w != nil {
			v.prelim = w.prelim + sep(v.slot, w.slot)
			v.mod = v.prelim - midpoint
		} else {
			v.prelim = midpoint
		}
	} else if w != nil {
		v.prelim = w.prelim + sep(v.slot, w.slot)
	}
	anc := v.parent.defaultAncestor
	if anc == nil {
		anc = siblings[0]
	}
	v.parent.defaultAncestor = apportion(v, w, anc, sep)
}

// secondWalk resolves final positions by summing modifiers from the root down.
func secondWalk(v *walker) {
	v.breadth = v.prelim + v.parent.mod
	v.mod += v.parent.mod
}

func apportion(v, w, ancestor *walker, sep separationFunc) *walker {
	if w == nil {
		return ancestor
	}
	vip, vop := v, v
	vim := w
	vom := v.parent.children[0]
	sip, sop := vip.mod, vop.mod
	sim, som := vim.mod, vom.mod

	for {
		vim = nextRight(vim)
		vip = nextLeft(vip)
		if vim == nil || vip == nil {
			break
		}
		vom = nextLeft(vom)
		vop = nextRight(vop)
		vop.ancestor = v
		shift := vim.prelim + sim - vip.prelim - sip + sep(vim.slot, vip.slot)
		if shift > 0 {
			moveSubtree(nextAncestor(vim, v, ancestor), v, shift)
			sip += shift
			sop += shift
		}
		sim += vim.mod
		sip += vip.mod
		som += vom.mod
		sop += vop.mod
	}
	if vim != nil && nextRight(vop) == nil {
		vop.thread = vim
		vop.mod += sim - sop
	}
	if vip != nil && nextLeft(vom) == nil {
		vom.thread = vip
		vom.mod += sip - som
		ancestor = v
	}
	return ancestor
}

func nextLeft(v *walker) *walker {
	if len(v.children) > 0 {
		return v.children[0]
	}
	return v.thread
}

func nextRight(v *walker) *walker {
	if len(v.children) > 0 {
		return v.children[len(v.children)-1]
	}
	return v.thread
}

func moveSubtree(wm, wp *walker, shift float64) {
	change := shift / float64(wp.index-wm.index)
	wp.change -= change
	wp.shift += shift
	wm.change += change
	wp.prelim += shift
	wp.mod += shift
}

func executeShifts(v *walker) {
	var shift, change float64
	for i := len(v.children) - 1; i >= 0; i-- {
		w := v.children[i]
		w.prelim += shift
		w.mod += shift
		change += w.change
		shift += w.shift + change
	}
}

func nextAncestor(vim, v, ancestor *walker) *walker {
	if vim.ancestor.parent == v.parent {
		return vim.ancestor
	}
	return ancestor
}
