package analysis

import "math"

type TreeNode struct {
	State  State
	Parent *TreeNode
	// Fired is the transition index that led here, -1 at the root.
	Fired    int
	Children []*TreeNode
	// Duplicate is set when the state was already expanded elsewhere.
	Duplicate bool
}

type Tree struct {
	Root *TreeNode
}

// CTree builds the coverability tree of the net from initial. Places that
// can grow without bound are set to Omega.
func (net *Net) CTree(initial State) *Tree {
	seen := make(map[string]bool)
	root := &TreeNode{State: initial, Fired: -1}
	net.buildTree(seen, root)
	return &Tree{Root: root}
}

func (net *Net) buildTree(seen map[string]bool, node *TreeNode) {
	id := node.State.String()
	if seen[id] {
		node.Duplicate = true
		return
	}
	seen[id] = true
	for t := range net.Transitions {
		next, ok := net.NextState(node.State, t)
		if !ok {
			continue
		}
		for par := node; par != nil; par = par.Parent {
			if next.Dominates(par.State) {
				for i := range next {
					if next[i] > par.State[i] {
						next[i] = Omega
					}
				}
			}
		}
		node.Children = append(node.Children, &TreeNode{State: next, Parent: node, Fired: t})
	}
	for _, child := range node.Children {
		net.buildTree(seen, child)
	}
}

func (t *Tree) Walk(fn func(*TreeNode)) {
	var walk func(*TreeNode)
	walk = func(n *TreeNode) {
		fn(n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t.Root)
}

// Reachable reports whether s appears in the tree. For a bounded net this is
// exact reachability.
func (t *Tree) Reachable(s State) bool {
	found := false
	t.Walk(func(n *TreeNode) {
		found = found || n.State.Equal(s)
	})
	return found
}

// Coverable reports whether some state in the tree covers s.
func (t *Tree) Coverable(s State) bool {
	found := false
	t.Walk(func(n *TreeNode) {
		found = found || n.State.Covers(s)
	})
	return found
}

// Bounded reports whether no place ever reaches Omega.
func (t *Tree) Bounded() bool {
	bounded := true
	t.Walk(func(n *TreeNode) {
		for _, v := range n.State {
			if math.IsInf(v, 1) {
				bounded = false
			}
		}
	})
	return bounded
}

// Dead returns the states in which no transition can fire.
func (t *Tree) Dead() []State {
	var ret []State
	t.Walk(func(n *TreeNode) {
		if len(n.Children) == 0 && !n.Duplicate {
			ret = append(ret, n.State)
		}
	})
	return ret
}
