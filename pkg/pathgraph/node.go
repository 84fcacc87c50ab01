package pathgraph

import (
	"github.com/pathtree/pathgraph/pkg/pathgraph/fsprovider"
)

// childList holds one directory's cached children, split at provisional
// (spec.md §3.3): children[0:provisional] are "real" (confirmed present as
// of the last successful readdir); children[provisional:] are provisional,
// synthesized to satisfy a resolve/child() call whose existence has not yet
// been confirmed.
type childList struct {
	entries     []*Node
	provisional int
}

// Node is a single entry in the path graph: one per unique observed
// filesystem name path. Fields mirror spec.md §3.1; nodes are never
// explicitly destroyed; they're reclaimed only when the owning children
// cache evicts their parent's list and no external reference survives.
type Node struct {
	graph *Graph

	name      string
	matchName string

	parent *Node
	root   *Node

	state State

	linkTarget *Node
	realTarget *Node

	stat *fsprovider.Stat

	fullpath      string
	fullpathSet   bool
	fullpathPosix string
	relative      string
	relativeSet   bool
	relativePosix string

	depth      int
	depthKnown bool

	// readdirPending is non-nil while an async readdir is in flight for
	// this node; additional callers join it rather than reissuing I/O
	// (spec.md §4.1.3's single-flight coalescing).
	readdirPending *readdirFuture
}

// Graph returns the graph this node belongs to.
func (n *Node) Graph() *Graph { return n.graph }

// Name returns the node's basename as currently observed. External callers
// should prefer IsNamed for comparisons, since two differently-cased or
// differently-normalized strings can both validly name the same node.
func (n *Node) Name() string { return n.name }

// Parent returns the node's parent, or nil if n is a root.
func (n *Node) Parent() *Node { return n.parent }

// Root returns the root node reachable from n (n itself, if n is a root).
func (n *Node) Root() *Node { return n.root }

// State returns the node's current type/state bitset.
func (n *Node) State() State { return n.state }

// IsNamed reports whether s names this node, comparing normalized match
// keys rather than raw strings (spec.md §4.1.8): direct .Name() comparison
// is unsafe because Unicode normalization or case differences can make
// equal names compare unequal.
func (n *Node) IsNamed(s string) bool {
	return n.matchName == matchKey(s, n.graph.caseSensitive)
}

// Depth returns the number of path components between n and its root.
func (n *Node) Depth() int {
	if n.depthKnown {
		return n.depth
	}
	depth := 0
	for p := n; p.parent != nil; p = p.parent {
		depth++
	}
	n.depth = depth
	n.depthKnown = true
	return depth
}

// Basename returns n's basename; a thin wrapper per spec.md §1.
func (n *Node) Basename() string { return n.name }

// Dirname returns n's parent, or n itself if n is a root; a thin wrapper
// per spec.md §1.
func (n *Node) Dirname() *Node {
	if n.parent != nil {
		return n.parent
	}
	return n
}

// children returns the node's cached child list, synthesizing (and
// caching) an empty one if the children-array LRU has evicted it or never
// held one. This is the single point of contact with the children cache;
// every child-list mutation goes through setChildren.
func (n *Node) children() *childList {
	if value, ok := n.graph.children.Get(n); ok {
		return value.(*childList)
	}
	list := &childList{}
	n.setChildren(list)
	return list
}

// setChildren re-stores the (mutated in place) child list, refreshing its
// LRU recency. The list is weighted at len(entries)+1 list-size units per
// spec.md §4.2, so a directory's footprint in the cache scales with how
// many children it actually holds rather than counting as a flat one slot
// regardless of size.
func (n *Node) setChildren(list *childList) {
	n.graph.children.Set(n, list, len(list.entries)+1)
}

// onChildrenEvicted is invoked by the children cache's eviction callback.
// Per spec.md §3.3, eviction must clear READDIR_CALLED so the next readdir
// actually reissues IO rather than trusting a list that no longer exists.
func (n *Node) onChildrenEvicted() {
	n.state &^= ReaddirCalled
}

// Fullpath lazily computes and memoizes n's absolute path string in the
// platform's native separator form.
func (n *Node) Fullpath() string {
	if n.fullpathSet {
		return n.fullpath
	}
	if n.parent == nil {
		n.fullpathSet = true
		return n.fullpath
	}
	sep := string(n.graph.platform.Separator())
	parentPath := n.parent.Fullpath()
	if parentPath == "" || parentPath[len(parentPath)-1] == n.graph.platform.Separator() {
		n.fullpath = parentPath + n.name
	} else {
		n.fullpath = parentPath + sep + n.name
	}
	n.fullpathSet = true
	return n.fullpath
}

// child implements spec.md §4.1.2: intern a single path component,
// allocating a provisional node if one doesn't already exist.
func (n *Node) child(part string) *Node {
	switch part {
	case "", ".":
		return n
	case "..":
		if n.parent != nil {
			return n.parent
		}
		return n
	}

	key := matchKey(part, n.graph.caseSensitive)
	list := n.children()
	for _, c := range list.entries {
		if c.matchName == key {
			return c
		}
	}

	child := &Node{
		graph:     n.graph,
		name:      part,
		matchName: key,
		parent:    n,
		root:      n.root,
		state:     IFMTUnknown,
	}
	if !n.state.canReaddir() {
		child.state = child.state.markENOENT()
	}

	list.entries = append(list.entries, child)
	n.setChildren(list)
	return child
}

// resolvePath resolves a (possibly empty) slash-or-backslash-separated
// remainder from n, interning each component via child(). isSep identifies
// the platform's valid separator bytes.
func (n *Node) resolvePath(remainder string, isSep func(byte) bool) *Node {
	current := n
	start := 0
	for i := 0; i < len(remainder); i++ {
		if isSep(remainder[i]) {
			if i > start {
				current = current.child(remainder[start:i])
			}
			start = i + 1
		}
	}
	if start < len(remainder) {
		current = current.child(remainder[start:])
	}
	return current
}
