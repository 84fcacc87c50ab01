package pathgraph

import (
	"context"

	"github.com/pathtree/pathgraph/pkg/contextutil"
	"github.com/pathtree/pathgraph/pkg/pathgraph/internal/objectstream"
)

// WalkOption configures a walk (spec.md §6 "Walk options").
type WalkOption func(*walkConfig)

type walkConfig struct {
	follow     bool
	filter     func(*Node) bool
	walkFilter func(*Node) bool
}

func newWalkConfig(opts []WalkOption) walkConfig {
	cfg := walkConfig{
		filter:     func(*Node) bool { return true },
		walkFilter: func(*Node) bool { return true },
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithFollow enables descending into symlinked directories via realpath
// (default false).
func WithFollow(follow bool) WalkOption {
	return func(c *walkConfig) { c.follow = follow }
}

// WithFilter gates emission only, not descent.
func WithFilter(filter func(*Node) bool) WalkOption {
	return func(c *walkConfig) { c.filter = filter }
}

// WithWalkFilter gates descent only, not emission.
func WithWalkFilter(filter func(*Node) bool) WalkOption {
	return func(c *walkConfig) { c.walkFilter = filter }
}

// shouldWalk implements spec.md §4.4 step 3c: true iff candidate is a
// directory, carries none of the ENOCHILD bits, hasn't already been
// visited, and the walk filter accepts it. A candidate whose type is still
// unknown (e.g. a walk's starting entry) is lstat'ed first to learn it.
func shouldWalk(candidate *Node, visited map[*Node]bool, cfg walkConfig) bool {
	if candidate == nil {
		return false
	}
	if candidate.state.ifmt() == IFMTUnknown {
		candidate.LstatSync()
	}
	if candidate.state.ifmt() != IFMTDir || candidate.state&ENOChild != 0 {
		return false
	}
	if visited[candidate] {
		return false
	}
	return cfg.walkFilter(candidate)
}

// followCandidate resolves the directory that should actually be descended
// into for child: child itself, unless it's a symlink and follow is
// enabled, in which case its realpath target (refined with an lstat if its
// type is still unknown) stands in for it (spec.md §4.4 step 3b).
func followCandidate(child *Node, follow bool) *Node {
	if !follow || child.state.ifmt() != IFMTSymlink {
		return child
	}
	target := child.RealpathSync()
	if target != nil && target.state.ifmt() == IFMTUnknown {
		target.LstatSync()
	}
	return target
}

// WalkSync implements spec.md §4.4's array surface shape, synchronously.
func (g *Graph) WalkSync(entry *Node, opts ...WalkOption) []*Node {
	cfg := newWalkConfig(opts)
	var results []*Node
	visited := map[*Node]bool{}

	if cfg.filter(entry) {
		results = append(results, entry)
	}
	if shouldWalk(entry, visited, cfg) {
		visited[entry] = true
		g.walkDirSync(entry, visited, cfg, func(n *Node) { results = append(results, n) })
	}
	return results
}

func (g *Graph) walkDirSync(dir *Node, visited map[*Node]bool, cfg walkConfig, emit func(*Node)) {
	for _, child := range dir.ReaddirSync() {
		if cfg.filter(child) {
			emit(child)
		}
		candidate := followCandidate(child, cfg.follow)
		if shouldWalk(candidate, visited, cfg) {
			visited[candidate] = true
			g.walkDirSync(candidate, visited, cfg, emit)
		}
	}
}

// Walk implements the async array surface shape: it returns a channel that
// delivers the full result slice exactly once, having performed the
// traversal on a separate goroutine (the only suspension points are the
// underlying async readdir/realpath/lstat calls, per spec.md §5; here we
// simply run the synchronous algorithm off the caller's goroutine since Go
// doesn't need cooperative scheduling to avoid blocking the caller).
func (g *Graph) Walk(entry *Node, opts ...WalkOption) <-chan []*Node {
	result := make(chan []*Node, 1)
	go func() { result <- g.WalkSync(entry, opts...) }()
	return result
}

// Iterator yields nodes one at a time. Its Next()-based shape (rather than
// an iter.Seq, introduced after this module's pinned go 1.17 language
// level) lets callers pull results incrementally without collecting the
// whole walk into memory first.
type Iterator struct {
	ch   <-chan *Node
	done <-chan struct{}

	current *Node
}

// Next advances the iterator and reports whether a node was produced.
func (it *Iterator) Next() bool {
	node, ok := <-it.ch
	if !ok {
		return false
	}
	it.current = node
	return true
}

// Node returns the node produced by the most recent call to Next.
func (it *Iterator) Node() *Node { return it.current }

// IterateSync implements spec.md §4.4's pull-iterator surface shape,
// synchronously: the traversal runs on an internal goroutine, pacing itself
// to the consumer's Next() calls via an unbuffered channel (structural
// backpressure, distinct from the explicit drain protocol Stream uses).
func (g *Graph) IterateSync(entry *Node, opts ...WalkOption) *Iterator {
	cfg := newWalkConfig(opts)
	ch := make(chan *Node)
	done := make(chan struct{})

	go func() {
		defer close(ch)
		visited := map[*Node]bool{}
		emit := func(n *Node) {
			select {
			case ch <- n:
			case <-done:
			}
		}
		if cfg.filter(entry) {
			emit(entry)
		}
		if shouldWalk(entry, visited, cfg) {
			visited[entry] = true
			g.iterateDirSync(entry, visited, cfg, emit, done)
		}
	}()

	return &Iterator{ch: ch, done: done}
}

func (g *Graph) iterateDirSync(dir *Node, visited map[*Node]bool, cfg walkConfig, emit func(*Node), done <-chan struct{}) {
	for _, child := range dir.ReaddirSync() {
		select {
		case <-done:
			return
		default:
		}
		if cfg.filter(child) {
			emit(child)
		}
		candidate := followCandidate(child, cfg.follow)
		if shouldWalk(candidate, visited, cfg) {
			visited[candidate] = true
			g.iterateDirSync(candidate, visited, cfg, emit, done)
		}
	}
}

// StreamSync implements spec.md §4.4's backpressure-aware stream surface
// shape over internal/objectstream: the producer blocks on each Send until
// the consumer has Recv'd that value, so a paused consumer
// directly stalls the underlying readdir traversal (spec.md seed scenario
// 6) rather than buffering unboundedly.
func (g *Graph) StreamSync(ctx context.Context, entry *Node, opts ...WalkOption) *objectstream.Stream {
	cfg := newWalkConfig(opts)
	stream := objectstream.New(ctx)

	go func() {
		defer stream.Close()
		visited := map[*Node]bool{}
		if cfg.filter(entry) {
			if !stream.Send(entry) {
				return
			}
		}
		if shouldWalk(entry, visited, cfg) {
			visited[entry] = true
			g.streamDirSync(ctx, stream, entry, visited, cfg)
		}
	}()

	return stream
}

// streamDirSync recurses through dir, sending each matching descendant. It
// checks ctx before issuing each directory's readdir so that a cancellation
// that lands between two Send calls skips the now-pointless I/O rather than
// only being caught by the next blocking Send.
func (g *Graph) streamDirSync(ctx context.Context, stream *objectstream.Stream, dir *Node, visited map[*Node]bool, cfg walkConfig) bool {
	if contextutil.IsCancelled(ctx) {
		return false
	}
	for _, child := range dir.ReaddirSync() {
		if cfg.filter(child) {
			if !stream.Send(child) {
				return false
			}
		}
		candidate := followCandidate(child, cfg.follow)
		if shouldWalk(candidate, visited, cfg) {
			visited[candidate] = true
			if !g.streamDirSync(ctx, stream, candidate, visited, cfg) {
				return false
			}
		}
	}
	return true
}
