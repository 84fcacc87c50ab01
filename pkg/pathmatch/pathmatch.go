// Package pathmatch layers doublestar glob patterns on top of the path
// graph's walk engine, serving the "faster alternative... for globbing"
// use case the graph exists for without requiring every caller to hand-roll
// a filter/walkFilter pair. It is grounded on the teacher's
// pkg/synchronization/core/ignore/mutagen/ignore.go, which compiles
// doublestar patterns and matches full paths against them the same way.
package pathmatch

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"

	"github.com/pathtree/pathgraph/pkg/comparison"
	"github.com/pathtree/pathgraph/pkg/pathgraph"
)

// Pattern is a validated doublestar glob pattern bound to a base node, ready
// to drive a Graph.Walk/WalkSync call via Filter and WalkFilter.
type Pattern struct {
	base    *pathgraph.Node
	raw     string
	literal []string
}

// Compile validates pattern (doublestar syntax: "*", "**", "?", character
// classes) and binds it to base, the node paths will be matched relative
// to. It fails the same way doublestar.Match would fail on a malformed
// pattern.
func Compile(base *pathgraph.Node, pattern string) (*Pattern, error) {
	if _, err := doublestar.Match(pattern, "probe"); err != nil {
		return nil, errors.Wrap(err, "invalid glob pattern")
	}
	return &Pattern{
		base:    base,
		raw:     pattern,
		literal: literalPrefixSegments(pattern),
	}, nil
}

// relative computes node's path relative to p.base using forward slashes,
// the separator doublestar patterns are always written against.
func (p *Pattern) relative(node *pathgraph.Node) string {
	var parts []string
	for n := node; n != p.base && n.Parent() != nil; n = n.Parent() {
		parts = append([]string{n.Basename()}, parts...)
	}
	return strings.Join(parts, "/")
}

// Match reports whether node's path relative to the pattern's base matches
// the glob.
func (p *Pattern) Match(node *pathgraph.Node) bool {
	matched, err := doublestar.Match(p.raw, p.relative(node))
	return err == nil && matched
}

// Filter returns a predicate suitable for pathgraph.WithFilter: it emits a
// node exactly when its relative path matches the pattern.
func (p *Pattern) Filter() func(*pathgraph.Node) bool {
	return p.Match
}

// WalkFilter returns a predicate suitable for pathgraph.WithWalkFilter: it
// permits descent into a directory only while the directory's relative path
// is still consistent with the pattern's literal (non-wildcard) leading
// segments, pruning subtrees the pattern could never match under. Once the
// pattern's prefix contains a wildcard segment ("*", "**", or one
// containing "?"/"["), every directory is a candidate and no pruning
// happens beyond that point.
func (p *Pattern) WalkFilter() func(*pathgraph.Node) bool {
	return func(node *pathgraph.Node) bool {
		if node == p.base {
			return true
		}
		depth := 0
		for n := node; n != p.base && n.Parent() != nil; n = n.Parent() {
			depth++
		}
		if depth > len(p.literal) {
			return true
		}
		segments := strings.Split(p.relative(node), "/")
		if len(segments) >= len(p.literal) {
			if !comparison.StringSlicesEqual(segments[:len(p.literal)], p.literal) {
				return false
			}
		} else if !comparison.StringSlicesEqual(segments, p.literal[:len(segments)]) {
			return false
		}
		return true
	}
}

// literalPrefixSegments returns the leading run of pattern segments that
// contain no glob metacharacters, used by WalkFilter to prune descent early
// for patterns like "a/b/**/*.go" (literal prefix "a", "b").
func literalPrefixSegments(pattern string) []string {
	var literal []string
	for _, seg := range strings.Split(pattern, "/") {
		if strings.ContainsAny(seg, "*?[{") {
			break
		}
		literal = append(literal, seg)
	}
	return literal
}
