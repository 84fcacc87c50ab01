package pathgraph

import "strings"

// Chdir updates the graph's cwd to the node resolved from path and
// rewrites affected cached relative strings (spec.md §4.1.7, §6).
func (g *Graph) Chdir(path string) {
	newCwd := g.resolveNode([]string{path}, g.resolveCacheNative)
	oldCwd := g.cwd
	g.cwd = newCwd
	newCwd.setAsCwd(oldCwd)
}

// setAsCwd implements spec.md §4.1.7: every ancestor of the new cwd
// (exclusive of the root) gets its relative/relativePosix slots rewritten
// to "../" × depth; every node between the old cwd and the nearest common
// ancestor has its memoized relative strings invalidated instead, since
// they're no longer valid but their replacement isn't yet known.
func (n *Node) setAsCwd(oldCwd *Node) {
	depth := 0
	for ancestor := n; ancestor.parent != nil; ancestor = ancestor.parent {
		ancestor.relative = strings.Repeat("../", depth)
		ancestor.relativePosix = ancestor.relative
		ancestor.relativeSet = true
		depth++
	}

	if oldCwd == nil {
		return
	}
	for p := oldCwd; p != nil; p = p.parent {
		if p.relativeSet && !p.isAncestorOf(n) {
			p.relativeSet = false
			p.relative = ""
			p.relativePosix = ""
		}
	}
}

// isAncestorOf reports whether n is an ancestor of (or equal to) other.
func (n *Node) isAncestorOf(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Relative returns entry's path relative to the graph's current cwd, in
// the platform's native separator form.
func (g *Graph) Relative(entry *Node) string {
	return relativeBetween(g.cwd, entry, g.platform.Separator())
}

// RelativePosix is identical to Relative but always uses forward slashes.
func (g *Graph) RelativePosix(entry *Node) string {
	return relativeBetween(g.cwd, entry, '/')
}

// relativeBetween computes a relative path from base to target by walking
// up from target to the nearest common ancestor with base, then back down.
func relativeBetween(base, target *Node, sep byte) string {
	baseAncestors := map[*Node]int{}
	depth := 0
	for p := base; p != nil; p = p.parent {
		baseAncestors[p] = depth
		depth++
	}

	var down []string
	for p := target; p != nil; p = p.parent {
		if upCount, ok := baseAncestors[p]; ok {
			var parts []string
			for i := 0; i < upCount; i++ {
				parts = append(parts, "..")
			}
			for i := len(down) - 1; i >= 0; i-- {
				parts = append(parts, down[i])
			}
			if len(parts) == 0 {
				return "."
			}
			return strings.Join(parts, string(sep))
		}
		down = append(down, p.name)
	}

	return target.Fullpath()
}
