package pathgraph

import (
	"os"
	"os/user"
	"strings"
)

// expandTilde expands a leading "~" or "~user" path segment into the
// relevant home directory, grounded on the teacher's
// pkg/filesystem.tildeExpand. Unlike the teacher's version this never
// returns an error: a lookup failure (unknown user, no home directory) just
// leaves the segment untouched, since Resolve has no error return to
// surface it through and a best-effort pass-through is the safer default
// for a path-resolution convenience.
func (g *Graph) expandTilde(segment string) string {
	if segment == "" || segment[0] != '~' {
		return segment
	}

	sepIndex := -1
	for i := 0; i < len(segment); i++ {
		if g.platform.IsSeparator(segment[i]) {
			sepIndex = i
			break
		}
	}

	var username, remaining string
	if sepIndex > 0 {
		username = segment[1:sepIndex]
		remaining = segment[sepIndex+1:]
	} else if sepIndex < 0 {
		username = segment[1:]
	}

	var home string
	if username == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return segment
		}
		home = h
	} else {
		u, err := user.Lookup(username)
		if err != nil {
			return segment
		}
		home = u.HomeDir
	}

	if remaining == "" {
		return home
	}
	return strings.TrimRight(home, string(g.platform.Separator())) + string(g.platform.Separator()) + remaining
}
