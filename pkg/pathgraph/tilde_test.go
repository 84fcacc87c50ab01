package pathgraph

import (
	"os"
	"testing"
)

func TestResolveExpandsBareTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available in this environment")
	}

	g, _ := newTestGraph(t, "/")
	if got := g.Resolve("~"); got != home {
		t.Fatalf("Resolve(\"~\") = %q, want %q", got, home)
	}
}

func TestResolveExpandsTildeWithSubpath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available in this environment")
	}

	g, _ := newTestGraph(t, "/")
	if got := g.Resolve("~/docs"); got != home+"/docs" {
		t.Fatalf("Resolve(\"~/docs\") = %q, want %q", got, home+"/docs")
	}
}

func TestResolveLeavesNonTildeSegmentsAlone(t *testing.T) {
	g, provider := newTestGraph(t, "/")
	provider.mkdir("/a")

	if got := g.Resolve("/a"); got != "/a" {
		t.Fatalf("Resolve(\"/a\") = %q, want /a", got)
	}
}
