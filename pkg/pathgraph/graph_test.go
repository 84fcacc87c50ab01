package pathgraph

import (
	"testing"

	"github.com/pathtree/pathgraph/pkg/pathgraph/platform"
)

func newTestGraph(t *testing.T, cwd string) (*Graph, *memProvider) {
	t.Helper()
	provider := newMemProvider()
	g, err := New(cwd, WithPlatform(platform.POSIX{}), WithProvider(provider), WithCaseSensitivity(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, provider
}

func TestNewRejectsRelativeCwd(t *testing.T) {
	_, err := New("relative/path", WithPlatform(platform.POSIX{}), WithProvider(newMemProvider()))
	if err == nil {
		t.Fatal("expected an error constructing a graph with a non-absolute cwd")
	}
}

func TestNewResolvesCwdNode(t *testing.T) {
	g, provider := newTestGraph(t, "/home/user")
	provider.mkdir("/home/user")

	if g.Cwd() == nil {
		t.Fatal("expected a non-nil cwd node")
	}
	if got := g.Cwd().Fullpath(); got != "/home/user" {
		t.Fatalf("Fullpath() = %q, want /home/user", got)
	}
}

func TestWithCaseSensitivityOverridesPlatformDefault(t *testing.T) {
	provider := newMemProvider()
	g, err := New("/", WithPlatform(platform.Darwin{}), WithProvider(provider), WithCaseSensitivity(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !g.caseSensitive {
		t.Fatal("expected explicit WithCaseSensitivity(true) to override Darwin's case-insensitive default")
	}
}

func TestDefaultCaseSensitivityFollowsPlatform(t *testing.T) {
	provider := newMemProvider()
	g, err := New("/", WithPlatform(platform.Darwin{}), WithProvider(provider))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.caseSensitive {
		t.Fatal("expected Darwin's default case-insensitivity to apply absent an override")
	}
}

func TestRootNodeIsSingleton(t *testing.T) {
	g, _ := newTestGraph(t, "/")
	a := g.rootNode("/")
	b := g.rootNode("/")
	if a != b {
		t.Fatal("expected repeated rootNode calls for the same root string to return the same node")
	}
}
