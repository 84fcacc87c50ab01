package pathgraph

import "testing"

func TestChildDotAndDotDot(t *testing.T) {
	g, provider := newTestGraph(t, "/")
	provider.mkdir("/a/b")

	a := g.Cwd().child("a")
	if a.child(".") != a {
		t.Error("child(\".\") should return the node itself")
	}
	if a.child("") != a {
		t.Error("child(\"\") should return the node itself")
	}
	b := a.child("b")
	if b.child("..") != a {
		t.Error("child(\"..\") should return the parent")
	}
	if g.Cwd().child("..") != g.Cwd() {
		t.Error("child(\"..\") on a root should return itself")
	}
}

func TestChildInternsOnce(t *testing.T) {
	g, _ := newTestGraph(t, "/")
	a1 := g.Cwd().child("a")
	a2 := g.Cwd().child("a")
	if a1 != a2 {
		t.Error("expected repeated child() calls for the same name to return the identical node")
	}
}

func TestChildBornENOENTWhenParentCannotReaddir(t *testing.T) {
	g, provider := newTestGraph(t, "/")
	provider.touch("/f")

	f := g.Cwd().child("f")
	f.LstatSync()
	if f.state.ifmt() != IFMTRegular {
		t.Fatalf("expected f to be IFMTRegular after lstat, got %v", f.state.ifmt())
	}

	// f cannot be read as a directory, so interning a child under it must
	// be born already ENOENT rather than requiring a failed readdir first.
	ghost := f.child("nested")
	if !ghost.state.has(ENOENT) {
		t.Error("expected a child interned under a known-non-directory to be born ENOENT")
	}
}

func TestFullpathRoot(t *testing.T) {
	g, _ := newTestGraph(t, "/")
	if got := g.Cwd().Fullpath(); got != "/" {
		t.Fatalf("Fullpath() = %q, want /", got)
	}
}

func TestFullpathNested(t *testing.T) {
	g, provider := newTestGraph(t, "/")
	provider.mkdir("/a/b/c")

	node := g.Cwd().child("a").child("b").child("c")
	if got := node.Fullpath(); got != "/a/b/c" {
		t.Fatalf("Fullpath() = %q, want /a/b/c", got)
	}
}

func TestIsNamedCaseInsensitive(t *testing.T) {
	provider := newMemProvider()
	g, err := New("/", WithProvider(provider), WithCaseSensitivity(false))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	provider.touch("/Foo")

	node := g.Cwd().child("Foo")
	if !node.IsNamed("foo") {
		t.Error("expected case-insensitive graph to treat \"Foo\" and \"foo\" as the same name")
	}
}

func TestDepthMemoizes(t *testing.T) {
	g, provider := newTestGraph(t, "/")
	provider.mkdir("/a/b")

	node := g.Cwd().child("a").child("b")
	if got := node.Depth(); got != 2 {
		t.Fatalf("Depth() = %d, want 2", got)
	}
	if got := node.Depth(); got != 2 {
		t.Fatalf("second Depth() call = %d, want 2", got)
	}
}

func TestDirnameAndBasename(t *testing.T) {
	g, provider := newTestGraph(t, "/")
	provider.mkdir("/a/b")

	a := g.Cwd().child("a")
	b := a.child("b")
	if b.Dirname() != a {
		t.Error("Dirname() should return the parent node")
	}
	if b.Basename() != "b" {
		t.Errorf("Basename() = %q, want b", b.Basename())
	}
	if g.Cwd().Dirname() != g.Cwd() {
		t.Error("Dirname() on a root should return itself")
	}
}
