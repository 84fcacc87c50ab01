package pathgraph

import "testing"

func TestReadlinkSyncRelativeTarget(t *testing.T) {
	g, provider := newTestGraph(t, "/")
	provider.mkdir("/dir")
	provider.touch("/dir/real")
	provider.symlink("/dir/link", "real")

	link := g.Cwd().child("dir").child("link")
	target := link.ReadlinkSync()
	if target == nil {
		t.Fatal("ReadlinkSync() returned nil for a real symlink")
	}
	if target.Fullpath() != "/dir/real" {
		t.Fatalf("ReadlinkSync() target = %q, want /dir/real", target.Fullpath())
	}
}

func TestReadlinkSyncAbsoluteTarget(t *testing.T) {
	g, provider := newTestGraph(t, "/")
	provider.touch("/real")
	provider.symlink("/link", "/real")

	link := g.Cwd().child("link")
	target := link.ReadlinkSync()
	if target == nil || target.Fullpath() != "/real" {
		t.Fatalf("ReadlinkSync() target = %v, want /real", target)
	}
}

func TestReadlinkSyncCaches(t *testing.T) {
	g, provider := newTestGraph(t, "/")
	provider.touch("/real")
	provider.symlink("/link", "/real")

	link := g.Cwd().child("link")
	first := link.ReadlinkSync()
	second := link.ReadlinkSync()
	if first != second {
		t.Error("expected a second ReadlinkSync() call to return the cached target")
	}
}

func TestReadlinkSyncOnNonLinkFails(t *testing.T) {
	g, provider := newTestGraph(t, "/")
	provider.touch("/f")

	f := g.Cwd().child("f")
	f.LstatSync()
	if f.state.ifmt() != IFMTRegular {
		t.Fatalf("expected IFMTRegular, got %v", f.state.ifmt())
	}
	if target := f.ReadlinkSync(); target != nil {
		t.Fatal("expected ReadlinkSync() on a known-regular file to return nil without calling the provider")
	}
}

func TestReadlinkSyncOnRootRefused(t *testing.T) {
	g, _ := newTestGraph(t, "/")
	if target := g.Cwd().Root().ReadlinkSync(); target != nil {
		t.Fatal("expected ReadlinkSync() on a root node to return nil")
	}
}

func TestReadlinkAsync(t *testing.T) {
	g, provider := newTestGraph(t, "/")
	provider.touch("/real")
	provider.symlink("/link", "/real")

	link := g.Cwd().child("link")
	target := <-link.Readlink()
	if target == nil || target.Fullpath() != "/real" {
		t.Fatalf("Readlink() target = %v, want /real", target)
	}
}
