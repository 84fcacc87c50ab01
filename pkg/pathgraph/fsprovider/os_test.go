package fsprovider

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestOSLstatSyncFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal("unable to create file:", err)
	}

	provider := NewOS(nil)
	stat, err := provider.LstatSync(path)
	if err != nil {
		t.Fatal("lstat failed:", err)
	}
	if stat.Size != 5 {
		t.Errorf("unexpected size: got %d, want 5", stat.Size)
	}
}

func TestOSLstatSyncNotExist(t *testing.T) {
	provider := NewOS(nil)
	if _, err := provider.LstatSync(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("lstat succeeded for non-existent path")
	}
}

func TestOSReaddirSync(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "b"), 0755); err != nil {
		t.Fatal(err)
	}

	provider := NewOS(nil)
	entries, err := provider.ReaddirSync(dir)
	if err != nil {
		t.Fatal("readdir failed:", err)
	}
	if len(entries) != 2 {
		t.Fatalf("unexpected entry count: got %d, want 2", len(entries))
	}
}

func TestOSReadlinkSync(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symbolic link creation requires elevated privileges on Windows")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	if err := os.WriteFile(target, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	provider := NewOS(nil)
	resolved, err := provider.ReadlinkSync(link)
	if err != nil {
		t.Fatal("readlink failed:", err)
	}
	if resolved != target {
		t.Errorf("unexpected link target: got %q, want %q", resolved, target)
	}
}

func TestOSLstatAsync(t *testing.T) {
	dir := t.TempDir()
	provider := NewOS(nil)
	result := <-provider.LstatAsync(dir)
	if result.Err != nil {
		t.Fatal("async lstat failed:", result.Err)
	}
	if result.Stat == nil {
		t.Fatal("async lstat returned nil stat")
	}
}

func TestFaultInjection(t *testing.T) {
	dir := t.TempDir()
	base := NewOS(nil)
	faulty := NewFault(base)

	sentinel := os.ErrPermission
	faulty.AddRule(Rule{
		Match: func(path string) bool { return path == dir },
		Err:   sentinel,
	})

	if _, err := faulty.LstatSync(dir); err != sentinel {
		t.Errorf("expected injected fault, got %v", err)
	}

	faulty.Clear()
	if _, err := faulty.LstatSync(dir); err != nil {
		t.Errorf("expected no fault after Clear, got %v", err)
	}
}
