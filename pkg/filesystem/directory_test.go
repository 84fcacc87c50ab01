package filesystem

import (
	"os"
	"runtime"
	"testing"
	"unicode/utf8"
)

// TestPathSeparatorSingleByte verifies that the platform path separator rune
// is encoded as a single byte in UTF-8. The graph's path-joining code relies
// on this for correct byte-offset arithmetic.
func TestPathSeparatorSingleByte(t *testing.T) {
	if utf8.RuneLen(os.PathSeparator) != 1 {
		t.Fatal("OS path separator does not have single-byte UTF-8 encoding")
	}
}

func TestDirectoryContentsNotExist(t *testing.T) {
	if _, err := DirectoryContentsByPath("/does/not/exist", nil); err == nil {
		t.Error("directory listing succeeded for non-existent path")
	}
}

func TestDirectoryContentsFile(t *testing.T) {
	file, err := os.CreateTemp("", "pathgraph")
	if err != nil {
		t.Fatal("unable to create temporary file:", err)
	}
	name := file.Name()
	if err := file.Close(); err != nil {
		t.Error("unable to close temporary file:", err)
	}
	defer os.Remove(name)

	if _, err := DirectoryContentsByPath(name, nil); err == nil {
		t.Error("directory listing succeeded for non-directory path")
	}
}

func TestDirectoryContentsGOROOT(t *testing.T) {
	if contents, err := DirectoryContentsByPath(runtime.GOROOT(), nil); err != nil {
		t.Fatal("directory listing failed for GOROOT:", err)
	} else if contents == nil {
		t.Fatal("directory contents nil for GOROOT")
	}
}

func TestDirectoryContentsTempDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(dir+string(os.PathSeparator)+"entry", []byte("x"), 0644); err != nil {
		t.Fatal("unable to create entry:", err)
	}
	contents, err := DirectoryContentsByPath(dir, nil)
	if err != nil {
		t.Fatal("directory listing failed:", err)
	}
	if len(contents) != 1 || contents[0].Name() != "entry" {
		t.Error("directory contents did not match expected single entry")
	}
}
