package pathgraph

import (
	"fmt"
	"path"
	"strings"
	"syscall"

	"github.com/pathtree/pathgraph/pkg/pathgraph/fsprovider"
)

// memEntry is one entry in the in-memory test filesystem: either a
// directory (Children non-nil) or a leaf (a regular file, or a symlink
// when Link is non-empty).
type memEntry struct {
	isDir    bool
	link     string
	children map[string]*memEntry
}

// memProvider is a minimal in-memory fsprovider.Provider used to drive the
// seed scenarios from spec.md §8 deterministically, without touching the
// real filesystem. Paths are POSIX-shaped ("/a/b/c").
type memProvider struct {
	root        *memEntry
	readdirCall int
}

func newMemProvider() *memProvider {
	return &memProvider{root: &memEntry{isDir: true, children: map[string]*memEntry{}}}
}

func (p *memProvider) lookup(path string) (*memEntry, bool) {
	if path == "/" || path == "" {
		return p.root, true
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	current := p.root
	for _, part := range parts {
		if !current.isDir || current.children == nil {
			return nil, false
		}
		next, ok := current.children[part]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func (p *memProvider) mkdir(dirPath string) {
	parts := strings.Split(strings.Trim(dirPath, "/"), "/")
	current := p.root
	for _, part := range parts {
		if part == "" {
			continue
		}
		next, ok := current.children[part]
		if !ok {
			next = &memEntry{isDir: true, children: map[string]*memEntry{}}
			current.children[part] = next
		}
		current = next
	}
}

func (p *memProvider) touch(filePath string) {
	dir, name := path.Split(strings.TrimSuffix(filePath, "/"))
	p.mkdir(dir)
	parent, _ := p.lookup(dir)
	parent.children[name] = &memEntry{}
}

func (p *memProvider) remove(entryPath string) {
	dir, name := path.Split(strings.TrimSuffix(entryPath, "/"))
	parent, ok := p.lookup(dir)
	if !ok {
		return
	}
	delete(parent.children, name)
}

func (p *memProvider) symlink(linkPath, target string) {
	dir, name := path.Split(strings.TrimSuffix(linkPath, "/"))
	p.mkdir(dir)
	parent, _ := p.lookup(dir)
	parent.children[name] = &memEntry{link: target}
}

func (p *memProvider) LstatSync(entryPath string) (*fsprovider.Stat, error) {
	entry, ok := p.lookup(entryPath)
	if !ok {
		return nil, &fmtError{syscall.ENOENT}
	}
	stat := &fsprovider.Stat{}
	switch {
	case entry.link != "":
		stat.Mode = 0xA000
	case entry.isDir:
		stat.Mode = 0x4000
	default:
		stat.Mode = 0x8000
	}
	return stat, nil
}

func (p *memProvider) ReaddirSync(dirPath string) ([]fsprovider.DirEntry, error) {
	p.readdirCall++
	entry, ok := p.lookup(dirPath)
	if !ok {
		return nil, &fmtError{syscall.ENOENT}
	}
	if !entry.isDir {
		return nil, &fmtError{syscall.ENOTDIR}
	}
	var result []fsprovider.DirEntry
	for name, child := range entry.children {
		// Modes use os.FileMode's layout, as fsprovider.OS reports them:
		// regular files carry only permission bits.
		mode := uint32(0644)
		switch {
		case child.link != "":
			mode = 1 << 27
		case child.isDir:
			mode = 1 << 31
		}
		result = append(result, fsprovider.DirEntry{Name: name, Mode: mode})
	}
	return result, nil
}

func (p *memProvider) ReadlinkSync(linkPath string) (string, error) {
	entry, ok := p.lookup(linkPath)
	if !ok || entry.link == "" {
		return "", &fmtError{syscall.EINVAL}
	}
	return entry.link, nil
}

func (p *memProvider) RealpathSync(entryPath string) (string, error) {
	parts := strings.Split(strings.Trim(entryPath, "/"), "/")
	resolved := "/"
	current := p.root
	for _, part := range parts {
		if part == "" {
			continue
		}
		next, ok := current.children[part]
		if !ok {
			return "", &fmtError{syscall.ENOENT}
		}
		if next.link != "" {
			target := next.link
			if !strings.HasPrefix(target, "/") {
				target = path.Join(resolved, target)
			}
			r, err := p.RealpathSync(target)
			if err != nil {
				return "", err
			}
			resolved = r
			current, _ = p.lookup(resolved)
			continue
		}
		resolved = path.Join(resolved, part)
		current = next
	}
	return resolved, nil
}

func (p *memProvider) Readdir(dirPath string, callback func([]fsprovider.DirEntry, error)) {
	callback(p.ReaddirSync(dirPath))
}

func (p *memProvider) LstatAsync(entryPath string) <-chan fsprovider.LstatResult {
	ch := make(chan fsprovider.LstatResult, 1)
	stat, err := p.LstatSync(entryPath)
	ch <- fsprovider.LstatResult{Stat: stat, Err: err}
	return ch
}

func (p *memProvider) ReaddirAsync(dirPath string) <-chan fsprovider.ReaddirResult {
	ch := make(chan fsprovider.ReaddirResult, 1)
	entries, err := p.ReaddirSync(dirPath)
	ch <- fsprovider.ReaddirResult{Entries: entries, Err: err}
	return ch
}

func (p *memProvider) ReadlinkAsync(linkPath string) <-chan fsprovider.ReadlinkResult {
	ch := make(chan fsprovider.ReadlinkResult, 1)
	target, err := p.ReadlinkSync(linkPath)
	ch <- fsprovider.ReadlinkResult{Target: target, Err: err}
	return ch
}

func (p *memProvider) RealpathAsync(entryPath string) <-chan fsprovider.RealpathResult {
	ch := make(chan fsprovider.RealpathResult, 1)
	resolved, err := p.RealpathSync(entryPath)
	ch <- fsprovider.RealpathResult{Path: resolved, Err: err}
	return ch
}

// fmtError wraps a syscall.Errno so that errors.As(err, *syscall.Errno)
// succeeds, matching what a real syscall failure looks like.
type fmtError struct {
	errno syscall.Errno
}

func (e *fmtError) Error() string { return fmt.Sprintf("mem provider error: %s", e.errno) }
func (e *fmtError) Unwrap() error { return e.errno }
