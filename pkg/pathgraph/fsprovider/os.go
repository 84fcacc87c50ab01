package fsprovider

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/pathtree/pathgraph/pkg/filesystem"
	"github.com/pathtree/pathgraph/pkg/logging"
)

// OS is the default Provider, backed directly by the operating system's
// filesystem. It is grounded on the teacher's pkg/filesystem helpers
// (DirectoryContentsByPath for listing directories) and on the same
// Sys().(*syscall.Stat_t) extraction pattern the teacher's now-deleted
// pkg/filesystem.DeviceID used (see DESIGN.md), generalized in
// os_posix.go/os_windows.go to the full set of stat fields spec.md §3.1
// caches rather than just st_dev.
type OS struct {
	logger *logging.Logger
}

// NewOS constructs an OS provider. logger receives only warnings about
// failures to close a directory handle after a listing; it may be nil, in
// which case those are simply not logged. All other errors are returned to
// the caller (over the result channel on the async paths).
func NewOS(logger *logging.Logger) *OS {
	return &OS{logger: logger}
}

func (p *OS) LstatSync(path string) (*Stat, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to lstat path")
	}
	return statFromFileInfo(path, info)
}

func (p *OS) ReaddirSync(path string) ([]DirEntry, error) {
	infos, err := filesystem.DirectoryContentsByPath(path, p.logger)
	if err != nil {
		return nil, errors.Wrap(err, "unable to list directory contents")
	}
	entries := make([]DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = DirEntry{Name: info.Name(), Mode: uint32(info.Mode())}
	}
	return entries, nil
}

func (p *OS) ReadlinkSync(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", errors.Wrap(err, "unable to read symbolic link")
	}
	return target, nil
}

func (p *OS) RealpathSync(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", errors.Wrap(err, "unable to resolve real path")
	}
	return resolved, nil
}

func (p *OS) Readdir(path string, callback func([]DirEntry, error)) {
	callback(p.ReaddirSync(path))
}

func (p *OS) LstatAsync(path string) <-chan LstatResult {
	result := make(chan LstatResult, 1)
	go func() {
		stat, err := p.LstatSync(path)
		result <- LstatResult{Stat: stat, Err: err}
	}()
	return result
}

func (p *OS) ReaddirAsync(path string) <-chan ReaddirResult {
	result := make(chan ReaddirResult, 1)
	go func() {
		entries, err := p.ReaddirSync(path)
		result <- ReaddirResult{Entries: entries, Err: err}
	}()
	return result
}

func (p *OS) ReadlinkAsync(path string) <-chan ReadlinkResult {
	result := make(chan ReadlinkResult, 1)
	go func() {
		target, err := p.ReadlinkSync(path)
		result <- ReadlinkResult{Target: target, Err: err}
	}()
	return result
}

func (p *OS) RealpathAsync(path string) <-chan RealpathResult {
	result := make(chan RealpathResult, 1)
	go func() {
		resolved, err := p.RealpathSync(path)
		result <- RealpathResult{Path: resolved, Err: err}
	}()
	return result
}
