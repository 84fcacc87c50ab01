// Package fsprovider is the filesystem boundary used by the graph for every
// lstat, readdir, readlink, and realpath operation. Routing all I/O through
// an interface (rather than calling os.* directly from the graph) lets tests
// inject faults and latency at the exact point spec.md's FS-provider design
// calls for, the same separation of concerns the teacher achieves by
// wrapping directory handles in pkg/filesystem rather than scattering os
// calls throughout the synchronization engine.
package fsprovider

import "time"

// Stat is the subset of raw stat information the graph caches per node. All
// fields are populated on a best-effort basis: a provider that cannot supply
// a given field (most commonly on Windows, which exposes none of the POSIX
// stat fields through os.FileInfo) leaves it zero.
type Stat struct {
	// Mode is the raw type/permission mode bits, matching
	// pkg/filesystem.Mode's platform-specific representation.
	Mode uint32
	// Size is the file size in bytes.
	Size uint64
	// Dev is the device ID of the filesystem holding the entry.
	Dev uint64
	// Rdev is the device ID for character or block special files.
	Rdev uint64
	// Ino is the inode number.
	Ino uint64
	// Nlink is the number of hard links.
	Nlink uint64
	// UID is the owning user ID.
	UID uint32
	// GID is the owning group ID.
	GID uint32
	// Blksize is the preferred I/O block size.
	Blksize int64
	// Blocks is the number of 512-byte blocks allocated.
	Blocks int64
	// ModificationTime is the last content modification time.
	ModificationTime time.Time
	// AccessTime is the last access time.
	AccessTime time.Time
	// ChangeTime is the last inode change time.
	ChangeTime time.Time
	// BirthTime is the file creation time, when the platform tracks one.
	BirthTime time.Time
}

// DirEntry is a single entry returned by a directory listing. It carries
// enough information for the graph to classify a child's provisional type
// without a follow-up lstat, mirroring what Go's os.ReadDir / Readdirnames
// + Lstat combination would otherwise require two syscalls for.
type DirEntry struct {
	// Name is the entry's base name as returned by the filesystem, used to
	// correct a node's case-folded name once its canonical spelling is
	// observed (spec.md §3.5).
	Name string
	// Mode carries the entry's type bits in os.FileMode layout (the OS
	// provider fills it from os.FileInfo.Mode()); zero means the type is
	// unknown.
	Mode uint32
}

// Provider is the filesystem access boundary. Every method mirrors a single
// syscall-level operation with no higher-level path resolution: callers
// pass fully-formed, already-resolved paths. Implementations must be safe
// for concurrent use by multiple providers but are never called
// concurrently by the graph itself, which is single-threaded by design
// (spec.md §5).
type Provider interface {
	// LstatSync performs a synchronous lstat of path.
	LstatSync(path string) (*Stat, error)
	// ReaddirSync synchronously lists the contents of the directory at
	// path.
	ReaddirSync(path string) ([]DirEntry, error)
	// ReadlinkSync synchronously reads the link target of the symbolic
	// link at path.
	ReadlinkSync(path string) (string, error)
	// RealpathSync synchronously resolves path to its canonical form,
	// following all symbolic links.
	RealpathSync(path string) (string, error)

	// Readdir lists the contents of the directory at path, invoking
	// callback with the result. It exists alongside ReaddirSync so that
	// providers backed by asynchronous or batched I/O (e.g. a remote
	// filesystem) can avoid blocking a goroutine per call; the default OS
	// provider simply calls ReaddirSync and invokes callback inline.
	Readdir(path string, callback func([]DirEntry, error))

	// LstatAsync, ReaddirAsync, ReadlinkAsync, and RealpathAsync return
	// single-value result channels acting as futures, used by the graph's
	// asynchronous node methods (Node.Lstat, Node.Readdir, Node.Readlink,
	// Node.Realpath).
	LstatAsync(path string) <-chan LstatResult
	ReaddirAsync(path string) <-chan ReaddirResult
	ReadlinkAsync(path string) <-chan ReadlinkResult
	RealpathAsync(path string) <-chan RealpathResult
}

// LstatResult is the payload delivered over an LstatAsync channel.
type LstatResult struct {
	Stat *Stat
	Err  error
}

// ReaddirResult is the payload delivered over a ReaddirAsync channel.
type ReaddirResult struct {
	Entries []DirEntry
	Err     error
}

// ReadlinkResult is the payload delivered over a ReadlinkAsync channel.
type ReadlinkResult struct {
	Target string
	Err    error
}

// RealpathResult is the payload delivered over a RealpathAsync channel.
type RealpathResult struct {
	Path string
	Err  error
}
