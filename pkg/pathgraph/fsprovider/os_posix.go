// +build !windows

package fsprovider

import (
	"os"
	"syscall"

	"github.com/mutagen-io/extstat"
	"github.com/pkg/errors"
)

// statFromFileInfo extracts the raw POSIX stat_t fields that os.FileInfo
// doesn't expose. The teacher's pkg/filesystem/device_posix.go performs the
// same Sys().(*syscall.Stat_t) type assertion to reach st_dev; this function
// generalizes that pattern to the full set of fields spec.md §3.1 caches.
func statFromFileInfo(path string, info os.FileInfo) (*Stat, error) {
	raw, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return nil, errors.New("unable to extract raw stat information")
	}

	stat := &Stat{
		Mode:             uint32(raw.Mode),
		Size:             uint64(info.Size()),
		Dev:              uint64(raw.Dev),
		Rdev:             uint64(raw.Rdev),
		Ino:              uint64(raw.Ino),
		Nlink:            uint64(raw.Nlink),
		UID:              raw.Uid,
		GID:              raw.Gid,
		Blksize:          int64(raw.Blksize),
		Blocks:           int64(raw.Blocks),
		ModificationTime: info.ModTime(),
	}
	// ChangeTime (st_ctim) is left zero: its struct field name varies across
	// POSIX variants (Ctim on Linux, Ctimespec on Darwin/BSD) and spec.md
	// §3.1 treats all stat fields as optional.

	// Extended stat gives us access to creation time and access time, which
	// aren't part of os.FileInfo and vary in struct field name across POSIX
	// variants (st_atim vs st_atimespec, no st_birthtim at all on Linux).
	if ext, err := extstat.NewFromFileName(path); err == nil {
		stat.AccessTime = ext.AccessTime
		stat.BirthTime = ext.BirthTime
	}

	return stat, nil
}
