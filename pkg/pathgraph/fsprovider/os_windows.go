package fsprovider

import (
	"os"

	"github.com/mutagen-io/extstat"
)

// statFromFileInfo on Windows has no access to POSIX-style stat fields
// (dev, ino, nlink, uid, gid, rdev, blksize, blocks all stay zero, matching
// the teacher's now-deleted pkg/filesystem.DeviceID's no-op Windows
// behavior), but still reports size, modification time, and (via extstat)
// creation and access time.
func statFromFileInfo(path string, info os.FileInfo) (*Stat, error) {
	stat := &Stat{
		Mode:             uint32(info.Mode()),
		Size:             uint64(info.Size()),
		ModificationTime: info.ModTime(),
	}

	if ext, err := extstat.NewFromFileName(path); err == nil {
		stat.AccessTime = ext.AccessTime
		stat.BirthTime = ext.BirthTime
	}

	return stat, nil
}
