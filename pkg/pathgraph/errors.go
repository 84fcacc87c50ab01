package pathgraph

import (
	"errors"
	"os"
	"syscall"
)

// fsErrorClass classifies an FS-provider error into the handful of outcomes
// spec.md §7 distinguishes. It inspects both POSIX syscall.Errno values and
// the *os.PathError / *os.LinkError wrapping the stdlib and this module's
// providers produce, using errors.As so that github.com/pkg/errors-wrapped
// causes are still found.
type fsErrorClass int

const (
	fsErrorOther fsErrorClass = iota
	fsErrorNotExist
	fsErrorNotDir
	fsErrorPermission
	fsErrorInvalid
)

func classifyFSError(err error) fsErrorClass {
	if err == nil {
		return fsErrorOther
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ENOENT:
			return fsErrorNotExist
		case syscall.ENOTDIR:
			return fsErrorNotDir
		case syscall.EPERM, syscall.EACCES:
			return fsErrorPermission
		case syscall.EINVAL:
			return fsErrorInvalid
		}
		return fsErrorOther
	}

	switch {
	case errors.Is(err, os.ErrNotExist):
		return fsErrorNotExist
	case errors.Is(err, os.ErrPermission):
		return fsErrorPermission
	case errors.Is(err, os.ErrInvalid):
		return fsErrorInvalid
	}

	return fsErrorOther
}
