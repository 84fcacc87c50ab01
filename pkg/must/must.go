// Package must provides helpers for swallowing the class of cleanup errors
// that callers are right to ignore but wrong to simply discard: errors
// returned when closing handles, flushing buffers, or removing temporary
// files during teardown or error paths. Rather than using named return
// values or littering call sites with "_ = x.Close()", these helpers log at
// Warn level and move on; pkg/filesystem.DirectoryContentsByPath uses Close
// this way when releasing directory handles.
package must

import (
	"io"
	"os"

	"github.com/pathtree/pathgraph/pkg/logging"
)

// Close closes c, logging any error as a warning rather than returning it.
func Close(c io.Closer, logger *logging.Logger) {
	if err := c.Close(); err != nil {
		logger.Warnf("Unable to close: %s", err.Error())
	}
}

// OSRemove removes the file at name, logging any error as a warning.
func OSRemove(name string, logger *logging.Logger) {
	if err := os.Remove(name); err != nil {
		logger.Warnf("Unable to remove '%s': %s", name, err.Error())
	}
}

// IOCopy copies from src to dst, logging any error as a warning.
func IOCopy(dst io.Writer, src io.Reader, logger *logging.Logger) {
	if _, err := io.Copy(dst, src); err != nil {
		logger.Warnf("Unable to copy from source to destination: %s", err.Error())
	}
}
