package filesystem

import (
	"fmt"
	"os"

	"github.com/pathtree/pathgraph/pkg/logging"
	"github.com/pathtree/pathgraph/pkg/must"
)

// DirectoryContentsByPath returns the contents of the directory at the
// specified path. The ordering of the contents is non-deterministic. logger
// may be nil; it only receives a warning if closing the directory handle
// fails after a successful listing.
func DirectoryContentsByPath(path string, logger *logging.Logger) ([]os.FileInfo, error) {
	// Open the directory and ensure its closure.
	directory, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open directory: %w", err)
	}
	defer must.Close(directory, logger)

	// Grab the directory contents.
	contents, err := directory.Readdir(0)
	if err != nil {
		return nil, fmt.Errorf("unable to read directory contents: %w", err)
	}

	// Success.
	return contents, nil
}
