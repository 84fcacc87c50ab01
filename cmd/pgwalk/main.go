// Command pgwalk is a small demonstration CLI that builds a path graph
// rooted at a directory, walks it, and prints summary statistics. It
// exercises pkg/pathgraph end to end the way the teacher's cmd/mutagen
// exercises pkg/synchronization.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pathtree/pathgraph/internal/cmdutil"
	"github.com/pathtree/pathgraph/pkg/logging"
	"github.com/pathtree/pathgraph/pkg/pathgraph"
	"github.com/pathtree/pathgraph/pkg/pathgraph/fsprovider"
	"github.com/pathtree/pathgraph/pkg/pathmatch"
	"github.com/pathtree/pathgraph/pkg/platform/terminal"
)

func pgwalkMain(command *cobra.Command, arguments []string) error {
	target := "."
	if len(arguments) > 0 {
		target = arguments[0]
	}

	absoluteTarget, err := resolveToAbsolute(target)
	if err != nil {
		return errors.Wrap(err, "unable to resolve target path")
	}

	logger := logging.NewRoot(logging.LevelInfo)
	if pgwalkConfiguration.verbose {
		logger.SetLevel(logging.LevelDebug)
	}

	graph, err := pathgraph.New(absoluteTarget,
		pathgraph.WithProvider(fsprovider.NewOS(logger)),
		pathgraph.WithLogger(logger),
	)
	if err != nil {
		return errors.Wrap(err, "unable to construct path graph")
	}

	root := graph.Cwd()

	var opts []pathgraph.WalkOption
	if pgwalkConfiguration.follow {
		opts = append(opts, pathgraph.WithFollow(true))
	}
	if pgwalkConfiguration.glob != "" {
		pattern, err := pathmatch.Compile(root, pgwalkConfiguration.glob)
		if err != nil {
			return errors.Wrap(err, "invalid --glob pattern")
		}
		opts = append(opts, pathgraph.WithFilter(pattern.Filter()), pathgraph.WithWalkFilter(pattern.WalkFilter()))
	}

	start := time.Now()
	results := graph.WalkSync(root, opts...)
	elapsed := time.Since(start)

	var totalSize uint64
	var directories, regular, symlinks, other int
	for _, node := range results {
		if !pgwalkConfiguration.quiet {
			fmt.Println(terminal.NeutralizeControlCharacters(graph.Relative(node)))
		}
		switch node.State().IFMT() {
		case pathgraph.IFMTDir:
			directories++
		case pathgraph.IFMTSymlink:
			symlinks++
		case pathgraph.IFMTRegular:
			regular++
			if stat := node.LstatSync(); stat != nil {
				totalSize += stat.Size
			}
		default:
			other++
		}
	}

	fmt.Fprintf(os.Stderr, "%d entries (%d dirs, %d files, %d symlinks, %d other), %s, %s\n",
		len(results), directories, regular, symlinks, other,
		humanize.Bytes(totalSize), elapsed.Round(time.Millisecond))

	return nil
}

func resolveToAbsolute(target string) (string, error) {
	return filepath.Abs(target)
}

var pgwalkCommand = &cobra.Command{
	Use:   "pgwalk [<path>]",
	Short: "Walks a directory tree using the path graph and prints statistics",
	Args:  cobra.MaximumNArgs(1),
	Run:   cmdutil.Mainify(pgwalkMain),
}

var pgwalkConfiguration struct {
	// follow enables descending into symlinked directories.
	follow bool
	// glob restricts output to entries matching a doublestar pattern.
	glob string
	// quiet suppresses per-entry output, printing only the summary line.
	quiet bool
	// verbose raises the logger to debug level.
	verbose bool
}

func init() {
	flags := pgwalkCommand.Flags()
	flags.BoolVar(&pgwalkConfiguration.follow, "follow", false, "descend into symlinked directories")
	flags.StringVar(&pgwalkConfiguration.glob, "glob", "", "only print entries matching this doublestar pattern")
	flags.BoolVarP(&pgwalkConfiguration.quiet, "quiet", "q", false, "suppress per-entry output")
	flags.BoolVarP(&pgwalkConfiguration.verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := pgwalkCommand.Execute(); err != nil {
		cmdutil.Fatal(err)
	}
}
