package pathgraph

import (
	"github.com/pathtree/pathgraph/pkg/filesystem"
	"github.com/pathtree/pathgraph/pkg/pathgraph/fsprovider"
)

// LstatSync implements spec.md §4.1.4. It returns nil ("no result") if the
// node is already known not to exist, or if the underlying FS call fails
// with anything other than the errors spec.md §7 maps to state changes.
func (n *Node) LstatSync() *fsprovider.Stat {
	if n.state.has(ENOENT) {
		return nil
	}
	if n.stat != nil {
		return n.stat
	}

	stat, err := n.graph.provider.LstatSync(n.Fullpath())
	return n.applyLstatResult(stat, err)
}

// Lstat is the async form of LstatSync. Per spec.md §5, duplicate
// concurrent issues against the same node are permitted (no single-flight
// coalescing, unlike readdir): the last writer to the cache fields wins,
// which is safe since all success outcomes describe the same filesystem
// state.
func (n *Node) Lstat() <-chan *fsprovider.Stat {
	result := make(chan *fsprovider.Stat, 1)
	if n.state.has(ENOENT) {
		result <- nil
		return result
	}
	if n.stat != nil {
		result <- n.stat
		return result
	}
	go func() {
		providerResult := <-n.graph.provider.LstatAsync(n.Fullpath())
		result <- n.applyLstatResult(providerResult.Stat, providerResult.Err)
	}()
	return result
}

func (n *Node) applyLstatResult(stat *fsprovider.Stat, err error) *fsprovider.Stat {
	if err != nil {
		switch classifyFSError(err) {
		case fsErrorNotDir:
			if n.parent != nil {
				n.parent.state = n.parent.state.markENOTDIR()
			}
		case fsErrorNotExist:
			n.state = n.state.markENOENT()
		}
		return nil
	}

	n.stat = stat
	n.state |= LstatCalled
	ifmt := ifmtFromRawMode(stat.Mode)
	n.state = n.state.withIFMT(ifmt)
	if ifmt != IFMTDir && ifmt != IFMTSymlink && ifmt != IFMTUnknown {
		n.state |= ENOTDIR
	}
	return n.stat
}

// ifmtFromRawMode extracts the IFMT nibble from a raw mode word using the
// teacher's pkg/filesystem.Mode type, whose ModeType* constants are defined
// per-platform (mode_posix.go decodes the real st_mode IFMT nibble via
// golang.org/x/sys/unix's S_IF* constants; mode_windows.go decodes an
// os.FileMode via os.ModeDir/os.ModeSymlink instead, since Windows has no
// IFMT nibble and collapses everything but directories and symlinks to
// "regular"). fsprovider.Stat.Mode is a plain uint32 so the provider
// interface stays platform-neutral; converting to filesystem.Mode here picks
// up whichever platform's decoding rules actually apply.
func ifmtFromRawMode(mode uint32) State {
	if mode == 0 {
		return IFMTUnknown
	}

	switch filesystem.Mode(mode) & filesystem.ModeTypeMask {
	case filesystem.ModeTypeDirectory:
		return IFMTDir
	case filesystem.ModeTypeSymbolicLink:
		return IFMTSymlink
	case filesystem.ModeTypeFile:
		return IFMTRegular
	}

	switch filesystem.Mode(mode) & 0xF000 {
	case 0x1000:
		return IFMTFIFO
	case 0x2000:
		return IFMTChar
	case 0x6000:
		return IFMTBlock
	case 0x8000:
		return IFMTRegular
	case 0xC000:
		return IFMTSocket
	default:
		return IFMTRegular
	}
}
