package pathgraph

// State is the packed per-node type/state bitset described in spec.md §3.2:
// the low nibble carries the inode type (mirroring the Unix S_IFMT nibble),
// and higher bits carry auxiliary flags.
type State uint16

const (
	// IFMTUnknown indicates that the node's type has not yet been
	// determined.
	IFMTUnknown State = 0x0
	// IFMTFIFO marks a named pipe.
	IFMTFIFO State = 0x1
	// IFMTChar marks a character device.
	IFMTChar State = 0x2
	// IFMTDir marks a directory.
	IFMTDir State = 0x4
	// IFMTBlock marks a block device.
	IFMTBlock State = 0x6
	// IFMTRegular marks a regular file.
	IFMTRegular State = 0x8
	// IFMTSymlink marks a symbolic link.
	IFMTSymlink State = 0xA
	// IFMTSocket marks a Unix domain socket.
	IFMTSocket State = 0xC

	// ReaddirCalled indicates that the node's children array is
	// authoritative up to its provisional split index.
	ReaddirCalled State = 1 << 4
	// LstatCalled indicates that the node's stat fields are populated.
	LstatCalled State = 1 << 5
	// ENOTDIR indicates that the node cannot have children.
	ENOTDIR State = 1 << 6
	// ENOENT indicates that the node, or an ancestor, definitely does not
	// exist.
	ENOENT State = 1 << 7
	// ENOReadlink indicates that readlink has failed or is impossible for
	// this node.
	ENOReadlink State = 1 << 8
	// ENORealpath indicates that realpath has failed or is impossible for
	// this node.
	ENORealpath State = 1 << 9
)

// IFMTMask isolates the inode-type nibble from a State.
const IFMTMask State = 0xF

// ENOChild is the disjunction of bits that mean "this node cannot
// legitimately have children".
const ENOChild = ENOTDIR | ENOENT | ENORealpath

// ifmt returns the inode-type portion of the state.
func (s State) ifmt() State { return s & IFMTMask }

// IFMT returns the inode-type portion of the state, for callers outside the
// package that only need to classify a node's type (e.g. cmd/pgwalk).
func (s State) IFMT() State { return s.ifmt() }

// withIFMT replaces the inode-type portion of the state, leaving all other
// bits untouched.
func (s State) withIFMT(t State) State { return (s &^ IFMTMask) | (t & IFMTMask) }

// has reports whether all bits in mask are set.
func (s State) has(mask State) bool { return s&mask == mask }

// canReaddir reports whether a node may still be read as a directory: its
// type is UNKNOWN, DIR, or LNK, and it carries none of the ENOCHILD bits.
func (s State) canReaddir() bool {
	if s&ENOChild != 0 {
		return false
	}
	switch s.ifmt() {
	case IFMTUnknown, IFMTDir, IFMTSymlink:
		return true
	default:
		return false
	}
}

// canReadlink reports whether a node may still plausibly be a symbolic
// link: its type is UNKNOWN or LNK, and ENOENT/ENOREADLINK are unset.
func (s State) canReadlink() bool {
	if s.has(ENOENT) || s.has(ENOReadlink) {
		return false
	}
	switch s.ifmt() {
	case IFMTUnknown, IFMTSymlink:
		return true
	default:
		return false
	}
}

// markENOTDIR sets ENOTDIR, which implies the node cannot have children;
// per spec.md §3.2 no node holds both IFMT=DIR and ENOTDIR simultaneously,
// so the type is reset to UNKNOWN whenever it doesn't already indicate a
// non-directory entry.
func (s State) markENOTDIR() State {
	s |= ENOTDIR
	if s.ifmt() == IFMTDir {
		s = s.withIFMT(IFMTUnknown)
	}
	return s
}

// markENOENT sets ENOENT, which per spec.md §3.2 also clears the inode
// type: existence itself is no longer known.
func (s State) markENOENT() State {
	return (s | ENOENT).withIFMT(IFMTUnknown)
}
