package pathgraph

import (
	"github.com/pathtree/pathgraph/pkg/pathgraph/fsprovider"
)

// readdirFuture is the single-flight coalescing point for concurrent async
// readdir calls against one node (spec.md §4.1.3, §5): at most one
// in-flight FS readdir per node; later callers join the same completion
// rather than reissuing I/O.
type readdirFuture struct {
	waiters []chan []*Node
}

// ReaddirSync implements the synchronous form of spec.md §4.1.3. It returns
// the node's real (confirmed) children, issuing exactly one FS readdir call
// if one hasn't already succeeded for this node since its children list was
// last (re)built.
func (n *Node) ReaddirSync() []*Node {
	if !n.state.canReaddir() {
		return nil
	}
	if n.state.has(ReaddirCalled) {
		return n.realChildren()
	}

	entries, err := n.graph.provider.ReaddirSync(n.Fullpath())
	return n.applyReaddirResult(entries, err)
}

// Readdir implements the async form: it returns a channel that delivers the
// node's real children exactly once. Concurrent callers against the same
// node while a readdir is already in flight join that call's result rather
// than issuing a second one.
func (n *Node) Readdir() <-chan []*Node {
	result := make(chan []*Node, 1)

	if !n.state.canReaddir() {
		result <- nil
		return result
	}
	if n.state.has(ReaddirCalled) {
		result <- n.realChildren()
		return result
	}

	if n.readdirPending != nil {
		n.readdirPending.waiters = append(n.readdirPending.waiters, result)
		return result
	}

	future := &readdirFuture{waiters: []chan []*Node{result}}
	n.readdirPending = future

	go func() {
		providerResult := <-n.graph.provider.ReaddirAsync(n.Fullpath())
		n.deliverReaddirResult(future, providerResult.Entries, providerResult.Err)
	}()

	return result
}

// ReaddirCallback implements the callback form. Per spec.md §4.1.3's
// zalgo-containment rule, a result that's already known synchronously
// (preconditions fail, or READDIR_CALLED is already set) is still delivered
// on its own goroutine so that callers never observe a mix of synchronous
// and asynchronous completion from the same call site.
func (n *Node) ReaddirCallback(callback func([]*Node)) {
	if !n.state.canReaddir() {
		go callback(nil)
		return
	}
	if n.state.has(ReaddirCalled) {
		children := n.realChildren()
		go callback(children)
		return
	}

	if n.readdirPending != nil {
		result := make(chan []*Node, 1)
		n.readdirPending.waiters = append(n.readdirPending.waiters, result)
		go func() { callback(<-result) }()
		return
	}

	future := &readdirFuture{}
	n.readdirPending = future
	n.graph.provider.Readdir(n.Fullpath(), func(entries []fsprovider.DirEntry, err error) {
		children := n.applyReaddirResult(entries, err)
		for _, waiter := range future.waiters {
			waiter <- children
		}
		go callback(children)
	})
}

func (n *Node) deliverReaddirResult(future *readdirFuture, entries []fsprovider.DirEntry, err error) {
	children := n.applyReaddirResult(entries, err)
	for _, waiter := range future.waiters {
		waiter <- children
	}
}

func (n *Node) realChildren() []*Node {
	list := n.children()
	return append([]*Node(nil), list.entries[:list.provisional]...)
}

// applyReaddirResult implements the promotion/error-mapping rules of
// spec.md §4.1.3 and §7, mutating the node's children list and state in
// place, then returns the resulting real children.
func (n *Node) applyReaddirResult(entries []fsprovider.DirEntry, err error) []*Node {
	if n.readdirPending != nil {
		n.readdirPending = nil
	}

	if err != nil {
		switch classifyFSError(err) {
		case fsErrorNotDir, fsErrorPermission:
			n.markENOTDIRWithChildren()
		case fsErrorNotExist:
			n.markENOENTWithChildren()
		default:
			list := n.children()
			list.provisional = 0
			n.setChildren(list)
		}
		return nil
	}

	list := n.children()

	for _, entry := range entries {
		key := matchKey(entry.Name, n.graph.caseSensitive)
		entryType := ifmtFromDirentMode(entry.Mode)

		idx := -1
		for i := list.provisional; i < len(list.entries); i++ {
			if list.entries[i].matchName == key {
				idx = i
				break
			}
		}

		if idx >= 0 {
			child := list.entries[idx]
			child.state = child.state.withIFMT(entryType)
			if entryType != IFMTDir && entryType != IFMTSymlink && entryType != IFMTUnknown {
				child.state |= ENOTDIR
			}
			if child.name != entry.Name {
				child.name = entry.Name
				child.fullpathSet = false
			}
			if idx != list.provisional {
				list.entries = append(list.entries[:idx], list.entries[idx+1:]...)
				list.entries = append([]*Node{child}, list.entries...)
			}
			list.provisional++
			continue
		}

		child := &Node{
			graph:     n.graph,
			name:      entry.Name,
			matchName: key,
			parent:    n,
			root:      n.root,
			state:     entryType,
		}
		if entryType != IFMTDir && entryType != IFMTSymlink && entryType != IFMTUnknown {
			child.state |= ENOTDIR
		}
		list.entries = append([]*Node{child}, list.entries...)
		list.provisional++
	}

	n.state |= ReaddirCalled
	for i := list.provisional; i < len(list.entries); i++ {
		markENOENTRecursive(list.entries[i])
	}

	n.setChildren(list)
	return append([]*Node(nil), list.entries[:list.provisional]...)
}

// markENOTDIRWithChildren marks n ENOTDIR and recursively marks every
// existing child ENOENT, per the ENOTDIR/ENOENT propagation table in
// spec.md §7.
func (n *Node) markENOTDIRWithChildren() {
	n.state = n.state.markENOTDIR()
	if value, ok := n.graph.children.Get(n); ok {
		list := value.(*childList)
		for _, child := range list.entries {
			markENOENTRecursive(child)
		}
	}
}

// markENOENTWithChildren marks n and every descendant ENOENT.
func (n *Node) markENOENTWithChildren() {
	markENOENTRecursive(n)
}

// markENOENTRecursive marks node and, recursively, every currently-known
// child ENOENT. It does not force a readdir to discover not-yet-known
// children; those are simply born ENOENT later via child()'s
// canReaddir() check.
func markENOENTRecursive(node *Node) {
	node.state = node.state.markENOENT()
	if value, ok := node.graph.children.Get(node); ok {
		list := value.(*childList)
		for _, child := range list.entries {
			markENOENTRecursive(child)
		}
	}
}

// ifmtFromDirentMode extracts the IFMT nibble from a raw directory-entry
// mode. Unlike ifmtFromRawMode's input (a raw st_mode word on POSIX),
// fsprovider.DirEntry.Mode is always populated from os.FileInfo.Mode() (no
// raw dirent d_type is available through os.ReadDir on any platform), so its
// bit layout is Go's own os.FileMode regardless of GOOS and pkg/filesystem's
// platform-split Mode type does not apply here. os.FileMode's high bits carry
// the same FIFO/device/socket distinctions spec.md §3.2 requires (block vs.
// character device is ModeDevice alone vs. ModeDevice|ModeCharDevice
// together), so every IFMT case decodable from a POSIX stat is also
// decodable here.
func ifmtFromDirentMode(mode uint32) State {
	const (
		modeDir        = 1 << 31 // os.ModeDir
		modeSymlink    = 1 << 27 // os.ModeSymlink
		modeNamedPipe  = 1 << 25 // os.ModeNamedPipe
		modeSocket     = 1 << 24 // os.ModeSocket
		modeDevice     = 1 << 26 // os.ModeDevice
		modeCharDevice = 1 << 21 // os.ModeCharDevice
	)
	switch {
	case mode&modeDir != 0:
		return IFMTDir
	case mode&modeSymlink != 0:
		return IFMTSymlink
	case mode&modeNamedPipe != 0:
		return IFMTFIFO
	case mode&modeSocket != 0:
		return IFMTSocket
	case mode&modeDevice != 0 && mode&modeCharDevice != 0:
		return IFMTChar
	case mode&modeDevice != 0:
		return IFMTBlock
	case mode == 0:
		return IFMTUnknown
	default:
		return IFMTRegular
	}
}
