package pathgraph

// ReadlinkSync implements spec.md §4.1.5.
func (n *Node) ReadlinkSync() *Node {
	if n.linkTarget != nil {
		return n.linkTarget
	}
	if !n.canAttemptReadlink() {
		return nil
	}

	target, err := n.graph.provider.ReadlinkSync(n.Fullpath())
	return n.applyReadlinkResult(target, err)
}

// Readlink is the async form of ReadlinkSync.
func (n *Node) Readlink() <-chan *Node {
	result := make(chan *Node, 1)
	if n.linkTarget != nil {
		result <- n.linkTarget
		return result
	}
	if !n.canAttemptReadlink() {
		result <- nil
		return result
	}
	go func() {
		providerResult := <-n.graph.provider.ReadlinkAsync(n.Fullpath())
		result <- n.applyReadlinkResult(providerResult.Target, providerResult.Err)
	}()
	return result
}

// canAttemptReadlink refuses per spec.md §4.1.5: known-not-a-link type,
// ENOREADLINK already set, ENOENT set, or self is root.
func (n *Node) canAttemptReadlink() bool {
	if n.parent == nil {
		return false
	}
	if n.state.has(ENOENT) || n.state.has(ENOReadlink) {
		return false
	}
	ifmt := n.state.ifmt()
	return ifmt == IFMTUnknown || ifmt == IFMTSymlink
}

func (n *Node) applyReadlinkResult(target string, err error) *Node {
	if err != nil {
		n.state |= ENOReadlink
		switch classifyFSError(err) {
		case fsErrorNotExist:
			n.state = n.state.markENOENT()
		case fsErrorInvalid:
			n.state = n.state.withIFMT(IFMTUnknown)
		case fsErrorNotDir:
			if n.parent != nil {
				n.parent.state = n.parent.state.markENOTDIR()
			}
		}
		return nil
	}

	var resolved *Node
	if n.graph.platform.IsAbsolute(target) {
		rootString, remainder := n.graph.platform.SplitRoot(target)
		resolved = n.graph.rootNode(rootString).resolvePath(remainder, n.graph.platform.IsSeparator)
	} else {
		resolved = n.parent.resolvePath(target, n.graph.platform.IsSeparator)
	}

	n.linkTarget = resolved
	return resolved
}
