package pathgraph

// RealpathSync implements spec.md §4.1.6.
func (n *Node) RealpathSync() *Node {
	if n.realTarget != nil {
		return n.realTarget
	}
	if n.state.has(ENORealpath) || n.state.has(ENOReadlink) || n.state.has(ENOENT) {
		return nil
	}

	resolved, err := n.graph.provider.RealpathSync(n.Fullpath())
	return n.applyRealpathResult(resolved, err)
}

// Realpath is the async form of RealpathSync.
func (n *Node) Realpath() <-chan *Node {
	result := make(chan *Node, 1)
	if n.realTarget != nil {
		result <- n.realTarget
		return result
	}
	if n.state.has(ENORealpath) || n.state.has(ENOReadlink) || n.state.has(ENOENT) {
		result <- nil
		return result
	}
	go func() {
		providerResult := <-n.graph.provider.RealpathAsync(n.Fullpath())
		result <- n.applyRealpathResult(providerResult.Path, providerResult.Err)
	}()
	return result
}

func (n *Node) applyRealpathResult(resolvedPath string, err error) *Node {
	if err != nil {
		n.state = n.state.markENOTDIR() | ENORealpath
		return nil
	}

	rootString, remainder := n.graph.platform.SplitRoot(resolvedPath)
	resolved := n.graph.rootNode(rootString).resolvePath(remainder, n.graph.platform.IsSeparator)
	n.realTarget = resolved
	return resolved
}
