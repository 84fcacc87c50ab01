// Package pathgraph implements a process-local, incrementally built
// in-memory path graph: a cache over lstat/readdir/readlink/realpath that
// lets callers re-query the same subtree repeatedly (globbing, bulk
// indexing, watchers) at a fraction of the syscall cost of the stateless
// equivalents. It follows the teacher's functional-options construction
// style (see pkg/filesystem's OpenDirectory family) generalized to the
// graph's platform, case-sensitivity, cache-size, provider, and logger
// knobs.
package pathgraph

import (
	"github.com/pkg/errors"

	"github.com/pathtree/pathgraph/pkg/logging"
	"github.com/pathtree/pathgraph/pkg/pathgraph/fsprovider"
	"github.com/pathtree/pathgraph/pkg/pathgraph/internal/childrencache"
	"github.com/pathtree/pathgraph/pkg/pathgraph/platform"
)

// DefaultChildrenCacheSize is the default capacity of the children-array
// LRU, matching spec.md §5's default of 16384 list-size-units.
const DefaultChildrenCacheSize = 16384

// DefaultResolverCacheSize is the default capacity of each of the two
// resolver caches (native and POSIX-shaped), per spec.md §4.3.
const DefaultResolverCacheSize = 256

// Graph is a single path-graph instance: a root registry, a children-array
// LRU shared by every node in the graph, and a cwd node used to resolve
// relative paths.
type Graph struct {
	platform      platform.Profile
	caseSensitive bool
	provider      fsprovider.Provider
	logger        *logging.Logger

	children *childrencache.Cache

	roots map[string]*Node
	cwd   *Node

	resolveCacheNative *stringLRU
	resolveCachePosix  *stringLRU
}

// Option configures a Graph at construction time.
type Option func(*config)

type config struct {
	platform          platform.Profile
	caseSensitive     *bool
	childrenCacheSize int
	provider          fsprovider.Provider
	logger            *logging.Logger
}

// WithPlatform overrides host auto-detection with an explicit platform
// profile, letting a graph model a remote or cross-compiled target's path
// syntax.
func WithPlatform(p platform.Profile) Option {
	return func(c *config) { c.platform = p }
}

// WithCaseSensitivity overrides the platform profile's default name-match
// case sensitivity.
func WithCaseSensitivity(caseSensitive bool) Option {
	return func(c *config) { c.caseSensitive = &caseSensitive }
}

// WithChildrenCacheSize overrides the default children-array LRU capacity.
func WithChildrenCacheSize(size int) Option {
	return func(c *config) { c.childrenCacheSize = size }
}

// WithProvider overrides the default OS-backed filesystem provider; tests
// use this to inject an fsprovider.Fault decorator.
func WithProvider(p fsprovider.Provider) Option {
	return func(c *config) { c.provider = p }
}

// WithLogger attaches a logger; if omitted the graph logs nothing (a nil
// *logging.Logger is always safe to call methods on).
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// New constructs a Graph rooted conceptually at cwd, which must be an
// absolute path under the resolved platform profile. Construction is the
// one operation in this package that can fail outright (spec.md §7); every
// other query absorbs its own errors into node state.
func New(cwd string, opts ...Option) (*Graph, error) {
	cfg := &config{
		platform:          defaultHostProfile,
		childrenCacheSize: DefaultChildrenCacheSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.provider == nil {
		cfg.provider = fsprovider.NewOS(cfg.logger)
	}

	caseSensitive := cfg.platform.CaseSensitiveByDefault()
	if cfg.caseSensitive != nil {
		caseSensitive = *cfg.caseSensitive
	}

	if !cfg.platform.IsAbsolute(cwd) {
		return nil, errors.Errorf("cwd %q is not an absolute path under the selected platform profile", cwd)
	}

	g := &Graph{
		platform:           cfg.platform,
		caseSensitive:      caseSensitive,
		provider:           cfg.provider,
		logger:             cfg.logger,
		roots:              make(map[string]*Node),
		resolveCacheNative: newStringLRU(DefaultResolverCacheSize),
		resolveCachePosix:  newStringLRU(DefaultResolverCacheSize),
	}
	g.children = childrencache.New(cfg.childrenCacheSize, func(owner childrencache.Key) {
		owner.(*Node).onChildrenEvicted()
	})

	rootString, remainder := cfg.platform.SplitRoot(cwd)
	root := g.rootNode(rootString)
	g.cwd = root.resolvePath(remainder, g.platform.IsSeparator)

	return g, nil
}

// rootNode returns the root node for the given (already-normalized) root
// string, allocating and registering a new one if it's not yet known
// (spec.md §3.4).
func (g *Graph) rootNode(root string) *Node {
	key := g.platform.NormalizeRoot(root)
	if node, ok := g.roots[key]; ok {
		return node
	}
	node := &Node{
		graph:     g,
		name:      key,
		matchName: matchKey(key, g.caseSensitive),
		state:     IFMTDir,
		fullpath:  key,
	}
	node.root = node
	g.roots[key] = node
	return node
}

// Cwd returns the graph's current working-directory node.
func (g *Graph) Cwd() *Node { return g.cwd }

// Logger returns the logger attached to this graph (possibly nil, which is
// always safe to call methods on).
func (g *Graph) Logger() *logging.Logger { return g.logger }
