package walk

type config struct {
	deep        bool
	inclusive   bool
	withAddress bool
	leaves      bool

	container Matcher
	vtype     Matcher
}

// Option configures a traversal.
type Option func(*config)

// Deep makes a traversal descend into nested containers.
func Deep(v bool) Option {
	return func(c *config) { c.deep = v }
}

// Inclusive makes container enumeration yield the root first.
func Inclusive(v bool) Option {
	return func(c *config) { c.inclusive = v }
}

// WithAddress makes deep item traversals report full addresses instead of
// keys.
func WithAddress(v bool) Option {
	return func(c *config) { c.withAddress = v }
}

// ContainerType sets the Matcher deciding which values are containers.
func ContainerType(m Matcher) Option {
	return func(c *config) { c.container = m }
}

// VType keeps only leaves whose value matches m.
func VType(m Matcher) Option {
	return func(c *config) { c.vtype = m }
}

// WithLeaves makes ExportTree include leaf entries.
func WithLeaves(v bool) Option {
	return func(c *config) { c.leaves = v }
}

func newConfig(def config, opts []Option) *config {
	c := &def
	for _, opt := range opts {
		opt(c)
	}
	if c.container == nil {
		c.container = IsMapping
	}
	return c
}

// asContainer returns the mapping for v when v counts as a container under c.
func (c *config) asContainer(v any) (Mapping, bool) {
	if !c.container(v) {
		return nil, false
	}
	return AsMapping(v)
}

func (c *config) keep(v any) bool {
	return c.vtype == nil || c.vtype(v)
}
