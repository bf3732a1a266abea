package nestmap

// Hooks observes a node joining or leaving a parent. The map performs the
// structural change between the two phases: parent and key are set after
// BeforeJoin and before AfterJoin, and cleared after BeforeLeave and
// before AfterLeave.
type Hooks interface {
	BeforeJoin(child, parent *Map, key any)
	AfterJoin(child, parent *Map, key any)
	BeforeLeave(child *Map)
	AfterLeave(child *Map)
}

// BaseHooks does nothing. Embed it to observe only some phases.
type BaseHooks struct{}

func (BaseHooks) BeforeJoin(child, parent *Map, key any) {}
func (BaseHooks) AfterJoin(child, parent *Map, key any)  {}
func (BaseHooks) BeforeLeave(child *Map)                 {}
func (BaseHooks) AfterLeave(child *Map)                  {}

func (m *Map) hooksOrBase() Hooks {
	if m.hooks == nil {
		return BaseHooks{}
	}
	return m.hooks
}

func (m *Map) join(parent *Map, key any, link func()) {
	h := m.hooksOrBase()
	h.BeforeJoin(m, parent, key)
	link()
	m.parent, m.key = parent, key
	h.AfterJoin(m, parent, key)
}

func (m *Map) leave(unlink func()) {
	h := m.hooksOrBase()
	h.BeforeLeave(m)
	unlink()
	m.parent, m.key = nil, nil
	h.AfterLeave(m)
}

// Join has no effect.
//
// Deprecated: nodes join a parent when stored with Set.
func (m *Map) Join(parent *Map, key any) {
	logger().Warn("Map.Join is deprecated and has no effect, use Set", "key", key)
}

// Leave has no effect.
//
// Deprecated: nodes leave their parent when deleted or overwritten.
func (m *Map) Leave() {
	logger().Warn("Map.Leave is deprecated and has no effect, use Delete", "key", m.key)
}
