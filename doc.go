// Package nestmap provides Map, a nested, insertion ordered associative
// container whose child containers know their parent and the key they are
// stored under.
//
// # Overview
//
// A Map holds leaves of any type and child *Map nodes. Storing a *Map
// attaches it as a child: its Parent, Key, Depth and Address follow from
// where it sits in the tree. A node has at most one parent; storing it
// elsewhere first detaches it, and deleting or overwriting its slot turns
// it back into an independent root.
//
// # Addressing
//
// Get, Set, Delete, Contains and Missing accept a single comparable key or
// an address: an [Address], []any, []string or any other slice of keys.
//
//	m := nestmap.New()
//	_ = m.Set(nestmap.Address{"a", "b", "c"}, 1) // creates a and a.b
//	v, _ := m.Get([]string{"a", "b", "c"})      // 1
//
// Wrap a slice or array in [Key] to use it as a single key, and a value in
// [Value] to store it verbatim. In particular, Set(k, nil) deletes k while
// Set(k, Value{nil}) stores a nil leaf.
//
// # Locking
//
// A locked container refuses new keys and deletions; overwriting existing
// keys is allowed. Lock state is inherited: a node without its own flag
// resolves to its parent's state. Failed mutations leave the tree as it
// was.
//
// # Traversal
//
// Map implements walk.Mapping, so the functions of the walk package apply
// to it directly. Items, Values, Keys, Leaves and Containers are thin
// wrappers treating *Map as the container type.
//
// # Thread Safety
//
// A Map is not safe for concurrent use. A tree, including all of its
// ancestors and descendants, needs a single writer or external locking.
package nestmap
