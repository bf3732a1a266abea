// Package walk provides stateless traversal over nested mappings.
//
// # Overview
//
// The functions in this package accept any value satisfying [Mapping] and
// produce flattened views of the tree below it: leaf items (optionally with
// their full [Address]), the nested containers themselves, or a label-keyed
// [Tree] suitable for pretty printing.
//
// *nestmap.Map implements [Mapping] directly. Plain Go maps and ordered
// yaml.MapSlice documents are adapted with [AsMapping]; plain Go maps are
// visited in sorted key order so traversal output is deterministic.
//
// # Containers and leaves
//
// A value is a container when it matches the configured container
// [Matcher] (see [ContainerType]) and can be adapted to a [Mapping]. Every
// other value is a leaf. Deep traversals descend only into containers.
//
//	for addr, v := range walk.Leaves(root) {
//	    fmt.Println(addr, v)
//	}
//
// Leaves can additionally be projected by value type with [VType]:
//
//	ints := slices.Collect(walk.Values(root, walk.Deep(true), walk.VType(walk.IsA[int]())))
//
// # Depth
//
// Traversals keep an explicit stack instead of recursing, so trees nested
// thousands of levels deep are walked without growing the goroutine stack.
//
// # Thread Safety
//
// Walking a tree while it is being mutated is not supported.
package walk
