// Package libdiff computes differences between nested mappings.
//
// # Usage
//
//	changes := libdiff.Diff(oldMap, newMap)
//	libdiff.Format(os.Stdout, changes)
//
// Both trees are flattened to one line per leaf, "address = value (type)",
// and the line sequences are diffed with diffmatchpatch. Empty containers
// are kept as lines of their own so that adding or removing one shows up.
//
// # Related Packages
//
//   - github.com/signadot/nestmap/walk - flattening
//   - github.com/signadot/nestmap/mergeop - applying patches
package libdiff
