// Package mergeop applies JSON patches to nested maps.
//
// Both [JSONPatch] (RFC 6902) and [MergePatch] (RFC 7386) leave their
// input untouched and return a freshly parsed tree.
package mergeop
