// Package eval compiles boolean expressions over the leaves of a nested
// map.
//
// Expressions use the expr language (github.com/expr-lang/expr) and see
// the fields of [Env]: key, value, address, path and depth. The built-in
// type() function distinguishes leaf types, and GetPath resolves another
// value in the same tree:
//
//	type(value) == "int" && value > 1
//	depth == 1 && key matches "^a"
//	GetPath("config.enabled") == true
//
// # Related Packages
//
//   - github.com/signadot/nestmap/walk - leaf iteration and addresses
package eval
