// Package format names the document formats nested maps are read from
// and written to.
package format
