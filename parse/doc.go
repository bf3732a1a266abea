// Package parse decodes YAML and JSON documents into nestmap trees.
//
// Documents are decoded with their mapping order preserved, then wrapped
// so that every nested mapping becomes a child *nestmap.Map. Integers
// that fit are normalized to int; mappings inside lists stay plain
// map[string]any values.
package parse
