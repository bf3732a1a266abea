// Package asciitree pretty prints nested mappings as indented trees.
//
//	root
//	├── a
//	│   └── aa
//	└── c
package asciitree
