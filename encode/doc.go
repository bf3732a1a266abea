// Package encode writes nestmap trees as YAML or JSON.
//
// YAML output can be colored for terminals with [EncodeColors]:
//
//	encode.Encode(m, os.Stdout, encode.EncodeColors(encode.NewColors()))
package encode
