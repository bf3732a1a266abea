package nestmap

import "github.com/goccy/go-yaml"

// MarshalYAML renders m as an ordered mapping so that YAML output keeps
// insertion order.
func (m *Map) MarshalYAML() (any, error) {
	return m.MapSlice(), nil
}

// MapSlice converts the tree below m into nested yaml.MapSlice values.
func (m *Map) MapSlice() yaml.MapSlice {
	res := make(yaml.MapSlice, 0, m.Len())
	for k, v := range m.All() {
		if c, ok := v.(*Map); ok {
			v = c.MapSlice()
		}
		res = append(res, yaml.MapItem{Key: k, Value: v})
	}
	return res
}
