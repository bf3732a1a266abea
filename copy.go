package nestmap

import "reflect"

// shallowCopy copies the top level of maps, slices and pointed-to values.
// Other values are returned as is.
func shallowCopy(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		res := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			res.SetMapIndex(iter.Key(), iter.Value())
		}
		return res.Interface()
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		res := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(res, rv)
		return res.Interface()
	case reflect.Pointer:
		if rv.IsNil() {
			return v
		}
		res := reflect.New(rv.Type().Elem())
		res.Elem().Set(rv.Elem())
		return res.Interface()
	}
	return v
}

// deepCopy copies v recursively. Shared pointers and cycles are preserved
// in the copy. Unexported struct fields are copied shallowly.
func deepCopy(v any) any {
	if v == nil {
		return nil
	}
	seen := map[uintptr]reflect.Value{}
	return copyValue(reflect.ValueOf(v), seen).Interface()
}

func copyValue(v reflect.Value, seen map[uintptr]reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		if c, ok := seen[v.Pointer()]; ok {
			return c
		}
		res := reflect.New(v.Type().Elem())
		seen[v.Pointer()] = res
		res.Elem().Set(copyValue(v.Elem(), seen))
		return res
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		res := reflect.New(v.Type()).Elem()
		res.Set(copyValue(v.Elem(), seen))
		return res
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		if c, ok := seen[v.Pointer()]; ok {
			return c
		}
		res := reflect.MakeMapWithSize(v.Type(), v.Len())
		seen[v.Pointer()] = res
		iter := v.MapRange()
		for iter.Next() {
			res.SetMapIndex(copyValue(iter.Key(), seen), copyValue(iter.Value(), seen))
		}
		return res
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		res := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := range v.Len() {
			res.Index(i).Set(copyValue(v.Index(i), seen))
		}
		return res
	case reflect.Array:
		res := reflect.New(v.Type()).Elem()
		for i := range v.Len() {
			res.Index(i).Set(copyValue(v.Index(i), seen))
		}
		return res
	case reflect.Struct:
		res := reflect.New(v.Type()).Elem()
		res.Set(v)
		for i := range v.NumField() {
			if !v.Type().Field(i).IsExported() {
				continue
			}
			res.Field(i).Set(copyValue(v.Field(i), seen))
		}
		return res
	}
	return v
}
