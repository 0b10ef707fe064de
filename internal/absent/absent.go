// Package absent reports whether a value is the absent value of its type.
package absent

import "reflect"

// Is reports whether v is nil or a typed nil (pointer, map, slice, func,
// channel or interface).
func Is(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
