package verity

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/zoobzio/verity/internal/absent"
)

// sameCapability compares two encryptors or decryptors of the same dynamic
// type. A capability with an Equal(any) bool method decides for itself.
// Otherwise functions match only the same function value, comparable values
// are compared with ==, and anything else with reflect.DeepEqual.
//
// A comparable struct holding an incomparable value in an interface field
// would make == panic; such capabilities compare unequal unless they
// implement Equal.
func sameCapability(a, b any) bool {
	if absent.Is(a) || absent.Is(b) {
		return absent.Is(a) && absent.Is(b)
	}
	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) {
		return false
	}
	if eq, ok := a.(interface{ Equal(any) bool }); ok {
		return eq.Equal(b)
	}
	if t.Kind() == reflect.Func {
		return funcIdentity(a) == funcIdentity(b)
	}
	if t.Comparable() {
		return safeEqual(a, b)
	}
	return reflect.DeepEqual(a, b)
}

// safeEqual is a == b, reporting false where == would panic.
func safeEqual(a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return a == b
}

// funcIdentity returns the word a func value is made of. Copies of one
// function value share it; distinct closures do not, even over the same code.
func funcIdentity(fn any) unsafe.Pointer {
	v := reflect.ValueOf(fn)
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return *(*unsafe.Pointer)(p.UnsafePointer())
}

// capabilityKey is the part of a capability's identity that is safe to hash.
// Equal capabilities always share a key: sameCapability only matches values of
// one dynamic type, and Named capabilities report equal names when equal.
func capabilityKey(c any) string {
	if n, ok := c.(Named); ok && !absent.Is(c) {
		return fmt.Sprintf("%T/%s", c, n.Name())
	}
	return fmt.Sprintf("%T", c)
}
