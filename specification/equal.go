package specification

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/zoobzio/verity/internal/absent"
)

// Equal reports whether a and b are structurally equal. Composites are equal
// when they are of the same kind and their components are pairwise equal in
// order. Leaves are equal when they are of the same kind and carry equal
// parameters. Func and On specifications wrap functions and are never equal.
func Equal[T any](a, b Specification[T]) bool {
	if absent.Is(a) || absent.Is(b) {
		return absent.Is(a) && absent.Is(b)
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	if eq, ok := a.(interface{ equal(Specification[T]) bool }); ok {
		return eq.equal(b)
	}
	if ca, ok := a.(Composite[T]); ok {
		cb := b.(Composite[T])
		return slices.EqualFunc(ca.Components(), cb.Components(), Equal[T])
	}
	return reflect.DeepEqual(a, b)
}

// Hash returns a structural hash of s consistent with Equal.
func Hash[T any](s Specification[T]) uint64 {
	d := xxhash.New()
	writeHash(d, s)
	return d.Sum64()
}

func writeHash[T any](d *xxhash.Digest, s Specification[T]) {
	if absent.Is(s) {
		_, _ = d.WriteString("<nil>")
		return
	}
	_, _ = d.WriteString(fmt.Sprintf("%T", s))

	switch v := s.(type) {
	case Composite[T]:
		for _, c := range v.Components() {
			_, _ = d.Write([]byte{0})
			writeHash(d, c)
		}
	case interface{ hashKey() string }:
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(v.hashKey())
	}
}
