// Package specification provides a composable predicate algebra.
//
// A Specification answers one question about a candidate value. Leaves encode
// a single rule (equality, null check, blank check, pattern match, length and
// ordering bounds); And, Or and Not combine rules into composites that keep
// their components for introspection and structural equality.
//
// The absent value of a candidate type is its nil: nil pointers, interfaces,
// slices and maps, and nil []byte or []rune text. A plain string is always
// present. Every leaf accepts absent candidates and decides for itself whether
// they satisfy it.
//
// Specifications are immutable and safe for concurrent use. Evaluating one
// never mutates the candidate.
package specification

import (
	"reflect"
	"unicode/utf8"

	"github.com/zoobzio/verity/internal/absent"
)

// Specification is a rule a candidate either satisfies or does not.
type Specification[T any] interface {
	IsSatisfiedBy(candidate T) bool
}

// Func adapts an ordinary function to a Specification.
//
// Functions cannot be compared, so a Func is never Equal to any specification,
// itself included.
type Func[T any] func(candidate T) bool

// IsSatisfiedBy calls f(candidate).
func (f Func[T]) IsSatisfiedBy(candidate T) bool {
	return f(candidate)
}

func (f Func[T]) String() string {
	return "func"
}

// Text is the family of character sequence types.
type Text interface {
	~string | ~[]byte | ~[]rune
}

// Comparer is implemented by types with a three-way Compare method, such as
// time.Time.
type Comparer[T any] interface {
	Compare(other T) int
}

// textLen measures text in runes, except byte slices which are measured in
// bytes.
func textLen[T Text](text T) int {
	v := reflect.ValueOf(text)
	if v.Kind() == reflect.String {
		return utf8.RuneCountInString(v.String())
	}
	return v.Len()
}

// textAbsent reports whether text is a nil byte or rune slice.
func textAbsent[T Text](text T) bool {
	return absent.Is(any(text))
}
