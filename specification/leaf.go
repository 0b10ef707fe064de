package specification

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"unicode"

	"github.com/zoobzio/verity/internal/absent"
)

// Always returns a specification satisfied by every candidate, absent ones
// included.
func Always[T any]() Specification[T] {
	return always[T]{}
}

type always[T any] struct{}

func (always[T]) IsSatisfiedBy(T) bool { return true }
func (always[T]) String() string       { return "always" }

// Never returns a specification satisfied by no candidate.
func Never[T any]() Specification[T] {
	return never[T]{}
}

type never[T any] struct{}

func (never[T]) IsSatisfiedBy(T) bool { return false }
func (never[T]) String() string       { return "never" }

// NullValue returns a specification satisfied only by absent candidates.
func NullValue[T any]() Specification[T] {
	return null[T]{}
}

type null[T any] struct{}

func (null[T]) IsSatisfiedBy(candidate T) bool { return absent.Is(any(candidate)) }
func (null[T]) String() string                 { return "null" }

// NotNull returns the negation of NullValue.
func NotNull[T any]() *NotSpecification[T] {
	return Not(NullValue[T]())
}

// Blank returns a specification satisfied by absent text, empty text and text
// made only of whitespace.
func Blank[T Text]() Specification[T] {
	return blank[T]{}
}

type blank[T Text] struct{}

func (blank[T]) IsSatisfiedBy(candidate T) bool {
	if textAbsent(candidate) {
		return true
	}
	for _, r := range string(candidate) {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func (blank[T]) String() string { return "blank" }

// NotBlank returns the negation of Blank.
func NotBlank[T Text]() *NotSpecification[T] {
	return Not(Blank[T]())
}

// Empty returns a specification satisfied by a present slice, array, map or
// string with no elements. Absent candidates and candidates of any other kind
// never satisfy it.
func Empty[T any]() Specification[T] {
	return empty[T]{}
}

type empty[T any] struct{}

func (empty[T]) IsSatisfiedBy(candidate T) bool {
	if absent.Is(any(candidate)) {
		return false
	}
	v := reflect.ValueOf(any(candidate))
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return v.Len() == 0
	}
	return false
}

func (empty[T]) String() string { return "empty" }

// FitInto returns a specification satisfied by absent text and by text no
// longer than limit. Strings and rune slices are measured in runes, byte
// slices in bytes. Runes are code points, so a character outside the Basic
// Multilingual Plane counts once where a UTF-16 length would count it twice.
// A negative limit is accepted and rejects all present text.
func FitInto[T Text](limit int) Specification[T] {
	return fitInto[T]{limit: limit}
}

type fitInto[T Text] struct {
	limit int
}

func (s fitInto[T]) IsSatisfiedBy(candidate T) bool {
	if textAbsent(candidate) {
		return true
	}
	return textLen(candidate) <= s.limit
}

func (s fitInto[T]) String() string  { return "fitInto(" + strconv.Itoa(s.limit) + ")" }
func (s fitInto[T]) hashKey() string { return strconv.Itoa(s.limit) }

// Matches returns a specification satisfied by present text that matches
// pattern in its entirety. The pattern uses RE2 syntax and is compiled here,
// so a bad pattern fails with a *PatternError rather than at evaluation.
func Matches[T Text](pattern string) (Specification[T], error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		// Report the caller's pattern, not the anchored one.
		if _, perr := regexp.Compile(pattern); perr != nil {
			err = perr
		}
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return matches[T]{pattern: pattern, re: re}, nil
}

// MustMatch is like Matches but panics on a bad pattern.
func MustMatch[T Text](pattern string) Specification[T] {
	s, err := Matches[T](pattern)
	if err != nil {
		panic(err)
	}
	return s
}

type matches[T Text] struct {
	pattern string
	re      *regexp.Regexp
}

func (s matches[T]) IsSatisfiedBy(candidate T) bool {
	if textAbsent(candidate) {
		return false
	}
	return s.re.MatchString(string(candidate))
}

func (s matches[T]) String() string  { return "matches(" + strconv.Quote(s.pattern) + ")" }
func (s matches[T]) hashKey() string { return s.pattern }

func (s matches[T]) equal(other Specification[T]) bool {
	o, ok := other.(matches[T])
	return ok && o.pattern == s.pattern
}

// IsEqual returns a specification satisfied by candidates equal to value.
// A value with an Equal(T) bool method decides equality; anything else is
// compared with reflect.DeepEqual. An absent value is only matched by an
// absent candidate.
func IsEqual[T any](value T) Specification[T] {
	return isEqual[T]{value: value}
}

type isEqual[T any] struct {
	value T
}

func (s isEqual[T]) IsSatisfiedBy(candidate T) bool {
	if absent.Is(any(s.value)) || absent.Is(any(candidate)) {
		return absent.Is(any(s.value)) && absent.Is(any(candidate))
	}
	if eq, ok := any(s.value).(interface{ Equal(T) bool }); ok {
		return eq.Equal(candidate)
	}
	return reflect.DeepEqual(s.value, candidate)
}

func (s isEqual[T]) String() string {
	if absent.Is(any(s.value)) {
		return "isEqual(null)"
	}
	return fmt.Sprintf("isEqual(%v)", s.value)
}
