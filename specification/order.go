package specification

import (
	"cmp"
	"fmt"

	"github.com/zoobzio/verity/internal/absent"
)

// After returns a specification satisfied by candidates strictly greater than
// bound.
func After[T cmp.Ordered](bound T) Specification[T] {
	return after[T]{bound: bound}
}

type after[T cmp.Ordered] struct {
	bound T
}

func (s after[T]) IsSatisfiedBy(candidate T) bool { return cmp.Compare(s.bound, candidate) < 0 }
func (s after[T]) String() string                 { return fmt.Sprintf("after(%v)", s.bound) }
func (s after[T]) hashKey() string                { return fmt.Sprint(s.bound) }

// Before returns a specification satisfied by candidates strictly less than
// bound.
func Before[T cmp.Ordered](bound T) Specification[T] {
	return before[T]{bound: bound}
}

type before[T cmp.Ordered] struct {
	bound T
}

func (s before[T]) IsSatisfiedBy(candidate T) bool { return cmp.Compare(s.bound, candidate) > 0 }
func (s before[T]) String() string                 { return fmt.Sprintf("before(%v)", s.bound) }
func (s before[T]) hashKey() string                { return fmt.Sprint(s.bound) }

// AfterBound is After for types ordered by a Compare method. An absent bound
// fails with ErrInvalidArgument. Absent candidates are not satisfied.
func AfterBound[T Comparer[T]](bound T) (Specification[T], error) {
	if absent.Is(any(bound)) {
		return nil, invalidArgument("after: bound is required")
	}
	return afterBound[T]{bound: bound}, nil
}

type afterBound[T Comparer[T]] struct {
	bound T
}

func (s afterBound[T]) IsSatisfiedBy(candidate T) bool {
	return !absent.Is(any(candidate)) && candidate.Compare(s.bound) > 0
}

func (s afterBound[T]) String() string  { return fmt.Sprintf("after(%v)", s.bound) }
func (s afterBound[T]) hashKey() string { return fmt.Sprint(s.bound) }

// BeforeBound is Before for types ordered by a Compare method. An absent bound
// fails with ErrInvalidArgument. Absent candidates are not satisfied.
func BeforeBound[T Comparer[T]](bound T) (Specification[T], error) {
	if absent.Is(any(bound)) {
		return nil, invalidArgument("before: bound is required")
	}
	return beforeBound[T]{bound: bound}, nil
}

type beforeBound[T Comparer[T]] struct {
	bound T
}

func (s beforeBound[T]) IsSatisfiedBy(candidate T) bool {
	return !absent.Is(any(candidate)) && candidate.Compare(s.bound) < 0
}

func (s beforeBound[T]) String() string  { return fmt.Sprintf("before(%v)", s.bound) }
func (s beforeBound[T]) hashKey() string { return fmt.Sprint(s.bound) }
