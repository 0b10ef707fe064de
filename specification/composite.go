package specification

import (
	"fmt"
	"slices"
	"strings"

	"github.com/zoobzio/verity/internal/absent"
)

// Composite is a specification built from other specifications.
type Composite[T any] interface {
	Specification[T]

	// Components returns a copy of the direct sub-rules in construction order.
	Components() []Specification[T]
}

// AndSpecification is satisfied when every component is satisfied.
// Evaluation stops at the first component that fails.
type AndSpecification[T any] struct {
	components []Specification[T]
}

// And combines first and others into a conjunction. A nil component panics.
func And[T any](first Specification[T], others ...Specification[T]) *AndSpecification[T] {
	return &AndSpecification[T]{components: collect(first, others)}
}

// IsSatisfiedBy reports whether every component accepts candidate.
func (s *AndSpecification[T]) IsSatisfiedBy(candidate T) bool {
	for _, c := range s.components {
		if !c.IsSatisfiedBy(candidate) {
			return false
		}
	}
	return true
}

// Components returns a copy of the conjuncts.
func (s *AndSpecification[T]) Components() []Specification[T] {
	return slices.Clone(s.components)
}

// And returns s AND other.
func (s *AndSpecification[T]) And(other Specification[T]) *AndSpecification[T] {
	return And[T](s, other)
}

// Or returns s OR other.
func (s *AndSpecification[T]) Or(other Specification[T]) *OrSpecification[T] {
	return Or[T](s, other)
}

// Not returns NOT s.
func (s *AndSpecification[T]) Not() *NotSpecification[T] {
	return Not[T](s)
}

func (s *AndSpecification[T]) String() string {
	return format("and", s.components)
}

// OrSpecification is satisfied when any component is satisfied.
// Evaluation stops at the first component that succeeds.
type OrSpecification[T any] struct {
	components []Specification[T]
}

// Or combines first and others into a disjunction. A nil component panics.
func Or[T any](first Specification[T], others ...Specification[T]) *OrSpecification[T] {
	return &OrSpecification[T]{components: collect(first, others)}
}

// IsSatisfiedBy reports whether any component accepts candidate.
func (s *OrSpecification[T]) IsSatisfiedBy(candidate T) bool {
	for _, c := range s.components {
		if c.IsSatisfiedBy(candidate) {
			return true
		}
	}
	return false
}

// Components returns a copy of the disjuncts.
func (s *OrSpecification[T]) Components() []Specification[T] {
	return slices.Clone(s.components)
}

// And returns s AND other.
func (s *OrSpecification[T]) And(other Specification[T]) *AndSpecification[T] {
	return And[T](s, other)
}

// Or returns s OR other.
func (s *OrSpecification[T]) Or(other Specification[T]) *OrSpecification[T] {
	return Or[T](s, other)
}

// Not returns NOT s.
func (s *OrSpecification[T]) Not() *NotSpecification[T] {
	return Not[T](s)
}

func (s *OrSpecification[T]) String() string {
	return format("or", s.components)
}

// NotSpecification inverts a single component.
type NotSpecification[T any] struct {
	component Specification[T]
}

// Not negates s. A nil s panics.
func Not[T any](s Specification[T]) *NotSpecification[T] {
	if absent.Is(s) {
		panic(invalidArgument("not: specification is required"))
	}
	return &NotSpecification[T]{component: s}
}

// IsSatisfiedBy reports whether the component rejects candidate.
func (s *NotSpecification[T]) IsSatisfiedBy(candidate T) bool {
	return !s.component.IsSatisfiedBy(candidate)
}

// Components returns the negated specification as a one-element slice.
func (s *NotSpecification[T]) Components() []Specification[T] {
	return []Specification[T]{s.component}
}

// And returns s AND other.
func (s *NotSpecification[T]) And(other Specification[T]) *AndSpecification[T] {
	return And[T](s, other)
}

// Or returns s OR other.
func (s *NotSpecification[T]) Or(other Specification[T]) *OrSpecification[T] {
	return Or[T](s, other)
}

// Not returns NOT s. It does not unwrap s.
func (s *NotSpecification[T]) Not() *NotSpecification[T] {
	return Not[T](s)
}

func (s *NotSpecification[T]) String() string {
	return format("not", s.Components())
}

func collect[T any](first Specification[T], others []Specification[T]) []Specification[T] {
	components := make([]Specification[T], 0, len(others)+1)
	components = append(components, first)
	components = append(components, others...)
	for i, c := range components {
		if absent.Is(c) {
			panic(invalidArgument("component %d is nil", i))
		}
	}
	return components
}

func format[T any](op string, components []Specification[T]) string {
	parts := make([]string, len(components))
	for i, c := range components {
		parts[i] = describe(c)
	}
	return op + "(" + strings.Join(parts, ", ") + ")"
}

func describe(s any) string {
	if str, ok := s.(fmt.Stringer); ok {
		return str.String()
	}
	return fmt.Sprintf("%T", s)
}
