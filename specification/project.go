package specification

import (
	"github.com/zoobzio/verity/internal/absent"
)

// On returns a specification over S that applies spec to project(candidate).
func On[S, T any](project func(S) T, spec Specification[T]) Specification[S] {
	if project == nil || absent.Is(spec) {
		panic(invalidArgument("on: projection and specification are required"))
	}
	return &onSpecification[S, T]{project: project, spec: spec}
}

type onSpecification[S, T any] struct {
	project func(S) T
	spec    Specification[T]
}

func (s *onSpecification[S, T]) IsSatisfiedBy(candidate S) bool {
	return s.spec.IsSatisfiedBy(s.project(candidate))
}

func (s *onSpecification[S, T]) String() string {
	return "on(" + describe(s.spec) + ")"
}

func (s *onSpecification[S, T]) equal(Specification[S]) bool {
	return false
}
