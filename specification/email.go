package specification

import (
	"github.com/go-playground/validator/v10"
)

var addresses = validator.New(validator.WithRequiredStructEnabled())

// ValidEmail returns a specification satisfied by present text that is a
// syntactically valid email address. Validation failures of any kind mean
// the candidate is not satisfied.
func ValidEmail[T Text]() Specification[T] {
	return validEmail[T]{}
}

type validEmail[T Text] struct{}

func (validEmail[T]) IsSatisfiedBy(candidate T) bool {
	if textAbsent(candidate) {
		return false
	}
	return addresses.Var(string(candidate), "required,email") == nil
}

func (validEmail[T]) String() string { return "validEmail" }
