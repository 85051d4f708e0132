package fuzzydose

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidArgument marks every validation failure in the package:
	// malformed membership functions, unknown combination methods,
	// antecedent degrees outside [0,1] and bad sampling domains.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoRuleFired is returned by a Controller built with WithStrictCoverage
	// when the reading has zero membership in both temperature sets.
	ErrNoRuleFired = errors.New("no rule fired")
)

// invalidArgumentf wraps ErrInvalidArgument with a stack and a message naming
// the offending value.
func invalidArgumentf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
