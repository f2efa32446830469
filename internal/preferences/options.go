package preferences

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidOption is wrapped by every ValidationError.
var ErrInvalidOption = errors.New("invalid option")

// ValidationError rejects a value outside the allowed set. State is left
// untouched.
type ValidationError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q (allowed: %s)", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidOption }

var (
	TodoSortOptions               = []string{"date", "markingNeeded"}
	JournalSortOptions            = []string{"markingNeeded", "name", "username", "points"}
	CourseMemberSortOptions       = []string{"name", "username"}
	AssignmentOverviewSortOptions = []string{"name", "date", "markingNeeded"}
)

func validate(field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return &ValidationError{Field: field, Value: value, Allowed: allowed}
}
