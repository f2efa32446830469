package domain

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// equalOpts make optional text fields that were never set (nil) compare equal
// to fields cleared in an editor (""), and nil slices equal to empty ones.
var equalOpts = []cmp.Option{
	cmp.Comparer(func(a, b *string) bool {
		return StrValue(a) == StrValue(b)
	}),
	cmpopts.EquateEmpty(),
}

// Equal reports whether two entities are structurally equal.
func Equal[T any](a, b T) bool {
	return cmp.Equal(a, b, equalOpts...)
}

// Diff returns a human-readable description of the differences between a
// and b, or "" when they are equal.
func Diff[T any](a, b T) string {
	return cmp.Diff(a, b, equalOpts...)
}
