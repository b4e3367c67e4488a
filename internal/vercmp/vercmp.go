// Package vercmp exposes RPM version ordering behind a small interface so the
// diff engine can be driven by any comparator.
package vercmp

import "github.com/sassoftware/go-rpmutils"

// Ordering is the three-way result of a version comparison
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

// String returns the string representation of Ordering
func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return "unknown"
	}
}

// Comparator orders two version-release strings.
// Implementations must be pure and antisymmetric.
type Comparator interface {
	Compare(a, b string) Ordering
}

// ComparatorFunc adapts a function to the Comparator interface
type ComparatorFunc func(a, b string) Ordering

// Compare calls f(a, b)
func (f ComparatorFunc) Compare(a, b string) Ordering {
	return f(a, b)
}

// RPM compares version-release strings with rpm's vercmp rules
type RPM struct{}

// Compare implements Comparator
func (RPM) Compare(a, b string) Ordering {
	switch c := rpmutils.Vercmp(a, b); {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	default:
		return Equal
	}
}

// Compare orders a and b with the RPM comparator
func Compare(a, b string) Ordering {
	return RPM{}.Compare(a, b)
}
