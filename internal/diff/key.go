package diff

import "github.com/ralt/pkgdiff/internal/models"

// Field names a package attribute that takes part in matching
type Field int

const (
	FieldArch Field = iota
	FieldName
	FieldEpoch
	FieldVersion
	FieldRelease
)

// String returns the export field name
func (f Field) String() string {
	switch f {
	case FieldArch:
		return "arch"
	case FieldName:
		return "name"
	case FieldEpoch:
		return "epoch"
	case FieldVersion:
		return "version"
	case FieldRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Key is an ordered set of fields two packages must agree on to match
type Key []Field

var (
	// FullIdentityKey matches exact builds; used by the existence diff
	FullIdentityKey = Key{FieldArch, FieldName, FieldEpoch, FieldVersion, FieldRelease}

	// CoordinateKey matches the same logical package in any version; used by the version diff
	CoordinateKey = Key{FieldArch, FieldName}
)

// Match reports whether a and b are equal on every field of the key.
// Strings compare byte for byte; epochs are equal when both are absent or
// both are present with the same value.
func (k Key) Match(a, b *models.Package) bool {
	for _, field := range k {
		if !fieldEqual(field, a, b) {
			return false
		}
	}
	return true
}

func fieldEqual(field Field, a, b *models.Package) bool {
	switch field {
	case FieldArch:
		return a.Arch == b.Arch
	case FieldName:
		return a.Name == b.Name
	case FieldEpoch:
		if a.Epoch == nil || b.Epoch == nil {
			return a.Epoch == nil && b.Epoch == nil
		}
		return *a.Epoch == *b.Epoch
	case FieldVersion:
		return a.Version == b.Version
	case FieldRelease:
		return a.Release == b.Release
	default:
		return false
	}
}
