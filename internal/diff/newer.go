package diff

import (
	"github.com/ralt/pkgdiff/internal/models"
	"github.com/ralt/pkgdiff/internal/vercmp"
)

// IsNewer reports whether s is a strictly newer build than t.
//
// A differing epoch decides on its own, and an absent epoch orders below any
// present one. With equal epochs the "version-release" strings are handed to
// cmp and only a Greater verdict counts as newer.
func IsNewer(cmp vercmp.Comparator, s, t *models.Package) bool {
	if c := compareEpoch(s.Epoch, t.Epoch); c != 0 {
		return c > 0
	}

	sVR := s.Version + "-" + s.Release
	tVR := t.Version + "-" + t.Release
	return cmp.Compare(sVR, tVR) == vercmp.Greater
}

func compareEpoch(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
