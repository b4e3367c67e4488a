package diff

import (
	"testing"

	"github.com/ralt/pkgdiff/internal/models"
	"github.com/ralt/pkgdiff/internal/vercmp"
	"github.com/stretchr/testify/assert"
)

func TestKeyMatch(t *testing.T) {
	base := pkg("foo", "x86_64", models.IntPtr(1), "1.0", "alt1")

	tests := []struct {
		name       string
		other      models.Package
		identity   bool
		coordinate bool
	}{
		{"identical", pkg("foo", "x86_64", models.IntPtr(1), "1.0", "alt1"), true, true},
		{"other release", pkg("foo", "x86_64", models.IntPtr(1), "1.0", "alt2"), false, true},
		{"other version", pkg("foo", "x86_64", models.IntPtr(1), "1.1", "alt1"), false, true},
		{"other epoch", pkg("foo", "x86_64", models.IntPtr(2), "1.0", "alt1"), false, true},
		{"absent epoch", pkg("foo", "x86_64", nil, "1.0", "alt1"), false, true},
		{"other arch", pkg("foo", "i586", models.IntPtr(1), "1.0", "alt1"), false, false},
		{"case differs", pkg("Foo", "x86_64", models.IntPtr(1), "1.0", "alt1"), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.identity, FullIdentityKey.Match(&base, &tt.other))
			assert.Equal(t, tt.coordinate, CoordinateKey.Match(&base, &tt.other))
		})
	}
}

func TestKeyMatchAbsentEpochs(t *testing.T) {
	a := pkg("foo", "x86_64", nil, "1.0", "alt1")
	b := pkg("foo", "x86_64", nil, "1.0", "alt1")
	assert.True(t, FullIdentityKey.Match(&a, &b))
}

func TestEmptyKeyMatchesEverything(t *testing.T) {
	a := pkg("foo", "x86_64", nil, "1.0", "alt1")
	b := pkg("bar", "noarch", nil, "2.0", "alt1")
	assert.True(t, Key{}.Match(&a, &b))
}

func TestFieldString(t *testing.T) {
	var names []string
	for _, f := range FullIdentityKey {
		names = append(names, f.String())
	}
	assert.Equal(t, []string{"arch", "name", "epoch", "version", "release"}, names)
}

func TestIsNewer(t *testing.T) {
	cmp := vercmp.RPM{}
	tests := []struct {
		name  string
		s, t  models.Package
		newer bool
	}{
		{"higher version", pkg("a", "x", nil, "1.2", "1"), pkg("a", "x", nil, "1.1", "1"), true},
		{"lower version", pkg("a", "x", nil, "1.1", "1"), pkg("a", "x", nil, "1.2", "1"), false},
		{"equal", pkg("a", "x", nil, "1.2", "1"), pkg("a", "x", nil, "1.2", "1"), false},
		{"higher release", pkg("a", "x", nil, "1.2", "alt2"), pkg("a", "x", nil, "1.2", "alt1"), true},
		{"epoch wins over version", pkg("a", "x", models.IntPtr(1), "0.1", "1"), pkg("a", "x", models.IntPtr(0), "9.9", "9"), true},
		{"epoch loses over version", pkg("a", "x", models.IntPtr(0), "9.9", "9"), pkg("a", "x", models.IntPtr(1), "0.1", "1"), false},
		{"present epoch beats absent", pkg("a", "x", models.IntPtr(0), "1.0", "1"), pkg("a", "x", nil, "2.0", "1"), true},
		{"absent epoch below present", pkg("a", "x", nil, "2.0", "1"), pkg("a", "x", models.IntPtr(0), "1.0", "1"), false},
		{"equal epochs fall through", pkg("a", "x", models.IntPtr(3), "2.0", "1"), pkg("a", "x", models.IntPtr(3), "1.0", "1"), true},
		{"tilde is older", pkg("a", "x", nil, "1.0~rc1", "1"), pkg("a", "x", nil, "1.0", "1"), false},
		{"release over tilde", pkg("a", "x", nil, "1.0", "1"), pkg("a", "x", nil, "1.0~rc1", "1"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.newer, IsNewer(cmp, &tt.s, &tt.t))
			if tt.newer {
				assert.False(t, IsNewer(cmp, &tt.t, &tt.s), "newer must be antisymmetric")
			}
		})
	}
}
