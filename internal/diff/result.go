package diff

import (
	"maps"
	"sort"

	"github.com/ralt/pkgdiff/internal/models"
)

// Result holds the packages selected by a diff, partitioned by architecture.
// Count always equals the total number of packages across the buckets.
type Result struct {
	Count    int                         `json:"count" yaml:"count"`
	Packages map[string][]models.Package `json:"packages" yaml:"packages"`
}

func newResult() *Result {
	return &Result{Packages: make(map[string][]models.Package)}
}

// add appends a copy of pkg to the bucket of its architecture. The copy
// shares no epoch or extra map with pkg.
func (r *Result) add(pkg models.Package) {
	if pkg.Epoch != nil {
		pkg.Epoch = models.IntPtr(*pkg.Epoch)
	}
	pkg.Extra = maps.Clone(pkg.Extra)
	r.Packages[pkg.Arch] = append(r.Packages[pkg.Arch], pkg)
	r.Count++
}

// Architectures returns the bucket names in sorted order
func (r *Result) Architectures() []string {
	arches := make([]string, 0, len(r.Packages))
	for arch := range r.Packages {
		arches = append(arches, arch)
	}
	sort.Strings(arches)
	return arches
}

// Empty reports whether no package was selected
func (r *Result) Empty() bool {
	return r.Count == 0
}
