// Package diff compares two package lists, either for builds missing from the
// second list or for packages that are newer in the first one.
package diff

import (
	"fmt"

	"github.com/ralt/pkgdiff/internal/models"
	"github.com/ralt/pkgdiff/internal/vercmp"
)

// Mode selects the kind of comparison
type Mode int

const (
	// ModeExistence reports source packages with no identical build in the target
	ModeExistence Mode = iota
	// ModeVersion reports source packages newer than their counterpart in the target
	ModeVersion
)

// String returns the string representation of Mode
func (m Mode) String() string {
	switch m {
	case ModeExistence:
		return "existence"
	case ModeVersion:
		return "version"
	default:
		return "unknown"
	}
}

// Engine runs diffs. It keeps no state between runs and is safe for concurrent use.
type Engine struct {
	comparator vercmp.Comparator
	reporter   Reporter
}

// Option configures an Engine
type Option func(*Engine)

// WithComparator replaces the RPM version comparator
func WithComparator(c vercmp.Comparator) Option {
	return func(e *Engine) {
		e.comparator = c
	}
}

// WithReporter sets the progress reporter
func WithReporter(r Reporter) Option {
	return func(e *Engine) {
		e.reporter = r
	}
}

// NewEngine creates an engine using RPM ordering and no progress reporting
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		comparator: vercmp.RPM{},
		reporter:   NopReporter{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run dispatches to Existence or Version
func (e *Engine) Run(mode Mode, source, target []models.Package, limit int) (*Result, error) {
	switch mode {
	case ModeExistence:
		return e.Existence(source, target, limit)
	case ModeVersion:
		return e.Version(source, target, limit)
	default:
		return nil, fmt.Errorf("unknown diff mode %d", mode)
	}
}

// Existence returns the source packages that have no build in target with the
// same arch, name, epoch, version and release.
//
// Only the first limit source packages are compared when limit is positive;
// target is always searched in full.
func (e *Engine) Existence(source, target []models.Package, limit int) (*Result, error) {
	return e.run(source, target, limit, func(s *models.Package) bool {
		return findFirst(target, s, FullIdentityKey) == nil
	})
}

// Version returns the source packages that are strictly newer than their
// counterpart in target.
//
// The counterpart is the first target package with the same arch and name;
// further packages sharing that pair (multilib duplicates, for instance) are
// not looked at. Source packages without a counterpart are skipped.
func (e *Engine) Version(source, target []models.Package, limit int) (*Result, error) {
	return e.run(source, target, limit, func(s *models.Package) bool {
		t := findFirst(target, s, CoordinateKey)
		return t != nil && IsNewer(e.comparator, s, t)
	})
}

func (e *Engine) run(source, target []models.Package, limit int, selected func(*models.Package) bool) (*Result, error) {
	if err := validate("source", source); err != nil {
		return nil, err
	}
	if err := validate("target", target); err != nil {
		return nil, err
	}

	if limit > 0 && limit < len(source) {
		source = source[:limit]
	}

	result := newResult()
	total := len(source)
	for i := range source {
		if selected(&source[i]) {
			result.add(source[i])
		}

		if (i+1)%ProgressInterval == 0 {
			notify(e.reporter, i+1, total)
		}
	}

	return result, nil
}

// findFirst returns the first package of list matching pkg under key
func findFirst(list []models.Package, pkg *models.Package, key Key) *models.Package {
	for i := range list {
		if key.Match(pkg, &list[i]) {
			return &list[i]
		}
	}
	return nil
}

func validate(name string, list []models.Package) error {
	for i, pkg := range list {
		if pkg.Name == "" {
			return &models.DiffError{
				Type: models.ErrInvalidRecord,
				Err:  fmt.Errorf("%s package #%d has no name", name, i),
			}
		}
		if pkg.Arch == "" {
			return &models.DiffError{
				Type: models.ErrInvalidRecord,
				Err:  fmt.Errorf("%s package #%d (%s) has no arch", name, i, pkg.Name),
			}
		}
	}
	return nil
}
