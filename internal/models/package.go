package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Package represents one binary package as listed by a branch export
type Package struct {
	// Core metadata
	Name    string
	Arch    string
	Epoch   *int // nil when the package has no epoch; never coerced to 0
	Version string
	Release string

	// Extra holds every other member of the package object verbatim.
	// An explicit null epoch is kept here so that it round-trips.
	Extra map[string]json.RawMessage
}

// PackageList is the body of a branch export: the declared length and the packages
type PackageList struct {
	Length   int       `json:"length"`
	Packages []Package `json:"packages"`
}

// IntPtr returns a pointer to v, handy for building epochs
func IntPtr(v int) *int {
	return &v
}

// EVR returns the epoch:version-release string of the package
func (p Package) EVR() string {
	if p.Epoch == nil {
		return fmt.Sprintf("%s-%s", p.Version, p.Release)
	}
	return fmt.Sprintf("%d:%s-%s", *p.Epoch, p.Version, p.Release)
}

// String returns the name-[epoch:]version-release.arch form of the package
func (p Package) String() string {
	return fmt.Sprintf("%s-%s.%s", p.Name, p.EVR(), p.Arch)
}

var stringFields = []string{"name", "arch", "version", "release"}

// UnmarshalJSON decodes a package object, rejecting records without the
// identifying fields and keeping unknown members untouched in Extra.
func (p *Package) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &DiffError{Type: ErrDecode, Err: err}
	}
	if raw == nil {
		return invalidRecord("package is null")
	}

	var pkg Package
	for _, field := range stringFields {
		val, ok := raw[field]
		if !ok || isNull(val) {
			return invalidRecord("package missing %q field", field)
		}

		var s string
		if err := json.Unmarshal(val, &s); err != nil {
			return invalidRecord("package field %q is not a string: %s", field, val)
		}

		switch field {
		case "name":
			pkg.Name = s
		case "arch":
			pkg.Arch = s
		case "version":
			pkg.Version = s
		case "release":
			pkg.Release = s
		}
		delete(raw, field)
	}

	if val, ok := raw["epoch"]; ok && !isNull(val) {
		var epoch int
		if err := json.Unmarshal(val, &epoch); err != nil || epoch < 0 {
			return invalidRecord("package %s has invalid epoch %s", pkg.Name, val)
		}
		pkg.Epoch = &epoch
		delete(raw, "epoch")
	}

	if len(raw) > 0 {
		pkg.Extra = raw
	}

	*p = pkg
	return nil
}

// MarshalJSON encodes the package with its extra members
func (p Package) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(p.Extra)+5)
	for k, v := range p.Extra {
		out[k] = v
	}

	for field, value := range map[string]string{
		"name":    p.Name,
		"arch":    p.Arch,
		"version": p.Version,
		"release": p.Release,
	} {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		out[field] = encoded
	}

	if p.Epoch != nil {
		out["epoch"] = json.RawMessage(fmt.Sprintf("%d", *p.Epoch))
	}

	return json.Marshal(out)
}

// MarshalYAML renders the package as a plain mapping so that extra members
// keep their JSON values at every depth.
func (p Package) MarshalYAML() (interface{}, error) {
	data, err := p.MarshalJSON()
	if err != nil {
		return nil, err
	}

	// JSON is valid YAML
	var out map[string]interface{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func isNull(val json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(val), []byte("null"))
}

func invalidRecord(format string, args ...interface{}) error {
	return &DiffError{Type: ErrInvalidRecord, Err: fmt.Errorf(format, args...)}
}
