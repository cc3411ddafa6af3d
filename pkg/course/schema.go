package course

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/studyforge/studyforge/pkg/extract"
)

// ErrSchema marks a generator payload that does not conform to the course
// wire shape. A decode failure is fatal for that generation attempt; retry
// policy belongs to the caller.
var ErrSchema = errors.New("course: schema violation")

// courseWire mirrors Course with modules in wire form, and is the shape the
// JSON schema is derived from.
type courseWire struct {
	Title         string       `json:"title"`
	Audience      Audience     `json:"audience"`
	Minutes       int          `json:"minutes"`
	Prerequisites []string     `json:"prerequisites,omitempty"`
	References    []string     `json:"references,omitempty"`
	Modules       []moduleWire `json:"modules"`
}

// Schema returns the JSON schema of the course wire format, for generators
// that support schema-constrained structured output.
func Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[courseWire](&jsonschema.ForOptions{})
}

var resolvedSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	s, err := Schema()
	if err != nil {
		return nil, err
	}
	return s.Resolve(nil)
})

// Decode parses a candidate JSON payload (typically the output of
// extract.JSONText) into a Course. The payload is validated against the wire
// schema before the variant-aware unmarshal runs; any failure wraps
// ErrSchema.
func Decode(raw string) (*Course, error) {
	resolved, err := resolvedSchema()
	if err != nil {
		return nil, fmt.Errorf("course: build schema: %w", err)
	}

	var instance any
	if err := extract.Unmarshal([]byte(raw), &instance); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if err := resolved.Validate(instance); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	var c Course
	if err := extract.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return &c, nil
}
