package harness

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/occfilter/internal/predicate"
)

// Suite is a named list of conformance cases.
type Suite struct {
	// Name identifies the suite and names its golden file.
	Name string `yaml:"name"`

	Description string `yaml:"description"`

	// MaxDepth bounds decoding recursion. Zero means unlimited.
	MaxDepth int `yaml:"max_depth,omitempty"`

	Cases []Case `yaml:"cases"`
}

// Case is one input and its expected outcome.
type Case struct {
	Name string `yaml:"name"`

	// Exactly one of Predicate, JSON and Request is set.
	Predicate any    `yaml:"predicate,omitempty"`
	JSON      string `yaml:"json,omitempty"`
	Request   any    `yaml:"request,omitempty"`

	Expect Expect `yaml:"expect"`

	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Expect is the outcome a case must produce.
type Expect struct {
	Valid bool `yaml:"valid"`

	// Code is the expected error code when Valid is false. Empty accepts
	// any error.
	Code string `yaml:"code,omitempty"`

	// Canonical is the expected canonical JSON when Valid is true. Empty
	// skips the comparison.
	Canonical string `yaml:"canonical,omitempty"`
}

// Assertion checks a property of a decoded predicate.
type Assertion struct {
	// Type is one of kind, contains_kind, depth, parameters.
	Type string `yaml:"type"`

	Kind       string   `yaml:"kind,omitempty"`
	Depth      int      `yaml:"depth,omitempty"`
	Parameters []string `yaml:"parameters,omitempty"`
}

// Assertion type constants.
const (
	AssertKind         = "kind"
	AssertContainsKind = "contains_kind"
	AssertDepth        = "depth"
	AssertParameters   = "parameters"
)

// LoadSuite reads and parses a suite YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}
	return ParseSuite(data)
}

// ParseSuite parses suite YAML with strict field checking.
func ParseSuite(data []byte) (*Suite, error) {
	var suite Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateSuite(&suite); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}

	return &suite, nil
}

// validateSuite checks that required fields are present and valid.
func validateSuite(s *Suite) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = true

		inputs := 0
		for _, set := range []bool{c.Predicate != nil, c.JSON != "", c.Request != nil} {
			if set {
				inputs++
			}
		}
		if inputs != 1 {
			return fmt.Errorf("cases[%d]: exactly one of predicate, json, request is required", i)
		}

		if c.Expect.Valid && c.Expect.Code != "" {
			return fmt.Errorf("cases[%d].expect: code is only allowed when valid is false", i)
		}
		if !c.Expect.Valid && c.Expect.Canonical != "" {
			return fmt.Errorf("cases[%d].expect: canonical is only allowed when valid is true", i)
		}
		if !c.Expect.Valid && len(c.Assertions) > 0 {
			return fmt.Errorf("cases[%d]: assertions need a valid case", i)
		}
		if c.Request != nil && len(c.Assertions) > 0 {
			return fmt.Errorf("cases[%d]: assertions apply to predicates only", i)
		}

		for j, a := range c.Assertions {
			if err := validateAssertion(i, j, &a); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(caseIndex, index int, a *Assertion) error {
	prefix := fmt.Sprintf("cases[%d].assertions[%d]", caseIndex, index)
	switch a.Type {
	case "":
		return fmt.Errorf("%s: type is required", prefix)
	case AssertKind, AssertContainsKind:
		if a.Kind == "" {
			return fmt.Errorf("%s: kind is required for %s", prefix, a.Type)
		}
		if !isKind(a.Kind) {
			return fmt.Errorf("%s: unknown predicate kind %q", prefix, a.Kind)
		}
	case AssertDepth:
		if a.Depth < 1 {
			return fmt.Errorf("%s: depth must be at least 1", prefix)
		}
	case AssertParameters:
		if a.Parameters == nil {
			return fmt.Errorf("%s: parameters list is required", prefix)
		}
	default:
		return fmt.Errorf("%s: unknown assertion type %q", prefix, a.Type)
	}
	return nil
}

func isKind(name string) bool {
	return slices.Contains(predicate.Kinds, predicate.Kind(name))
}
