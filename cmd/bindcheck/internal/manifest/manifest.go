// Package manifest loads and runs YAML files describing binding cases.
package manifest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is a named list of binding cases.
type Manifest struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
}

// Case describes one value delivered to one binding.
type Case struct {
	Name string `yaml:"name"`
	// Type is one of string, bool, int, int32, int64, float32, float64,
	// decimal, time or enum. Any other name exercises the unsupported path.
	Type   string `yaml:"type"`
	Format string `yaml:"format,omitempty"`
	// Payload is the raw event value. YAML booleans stay booleans; every
	// other scalar is delivered as its text.
	Payload yaml.Node `yaml:"payload"`
	// Expect is the formatted value the setter should receive.
	Expect string `yaml:"expect,omitempty"`
	// ExpectError is "parse" or "configuration" for cases meant to fail.
	ExpectError string `yaml:"expect_error,omitempty"`
	// Members lists enum member names in declaration order.
	Members []string `yaml:"members,omitempty"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and validates manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(m.Cases) == 0 {
		return nil, fmt.Errorf("manifest has no cases")
	}
	for i := range m.Cases {
		c := &m.Cases[i]
		if strings.TrimSpace(c.Name) == "" {
			c.Name = fmt.Sprintf("case %d", i+1)
		}
		if c.Type == "" {
			return nil, fmt.Errorf("%s: type is required", c.Name)
		}
		switch c.ExpectError {
		case "", "parse", "configuration":
		default:
			return nil, fmt.Errorf("%s: expect_error must be parse or configuration, got %q", c.Name, c.ExpectError)
		}
		if c.Type == "enum" && len(c.Members) == 0 && c.ExpectError != "configuration" {
			return nil, fmt.Errorf("%s: enum cases need members", c.Name)
		}
	}
	return &m, nil
}

// PayloadValue returns the payload as an event would carry it.
func (c Case) PayloadValue() any {
	n := c.Payload
	if n.Kind == 0 || n.ShortTag() == "!!null" {
		return nil
	}
	if n.Kind != yaml.ScalarNode {
		return n.Value
	}
	if n.ShortTag() == "!!bool" {
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	}
	return n.Value
}
