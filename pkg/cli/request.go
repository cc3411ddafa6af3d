package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GenerateRequest is the request file consumed by the generate and
// regenerate commands.
type GenerateRequest struct {
	// Prompt is the course brief sent to the generator.
	Prompt string `yaml:"prompt" json:"prompt"`

	// Sections are the 1-based flat indices to regenerate. Empty means
	// every section (regenerate only).
	Sections []int `yaml:"sections,omitempty" json:"sections,omitempty"`

	// References are source paths recorded on the course.
	References []string `yaml:"references,omitempty" json:"references,omitempty"`
}

// LoadRequest loads a request from a YAML or JSON file into the provided
// struct. Pass "-" to read from stdin.
func LoadRequest(path string, v any) error {
	if path == "-" {
		return loadRequestFromStdin(v)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return ParseRequest(data, path, v)
}

// ParseRequest parses request data based on file extension or content.
func ParseRequest(data []byte, filename string, v any) error {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		// Try YAML first, then JSON.
		if err := yaml.Unmarshal(data, v); err != nil {
			if err2 := json.Unmarshal(data, v); err2 != nil {
				return fmt.Errorf("failed to parse file (tried YAML and JSON)")
			}
		}
	}
	return nil
}

func loadRequestFromStdin(v any) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	// Try JSON first for stdin, then YAML.
	if err := json.Unmarshal(data, v); err != nil {
		if err2 := yaml.Unmarshal(data, v); err2 != nil {
			return fmt.Errorf("failed to parse input (tried JSON and YAML)")
		}
	}
	return nil
}
