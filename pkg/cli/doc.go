// Package cli provides common utilities for the studyforge command-line
// tool.
//
// This package includes:
//   - Configuration management (generator contexts)
//   - Output formatting (YAML, JSON, raw) with optional jq filtering
//   - Request file loading (YAML/JSON)
//   - Styled rendering of review findings
//
// Configuration is stored in ~/.studyforge/, supporting multiple generator
// contexts similar to kubectl.
package cli
