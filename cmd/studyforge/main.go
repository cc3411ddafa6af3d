// Package main provides the studyforge CLI tool.
//
// Usage:
//
//	studyforge [flags] <command> [args]
//
// Commands:
//
//	generate    - Generate a course from a prompt
//	regenerate  - Regenerate targeted sections of a saved draft
//	validate    - Review a course against the rule catalog
//	drafts      - Manage saved drafts
//	config      - Configuration management
//
// Configuration:
//
//	The CLI stores configuration and drafts in ~/.studyforge/.
//	Use 'studyforge config' commands to manage generator contexts.
package main

import (
	"fmt"
	"os"

	"github.com/studyforge/studyforge/cmd/studyforge/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
