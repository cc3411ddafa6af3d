package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseRequestYAML(t *testing.T) {
	data := []byte("prompt: build a Go course\nsections: [2, 4]\nreferences:\n  - refs/spec.md\n")
	var req GenerateRequest
	if err := ParseRequest(data, "req.yaml", &req); err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Prompt != "build a Go course" {
		t.Errorf("Prompt = %q", req.Prompt)
	}
	if len(req.Sections) != 2 || req.Sections[0] != 2 || req.Sections[1] != 4 {
		t.Errorf("Sections = %v", req.Sections)
	}
	if len(req.References) != 1 || req.References[0] != "refs/spec.md" {
		t.Errorf("References = %v", req.References)
	}
}

func TestParseRequestJSON(t *testing.T) {
	data := []byte(`{"prompt": "build a Go course"}`)
	var req GenerateRequest
	if err := ParseRequest(data, "req.json", &req); err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Prompt != "build a Go course" {
		t.Errorf("Prompt = %q", req.Prompt)
	}
}

func TestParseRequestUnknownExtension(t *testing.T) {
	// No extension: YAML is tried first, then JSON.
	var req GenerateRequest
	if err := ParseRequest([]byte(`{"prompt": "p"}`), "req", &req); err != nil {
		t.Fatalf("ParseRequest JSON fallback: %v", err)
	}
	if req.Prompt != "p" {
		t.Errorf("Prompt = %q", req.Prompt)
	}

	if err := ParseRequest([]byte(`{{{not anything`), "req", &req); err == nil {
		t.Fatal("ParseRequest accepted garbage")
	}
}

func TestLoadRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.yaml")
	if err := os.WriteFile(path, []byte("prompt: hello\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var req GenerateRequest
	if err := LoadRequest(path, &req); err != nil {
		t.Fatalf("LoadRequest: %v", err)
	}
	if req.Prompt != "hello" {
		t.Errorf("Prompt = %q", req.Prompt)
	}

	if err := LoadRequest(filepath.Join(t.TempDir(), "missing.yaml"), &req); err == nil {
		t.Fatal("LoadRequest succeeded for missing file")
	}
}
