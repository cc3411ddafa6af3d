package cli

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	err := Output(sample{Name: "go-course", Count: 3}, OutputOptions{
		Format: FormatJSON,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if !strings.Contains(buf.String(), `"name": "go-course"`) {
		t.Errorf("JSON output = %q", buf.String())
	}
}

func TestOutputYAMLDefault(t *testing.T) {
	var buf bytes.Buffer
	err := Output(sample{Name: "go-course", Count: 3}, OutputOptions{Writer: &buf})
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if !strings.Contains(buf.String(), "name: go-course") {
		t.Errorf("YAML output = %q", buf.String())
	}
}

func TestOutputRawString(t *testing.T) {
	var buf bytes.Buffer
	err := Output("plain text", OutputOptions{Format: FormatRaw, Writer: &buf})
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if buf.String() != "plain text" {
		t.Errorf("raw output = %q", buf.String())
	}
}

func TestOutputUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Output(sample{}, OutputOptions{Format: "table", Writer: &buf}); err == nil {
		t.Fatal("Output accepted unsupported format")
	}
}

func TestApplyQuery(t *testing.T) {
	got, err := ApplyQuery(sample{Name: "go-course", Count: 3}, ".name")
	if err != nil {
		t.Fatalf("ApplyQuery: %v", err)
	}
	if got != "go-course" {
		t.Errorf("ApplyQuery(.name) = %v", got)
	}

	got, err = ApplyQuery([]sample{{Name: "a"}, {Name: "b"}}, ".[].name")
	if err != nil {
		t.Fatalf("ApplyQuery: %v", err)
	}
	list, ok := got.([]any)
	if !ok || len(list) != 2 || list[0] != "a" || list[1] != "b" {
		t.Errorf("ApplyQuery(.[].name) = %v", got)
	}

	if _, err := ApplyQuery(sample{}, ".name | huh("); err == nil {
		t.Fatal("ApplyQuery accepted invalid expression")
	}
}

func TestOutputWithQuery(t *testing.T) {
	var buf bytes.Buffer
	err := Output(sample{Name: "go-course", Count: 3}, OutputOptions{
		Format: FormatJSON,
		Query:  ".count",
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "3" {
		t.Errorf("queried output = %q", buf.String())
	}
}
