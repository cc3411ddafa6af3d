package extract

import (
	"encoding/json"
	"testing"
)

func TestJSONText_FencedBlock(t *testing.T) {
	raw := "Here is the course:\n```json\n{\"title\": \"Go Basics\"}\n```\nEnjoy!"
	got := JSONText(raw)
	want := `{"title": "Go Basics"}`
	if got != want {
		t.Errorf("JSONText() = %q, want %q", got, want)
	}
}

func TestJSONText_FencedBlockNoTag(t *testing.T) {
	raw := "```\n{\"a\": 1}\n```"
	if got := JSONText(raw); got != `{"a": 1}` {
		t.Errorf("JSONText() = %q, want %q", got, `{"a": 1}`)
	}
}

func TestJSONText_BareValidVerbatim(t *testing.T) {
	raw := "  {\"a\": 1}\n"
	if got := JSONText(raw); got != `{"a": 1}` {
		t.Errorf("JSONText() = %q, want %q", got, `{"a": 1}`)
	}
}

func TestJSONText_Idempotent(t *testing.T) {
	inputs := []string{
		`{"a": 1}`,
		"```json\n{\"b\": [1, 2]}\n```",
		"prose before {\"c\": true} prose after",
	}
	for _, in := range inputs {
		once := JSONText(in)
		twice := JSONText(once)
		if once != twice {
			t.Errorf("JSONText not idempotent on %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestJSONText_ProseWrapped(t *testing.T) {
	raw := `Sure! Here it is: {"title": "Intro", "modules": []} — let me know.`
	want := `{"title": "Intro", "modules": []}`
	if got := JSONText(raw); got != want {
		t.Errorf("JSONText() = %q, want %q", got, want)
	}
}

func TestJSONText_BracesInsideStrings(t *testing.T) {
	raw := `{"a": "x{y}z"}`
	if got := JSONText(raw); got != raw {
		t.Errorf("JSONText() = %q, want %q", got, raw)
	}

	// Embedded in prose: the literal braces in the value must not end the scan early.
	wrapped := "output: " + raw + " done"
	if got := JSONText(wrapped); got != raw {
		t.Errorf("JSONText() = %q, want %q", got, raw)
	}
}

func TestJSONText_EscapedQuotesInsideStrings(t *testing.T) {
	raw := `text {"a": "he said \"hi\" {ok}"} text`
	want := `{"a": "he said \"hi\" {ok}"}`
	if got := JSONText(raw); got != want {
		t.Errorf("JSONText() = %q, want %q", got, want)
	}
}

func TestJSONText_TruncatedMidString(t *testing.T) {
	got := JSONText(`{"a": "hel`)
	want := `{"a": "hel"}`
	if got != want {
		t.Errorf("JSONText() = %q, want %q", got, want)
	}
	if !json.Valid([]byte(got)) {
		t.Errorf("repaired output %q is not valid JSON", got)
	}
}

func TestJSONText_TruncatedAtPropertyBoundary(t *testing.T) {
	got := JSONText(`{"a": 1, "b":`)
	if !json.Valid([]byte(got)) {
		t.Fatalf("repaired output %q is not valid JSON", got)
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(got), &m); err != nil {
		t.Fatalf("unmarshal repaired output: %v", err)
	}
	if m["a"] != float64(1) {
		t.Errorf(`repaired output lost "a": %q`, got)
	}
}

func TestJSONText_TruncatedInsideNestedArray(t *testing.T) {
	got := JSONText(`{"hints": ["one", "two", ["three", "fo`)
	if !json.Valid([]byte(got)) {
		t.Fatalf("repaired output %q is not valid JSON", got)
	}
}

func TestJSONText_TruncatedWithDanglingBackslash(t *testing.T) {
	got := JSONText(`{"a": "path\`)
	if !json.Valid([]byte(got)) {
		t.Fatalf("repaired output %q is not valid JSON", got)
	}
}

func TestJSONText_NoBraceReturnsTrimmed(t *testing.T) {
	raw := "  I could not produce the document, sorry.  "
	want := "I could not produce the document, sorry."
	if got := JSONText(raw); got != want {
		t.Errorf("JSONText() = %q, want %q", got, want)
	}
}

func TestJSONText_BeyondRepairWindow(t *testing.T) {
	// More unrepairable tail than the trim window covers: extraction gives up
	// and falls back to the trimmed input. The downstream decode rejects it.
	var sb []byte
	sb = append(sb, '{')
	for range 300 {
		sb = append(sb, ']')
	}
	raw := string(sb)

	got := JSONText(raw)
	if got != raw {
		t.Errorf("JSONText() = %q, want input returned unchanged", got)
	}
	if json.Valid([]byte(got)) {
		t.Error("unrepairable input unexpectedly parsed")
	}
}

func TestUnmarshal_Valid(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	if err := Unmarshal([]byte(`{"a": 3}`), &v); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if v.A != 3 {
		t.Errorf("v.A = %d, want 3", v.A)
	}
}

func TestUnmarshal_RepairsSyntaxError(t *testing.T) {
	var v struct {
		A string `json:"a"`
	}
	// Trailing comma is a syntax error that jsonrepair fixes.
	if err := Unmarshal([]byte(`{"a": "x",}`), &v); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if v.A != "x" {
		t.Errorf("v.A = %q, want %q", v.A, "x")
	}
}

func TestUnmarshal_TypeErrorNotRepaired(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	if err := Unmarshal([]byte(`{"a": "not a number"}`), &v); err == nil {
		t.Error("Unmarshal() should fail on type mismatch")
	}
}
