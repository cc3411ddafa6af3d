// Package extract recovers structured JSON from raw model output.
//
// Model responses arrive as free text: the payload may be wrapped in prose,
// fenced in a markdown code block, or cut off mid-token when a stream ends
// early. JSONText does a best-effort recovery and always returns a string;
// the caller's schema decode is the arbiter of whether recovery succeeded.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// repairWindow bounds how many trailing bytes JSONText is willing to drop
// while searching for a parseable prefix of truncated input. Payloads cut
// off further back than this are not recovered.
const repairWindow = 200

// JSONText extracts the best-effort JSON payload from raw text. It never
// fails; when nothing resembling JSON is found the trimmed input is returned
// unchanged and the caller's decode will reject it.
//
// Strategies, first hit wins:
//  1. the interior of a fenced code block
//  2. the whole trimmed text, if already valid JSON
//  3. a balanced-brace substring starting at the first '{'
//  4. truncation repair on a trimmed-back prefix of the text
func JSONText(raw string) string {
	if inner, ok := fencedBlock(raw); ok {
		return inner
	}

	trimmed := strings.TrimSpace(raw)
	if json.Valid([]byte(trimmed)) {
		return trimmed
	}

	start := strings.IndexByte(trimmed, '{')
	if start < 0 {
		return trimmed
	}

	if obj, ok := balancedObject(trimmed[start:]); ok {
		return obj
	}

	if fixed, ok := repairTruncated(trimmed[start:]); ok {
		return fixed
	}

	return trimmed
}

// fencedBlock returns the trimmed interior of the first triple-backtick
// region, optionally tagged "json". Both fences must be present.
func fencedBlock(s string) (string, bool) {
	i := strings.Index(s, "```")
	if i < 0 {
		return "", false
	}
	rest := s[i+3:]
	if len(rest) >= 4 && strings.EqualFold(rest[:4], "json") {
		rest = rest[4:]
	}
	j := strings.Index(rest, "```")
	if j < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:j]), true
}

// balancedObject scans s (which starts at '{') counting brace depth, ignoring
// braces inside string literals, and returns the substring up to the point
// depth returns to zero.
func balancedObject(s string) (string, bool) {
	depth := 0
	inStr := false
	esc := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			switch {
			case esc:
				esc = false
			case c == '\\':
				esc = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}

// repairTruncated tries progressively shorter prefixes of s, applying a
// closing transform to each, and returns the first candidate that parses.
// s must start at '{'.
func repairTruncated(s string) (string, bool) {
	for trim := 0; trim <= repairWindow && trim < len(s); trim++ {
		candidate := closeTruncated(s[:len(s)-trim])
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}
	return "", false
}

// closeTruncated turns a prefix of a JSON document into a syntactically
// closed candidate: trailing separator noise is stripped, an open string
// literal is closed, and unmatched braces/brackets are closed in reverse
// order.
func closeTruncated(s string) string {
	s = strings.TrimRight(s, " \t\r\n,:")

	if countUnescapedQuotes(s)%2 == 1 {
		// A dangling backslash would escape the closing quote we are
		// about to add; drop it first.
		n := 0
		for n < len(s) && s[len(s)-1-n] == '\\' {
			n++
		}
		if n%2 == 1 {
			s = s[:len(s)-1]
		}
		s += `"`
	}

	s = strings.TrimRight(s, " \t\r\n")
	s = strings.TrimSuffix(s, ",")

	var open []byte
	inStr := false
	esc := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			switch {
			case esc:
				esc = false
			case c == '\\':
				esc = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{', '[':
			open = append(open, c)
		case '}':
			if len(open) > 0 && open[len(open)-1] == '{' {
				open = open[:len(open)-1]
			}
		case ']':
			if len(open) > 0 && open[len(open)-1] == '[' {
				open = open[:len(open)-1]
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(s)
	for i := len(open) - 1; i >= 0; i-- {
		if open[i] == '{' {
			sb.WriteByte('}')
		} else {
			sb.WriteByte(']')
		}
	}
	return sb.String()
}

func countUnescapedQuotes(s string) int {
	n := 0
	esc := false
	for i := 0; i < len(s); i++ {
		if esc {
			esc = false
			continue
		}
		switch s[i] {
		case '\\':
			esc = true
		case '"':
			n++
		}
	}
	return n
}

// Unmarshal unmarshals JSON data into v, attempting to repair malformed JSON.
// If the initial unmarshal fails with a syntax error, it repairs the input
// with jsonrepair before retrying.
func Unmarshal(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	if _, ok := err.(*json.SyntaxError); ok {
		fixed, rerr := jsonrepair.JSONRepair(string(data))
		if rerr != nil {
			return err
		}
		return json.Unmarshal([]byte(fixed), v)
	}
	return err
}
