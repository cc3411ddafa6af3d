// Package author turns generation sessions into validated courses.
//
// Generate runs one turn and decodes the reply; Regenerate redoes targeted
// sections of an existing course and splices the reply in place. Both
// recover from generator sloppiness: the JSON payload is extracted from
// whatever prose or fencing surrounds it, and truncated tails are repaired
// before decoding.
package author

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/studyforge/studyforge/pkg/course"
	"github.com/studyforge/studyforge/pkg/extract"
	"github.com/studyforge/studyforge/pkg/genio"
)

// Generate runs one generation turn and decodes the reply into a course.
func Generate(ctx context.Context, sess genio.Session, prompt string) (*course.Course, error) {
	text, err := collect(ctx, sess, prompt)
	if err != nil {
		return nil, err
	}
	return course.Decode(extract.JSONText(text))
}

// Regenerate asks the generator to redo the targeted sections of dst and
// splices the reply in place. refs are extra source references recorded on
// the course alongside the splice. dst is modified only when the reply
// decodes; a schema violation leaves it untouched.
func Regenerate(ctx context.Context, sess genio.Session, dst *course.Course, targets course.Targets, instructions string, refs []string) (course.SpliceReport, error) {
	outbound, err := regenPrompt(dst, targets, instructions)
	if err != nil {
		return course.SpliceReport{}, err
	}
	text, err := collect(ctx, sess, outbound)
	if err != nil {
		return course.SpliceReport{}, err
	}
	frag, err := course.Decode(extract.JSONText(text))
	if err != nil {
		return course.SpliceReport{}, err
	}
	return course.Splice(dst, targets, frag, refs), nil
}

// collect drains one turn. The final-message text is preferred; if the turn
// ends without one, the last cumulative delta is used instead, so a
// truncated but repairable payload still yields a course.
func collect(ctx context.Context, sess genio.Session, outbound string) (string, error) {
	stream, err := genio.Stream(ctx, sess, outbound)
	if err != nil {
		return "", fmt.Errorf("author: send: %w", err)
	}
	defer stream.Close()

	var partial, complete string
	var haveComplete bool
	for {
		chunk, err := stream.Next()
		if errors.Is(err, genio.ErrDone) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("author: stream: %w", err)
		}
		switch chunk.Kind {
		case genio.ChunkDelta:
			partial = chunk.Text
		case genio.ChunkComplete:
			complete = chunk.Text
			haveComplete = true
		}
	}

	if haveComplete {
		return complete, nil
	}
	if partial == "" {
		return "", errors.New("author: turn produced no text")
	}
	slog.Warn("author: turn ended without final message, decoding partial text",
		"len", len(partial))
	return partial, nil
}

func regenPrompt(c *course.Course, targets course.Targets, instructions string) (string, error) {
	cur, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("author: encode course: %w", err)
	}

	var sb strings.Builder
	if targets.All {
		sb.WriteString("Regenerate every section of the course below.")
	} else {
		fmt.Fprintf(&sb, "Regenerate the sections at positions %s of the course below, counting sections in document order starting at 1.",
			joinInts(targets.Indices))
	}
	sb.WriteString(" Reply with the complete course as JSON, keeping the same module layout and leaving every other section unchanged.\n")
	if instructions != "" {
		sb.WriteString(instructions)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.Write(cur)
	return sb.String(), nil
}

func joinInts(idx []int) string {
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
