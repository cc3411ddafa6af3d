package review

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/studyforge/studyforge/pkg/course"
)

// balancedCourse is the end-to-end scenario: 60-minute course, one module of
// [lecture 10, exercise 20, quiz 10, reflection 20].
func balancedCourse() *course.Course {
	return &course.Course{
		Title:    "HTTP in Go",
		Audience: course.Audience{Description: "working developers", Level: course.LevelIntermediate},
		Minutes:  60,
		Modules: []course.Module{
			{
				Title:   "Servers",
				Minutes: 60,
				Sections: []course.Section{
					course.NewLecture("Handlers", 10, []string{"mux", "handler funcs"}),
					course.NewExercise("Build a handler", 20, "Implement /health.", "package main\n", "package main\n// done\n", nil),
					course.NewQuiz("Server check", 10,
						[]string{"What is a Handler?"},
						[]string{"an interface"},
						[]string{"http.Handler has ServeHTTP"}),
					course.NewReflection("Review your handler", 20, []string{"What would you change?"}),
				},
			},
		},
	}
}

func findingsFor(rep *Report, rule string) []Finding {
	var out []Finding
	for _, f := range rep.Findings {
		if f.Rule == rule {
			out = append(out, f)
		}
	}
	return out
}

func rulePassed(t *testing.T, rep *Report, rule string) bool {
	t.Helper()
	fs := findingsFor(rep, rule)
	if len(fs) == 0 {
		t.Fatalf("no findings for rule %q", rule)
	}
	for _, f := range fs {
		if !f.Passed {
			return false
		}
	}
	return true
}

func TestCheck_BalancedCourseScenario(t *testing.T) {
	rep := Check(balancedCourse())

	// Lecture is 16.7% <= 25%, practice+reflection is 66.7% >= 60%,
	// quiz is 16.7% >= 15%.
	for _, rule := range []string{"exposition_ratio", "practice_ratio", "checkpoint_ratio"} {
		if !rulePassed(t, rep, rule) {
			t.Errorf("rule %s should pass: %+v", rule, findingsFor(rep, rule))
		}
	}

	// 10+20 = 30 minutes before the quiz exceeds the 25-minute target.
	if rulePassed(t, rep, "checkpoint_spacing") {
		t.Error("checkpoint_spacing should fail")
	}

	// The spacing failure is a suggestion; the document stays valid.
	if !rep.Valid {
		t.Error("suggestion-only failures must not invalidate the document")
	}
}

func TestCheck_Deterministic(t *testing.T) {
	c := balancedCourse()
	a := Check(c)
	b := Check(c)
	if !reflect.DeepEqual(a, b) {
		t.Error("two checks of the same document produced different reports")
	}
}

func TestCheck_ErrorSeverityInvalidates(t *testing.T) {
	c := balancedCourse()
	c.Modules[0].Sections[0] = course.NewLecture("Too short", 3, nil)
	rep := Check(c)
	if rep.Valid {
		t.Error("a failing error-severity rule must invalidate the document")
	}
	if len(rep.Failed(SeverityError)) == 0 {
		t.Error("expected at least one failed error finding")
	}
}

func TestCheckWithSources_ReadableAndMissing(t *testing.T) {
	dir := t.TempDir()
	okPath := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(okPath, []byte("# notes"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := balancedCourse()
	c.References = []string{okPath}
	rep := CheckWithSources(context.Background(), c)
	if !rulePassed(t, rep, "reference_sources") {
		t.Errorf("readable reference should pass: %+v", findingsFor(rep, "reference_sources"))
	}

	c.References = append(c.References, filepath.Join(dir, "missing.md"))
	rep = CheckWithSources(context.Background(), c)
	if rulePassed(t, rep, "reference_sources") {
		t.Error("missing reference should fail")
	}
	if rep.Valid {
		t.Error("unreadable reference is an error and must invalidate")
	}
}

func TestCheck_PureCatalogSkipsReferenceRule(t *testing.T) {
	c := balancedCourse()
	c.References = []string{"/definitely/not/here.md"}
	rep := Check(c)
	if fs := findingsFor(rep, "reference_sources"); len(fs) != 0 {
		t.Errorf("pure Check must not touch the filesystem, got %+v", fs)
	}
}

func TestReport_Failed(t *testing.T) {
	c := balancedCourse()
	c.Modules[0].Sections[0] = course.NewLecture("Marathon", 30, nil)
	c.Modules[0].Minutes = 80
	c.Minutes = 80
	rep := Check(c)

	for _, f := range rep.Failed(SeveritySuggestion) {
		if f.Passed {
			t.Errorf("Failed() returned a passing finding: %+v", f)
		}
		if f.Severity != SeveritySuggestion {
			t.Errorf("Failed(suggestion) returned severity %q", f.Severity)
		}
	}
}
