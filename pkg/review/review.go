// Package review checks a course document against a catalog of structural
// and pedagogical rules and reports severity-classified findings.
//
// Checking is pure: no mutation, no I/O, deterministic for a given document.
// The one exception is CheckWithSources, which additionally verifies that
// declared reference sources are readable on disk.
package review

import (
	"context"
	"fmt"
	"os"

	"github.com/studyforge/studyforge/pkg/course"
)

// Severity classifies a finding as blocking or advisory.
type Severity string

const (
	// SeverityError findings mark the document invalid.
	SeverityError Severity = "error"
	// SeveritySuggestion findings are advisory and never block validity.
	SeveritySuggestion Severity = "suggestion"
)

// Finding is the outcome of one rule condition.
type Finding struct {
	Rule        string   `json:"rule"`
	Passed      bool     `json:"passed"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	Remediation string   `json:"remediation,omitempty"`
}

// Report is the result of checking a document.
type Report struct {
	// Valid is true when no error-severity finding failed. Failing
	// suggestions never mark the document invalid.
	Valid    bool      `json:"valid"`
	Findings []Finding `json:"findings"`
}

// Failed returns the failing findings with the given severity.
func (r *Report) Failed(sev Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if !f.Passed && f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

// issue is one failed condition produced by a rule check.
type issue struct {
	message     string
	remediation string
}

// rule is one independent catalog entry. A check returns no issues when the
// rule passes and one issue per violated condition otherwise.
type rule struct {
	name     string
	severity Severity
	passMsg  string
	check    func(c *course.Course) []issue
}

// catalog lists every pure rule, in reporting order.
var catalog = []rule{
	{"duration_sum", SeverityError, "every module's sections sum to its declared duration (±2 min)", checkDurationSum},
	{"total_duration", SeverityError, "module durations sum to the course duration (±5 min)", checkTotalDuration},
	{"practice_completeness", SeverityError, "every exercise has starter and solution content", checkPracticeCompleteness},
	{"min_item_duration", SeverityError, "every section is at least 5 minutes", checkMinSectionDuration},
	{"checkpoint_spacing", SeveritySuggestion, "no more than 25 minutes between quizzes", checkQuizSpacing},
	{"practice_ratio", SeveritySuggestion, "at least 60% of course time is practice or reflection", checkPracticeRatio},
	{"exposition_ratio", SeveritySuggestion, "at most 25% of course time is lecture", checkLectureRatio},
	{"checkpoint_ratio", SeveritySuggestion, "at least 15% of course time is quizzes", checkQuizRatio},
	{"max_exposition_duration", SeveritySuggestion, "no lecture runs longer than 15 minutes", checkMaxLectureDuration},
	{"outcome_alignment", SeveritySuggestion, "learning outcomes match the audience tier", checkOutcomeAlignment},
}

// Check runs the pure rule catalog against the course.
func Check(c *course.Course) *Report {
	rep := &Report{Valid: true}
	for _, r := range catalog {
		rep.apply(r, r.check(c))
	}
	return rep
}

// CheckWithSources runs the pure catalog plus the reference_sources rule,
// which opens each declared reference source to confirm it is readable.
func CheckWithSources(ctx context.Context, c *course.Course) *Report {
	rep := Check(c)
	rep.apply(rule{
		name:     "reference_sources",
		severity: SeverityError,
		passMsg:  "all declared reference sources are readable",
	}, checkReferenceSources(ctx, c))
	return rep
}

func (r *Report) apply(ru rule, issues []issue) {
	if len(issues) == 0 {
		r.Findings = append(r.Findings, Finding{
			Rule:     ru.name,
			Passed:   true,
			Severity: ru.severity,
			Message:  ru.passMsg,
		})
		return
	}
	for _, iss := range issues {
		r.Findings = append(r.Findings, Finding{
			Rule:        ru.name,
			Passed:      false,
			Severity:    ru.severity,
			Message:     iss.message,
			Remediation: iss.remediation,
		})
	}
	if ru.severity == SeverityError {
		r.Valid = false
	}
}

func checkReferenceSources(ctx context.Context, c *course.Course) []issue {
	var issues []issue
	for _, ref := range c.References {
		if err := ctx.Err(); err != nil {
			issues = append(issues, issue{
				message: fmt.Sprintf("reference check aborted: %v", err),
			})
			return issues
		}
		f, err := os.Open(ref)
		if err != nil {
			issues = append(issues, issue{
				message:     fmt.Sprintf("reference source %q is not readable: %v", ref, err),
				remediation: fmt.Sprintf("fix or remove the declared reference %q", ref),
			})
			continue
		}
		f.Close()
	}
	return issues
}
