package review

import (
	"fmt"
	"math"
	"strings"

	"github.com/studyforge/studyforge/pkg/course"
)

// Exact tolerances and thresholds of the rule catalog.
const (
	moduleDurationTolerance = 2    // minutes, duration_sum
	courseDurationTolerance = 5    // minutes, total_duration
	minSectionMinutes       = 5    // min_item_duration
	maxQuizGapMinutes       = 25   // checkpoint_spacing
	minPracticeRatio        = 0.60 // practice_ratio
	maxLectureRatio         = 0.25 // exposition_ratio
	minQuizRatio            = 0.15 // checkpoint_ratio
	maxLectureMinutes       = 15   // max_exposition_duration
)

func checkDurationSum(c *course.Course) []issue {
	var issues []issue
	for _, m := range c.Modules {
		sum := 0
		for _, s := range m.Sections {
			sum += s.Minutes()
		}
		diff := sum - m.Minutes
		if diff > moduleDurationTolerance || diff < -moduleDurationTolerance {
			issues = append(issues, issue{
				message: fmt.Sprintf("module %q: sections sum to %d minutes but the module declares %d",
					m.Title, sum, m.Minutes),
				remediation: minuteDelta(diff, fmt.Sprintf("of section time in module %q", m.Title)),
			})
		}
	}
	return issues
}

func checkTotalDuration(c *course.Course) []issue {
	sum := 0
	for _, m := range c.Modules {
		sum += m.Minutes
	}
	diff := sum - c.Minutes
	if diff > courseDurationTolerance || diff < -courseDurationTolerance {
		return []issue{{
			message: fmt.Sprintf("modules sum to %d minutes but the course declares %d",
				sum, c.Minutes),
			remediation: minuteDelta(diff, "of module time"),
		}}
	}
	return nil
}

// minuteDelta phrases a remediation naming the exact minute delta. diff is
// actual minus declared.
func minuteDelta(diff int, what string) string {
	if diff > 0 {
		return fmt.Sprintf("remove %d minutes %s, or raise the declared duration", diff, what)
	}
	return fmt.Sprintf("add %d minutes %s, or lower the declared duration", -diff, what)
}

func checkPracticeCompleteness(c *course.Course) []issue {
	var issues []issue
	exercises := 0
	for _, m := range c.Modules {
		for _, s := range m.Sections {
			ex, ok := s.(*course.Exercise)
			if !ok {
				continue
			}
			exercises++
			if strings.TrimSpace(ex.Starter) == "" {
				issues = append(issues, issue{
					message:     fmt.Sprintf("exercise %q has no starter content", ex.Title()),
					remediation: fmt.Sprintf("add starter content to %q so learners have a concrete beginning", ex.Title()),
				})
			}
			if strings.TrimSpace(ex.Solution) == "" {
				issues = append(issues, issue{
					message:     fmt.Sprintf("exercise %q has no solution content", ex.Title()),
					remediation: fmt.Sprintf("add a worked solution to %q", ex.Title()),
				})
			}
		}
	}
	if exercises == 0 {
		issues = append(issues, issue{
			message:     "the course has no exercise sections",
			remediation: "add at least one hands-on exercise",
		})
	}
	return issues
}

func checkMinSectionDuration(c *course.Course) []issue {
	var issues []issue
	for _, m := range c.Modules {
		for _, s := range m.Sections {
			if s.Minutes() < minSectionMinutes {
				issues = append(issues, issue{
					message: fmt.Sprintf("section %q is %d minutes; the minimum is %d",
						s.Title(), s.Minutes(), minSectionMinutes),
					remediation: fmt.Sprintf("extend %q by %d minutes or fold it into a neighbor",
						s.Title(), minSectionMinutes-s.Minutes()),
				})
			}
		}
	}
	return issues
}

func checkQuizSpacing(c *course.Course) []issue {
	var issues []issue
	for _, m := range c.Modules {
		gap := 0
		maxGap := 0
		for _, s := range m.Sections {
			if _, ok := s.(*course.Quiz); ok {
				gap = 0
				continue
			}
			gap += s.Minutes()
			if gap > maxGap {
				maxGap = gap
			}
		}
		if maxGap > maxQuizGapMinutes {
			issues = append(issues, issue{
				message: fmt.Sprintf("module %q runs %d minutes without a quiz; the target is %d",
					m.Title, maxGap, maxQuizGapMinutes),
				remediation: fmt.Sprintf("insert a quiz into module %q after at most %d minutes of other material",
					m.Title, maxQuizGapMinutes),
			})
		}
	}
	return issues
}

// kindMinutes sums section durations per wire kind across the whole course.
func kindMinutes(c *course.Course) map[string]int {
	totals := make(map[string]int, 4)
	for _, m := range c.Modules {
		for _, s := range m.Sections {
			totals[course.Kind(s)] += s.Minutes()
		}
	}
	return totals
}

func checkPracticeRatio(c *course.Course) []issue {
	if c.Minutes <= 0 {
		return nil
	}
	totals := kindMinutes(c)
	got := totals["exercise"] + totals["reflection"]
	ratio := float64(got) / float64(c.Minutes)
	if ratio >= minPracticeRatio {
		return nil
	}
	need := int(math.Ceil(minPracticeRatio*float64(c.Minutes))) - got
	return []issue{{
		message: fmt.Sprintf("practice and reflection cover %.1f%% of the course; the target is at least %.0f%%",
			ratio*100, minPracticeRatio*100),
		remediation: fmt.Sprintf("add %d minutes of exercise or reflection time", need),
	}}
}

func checkLectureRatio(c *course.Course) []issue {
	if c.Minutes <= 0 {
		return nil
	}
	got := kindMinutes(c)["lecture"]
	ratio := float64(got) / float64(c.Minutes)
	if ratio <= maxLectureRatio {
		return nil
	}
	excess := got - int(math.Floor(maxLectureRatio*float64(c.Minutes)))
	return []issue{{
		message: fmt.Sprintf("lecture covers %.1f%% of the course; the target is at most %.0f%%",
			ratio*100, maxLectureRatio*100),
		remediation: fmt.Sprintf("cut %d minutes of lecture time or convert it to practice", excess),
	}}
}

func checkQuizRatio(c *course.Course) []issue {
	if c.Minutes <= 0 {
		return nil
	}
	got := kindMinutes(c)["quiz"]
	ratio := float64(got) / float64(c.Minutes)
	if ratio >= minQuizRatio {
		return nil
	}
	need := int(math.Ceil(minQuizRatio*float64(c.Minutes))) - got
	return []issue{{
		message: fmt.Sprintf("quizzes cover %.1f%% of the course; the target is at least %.0f%%",
			ratio*100, minQuizRatio*100),
		remediation: fmt.Sprintf("add %d minutes of quiz time", need),
	}}
}

func checkMaxLectureDuration(c *course.Course) []issue {
	var issues []issue
	for _, m := range c.Modules {
		for _, s := range m.Sections {
			lec, ok := s.(*course.Lecture)
			if !ok {
				continue
			}
			if lec.Minutes() > maxLectureMinutes {
				issues = append(issues, issue{
					message: fmt.Sprintf("lecture %q runs %d minutes; the target is at most %d",
						lec.Title(), lec.Minutes(), maxLectureMinutes),
					remediation: fmt.Sprintf("split %q or trim it by %d minutes",
						lec.Title(), lec.Minutes()-maxLectureMinutes),
				})
			}
		}
	}
	return issues
}

func checkOutcomeAlignment(c *course.Course) []issue {
	allowed, ok := tierTags[c.Audience.Level]
	if !ok {
		return []issue{{
			message:     fmt.Sprintf("unknown audience level %q", c.Audience.Level),
			remediation: "set the audience level to beginner, intermediate or advanced",
		}}
	}

	var issues []issue
	for _, m := range c.Modules {
		for _, o := range m.Outcomes {
			if !allowed[o.Tag] {
				issues = append(issues, issue{
					message: fmt.Sprintf("module %q outcome %q is tagged %q, which is outside the %s tier",
						m.Title, o.Text, o.Tag, c.Audience.Level),
					remediation: fmt.Sprintf("retag the outcome with one of %s or rewrite it for the tier",
						tierTagList(c.Audience.Level)),
				})
			}
			if verb := leadingWord(o.Text); !tagVerbs[o.Tag][verb] {
				issues = append(issues, issue{
					message: fmt.Sprintf("module %q outcome %q does not start with a %q-level verb",
						m.Title, o.Text, o.Tag),
					remediation: fmt.Sprintf("start the outcome with one of: %s",
						strings.Join(verbList(o.Tag), ", ")),
				})
			}
		}
	}
	return issues
}

// leadingWord lowercases the first whitespace-delimited word of s, with
// trailing punctuation stripped.
func leadingWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.TrimRight(fields[0], ".,:;!?"))
}
