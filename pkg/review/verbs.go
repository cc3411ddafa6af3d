package review

import (
	"sort"
	"strings"

	"github.com/studyforge/studyforge/pkg/course"
)

// tierTags maps each audience tier to its allowed outcome tags.
var tierTags = map[course.Level]map[course.BloomTag]bool{
	course.LevelBeginner: {
		course.TagRemember:   true,
		course.TagUnderstand: true,
		course.TagApply:      true,
	},
	course.LevelIntermediate: {
		course.TagUnderstand: true,
		course.TagApply:      true,
		course.TagAnalyze:    true,
	},
	course.LevelAdvanced: {
		course.TagAnalyze:  true,
		course.TagEvaluate: true,
		course.TagCreate:   true,
	},
}

// tagVerbs is the canonical leading-verb list for each Bloom tag.
var tagVerbs = map[course.BloomTag]map[string]bool{
	course.TagRemember:   verbSet("define", "list", "recall", "identify", "name", "state", "recognize"),
	course.TagUnderstand: verbSet("explain", "describe", "summarize", "classify", "discuss", "interpret"),
	course.TagApply:      verbSet("apply", "use", "implement", "demonstrate", "solve", "execute"),
	course.TagAnalyze:    verbSet("analyze", "compare", "contrast", "differentiate", "examine", "debug"),
	course.TagEvaluate:   verbSet("evaluate", "assess", "justify", "critique", "judge", "defend"),
	course.TagCreate:     verbSet("create", "design", "build", "develop", "compose", "construct"),
}

func verbSet(verbs ...string) map[string]bool {
	m := make(map[string]bool, len(verbs))
	for _, v := range verbs {
		m[v] = true
	}
	return m
}

// verbList returns the canonical verbs for a tag, sorted for stable messages.
func verbList(tag course.BloomTag) []string {
	verbs := make([]string, 0, len(tagVerbs[tag]))
	for v := range tagVerbs[tag] {
		verbs = append(verbs, v)
	}
	sort.Strings(verbs)
	return verbs
}

// tierTagList renders the allowed tags for a tier, sorted by Bloom rank.
func tierTagList(level course.Level) string {
	tags := make([]course.BloomTag, 0, len(tierTags[level]))
	for t := range tierTags[level] {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Rank() < tags[j].Rank() })
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, "/")
}
