// Package course defines the course document model: a course, its ordered
// modules, and the typed sections inside them, together with flat indexing,
// the JSON wire form and its schema boundary, and in-place section splicing.
//
// A Course is created whole from a decoded generator response. It is never
// edited field by field; the only supported mutation is whole-section
// replacement via Splice.
package course

import "slices"

// Level is the cognitive tier of the target audience.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// BloomTag is a cognitive-level tag on a learning outcome, from the ordered
// Bloom taxonomy: remember < understand < apply < analyze < evaluate < create.
type BloomTag string

const (
	TagRemember   BloomTag = "remember"
	TagUnderstand BloomTag = "understand"
	TagApply      BloomTag = "apply"
	TagAnalyze    BloomTag = "analyze"
	TagEvaluate   BloomTag = "evaluate"
	TagCreate     BloomTag = "create"
)

// bloomOrder lists the tags in ascending cognitive order.
var bloomOrder = []BloomTag{
	TagRemember, TagUnderstand, TagApply, TagAnalyze, TagEvaluate, TagCreate,
}

// Rank returns the tag's position in the Bloom ordering, or -1 for an
// unknown tag.
func (t BloomTag) Rank() int {
	return slices.Index(bloomOrder, t)
}

// Audience describes who the course is for.
type Audience struct {
	Description string `json:"description"`
	Level       Level  `json:"level"`
}

// Outcome is one tagged learning-outcome statement.
type Outcome struct {
	Text string   `json:"text"`
	Tag  BloomTag `json:"tag"`
}

// Course is the root document.
type Course struct {
	Title         string   `json:"title"`
	Audience      Audience `json:"audience"`
	Minutes       int      `json:"minutes"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	References    []string `json:"references,omitempty"`
	Modules       []Module `json:"modules"`
}

// Module is one ordered group of sections with its own duration budget and
// learning outcomes.
type Module struct {
	Title    string    `json:"title"`
	Minutes  int       `json:"minutes"`
	Outcomes []Outcome `json:"outcomes,omitempty"`
	Sections []Section `json:"sections"`
}

// Section is the closed set of section shapes. Exactly four types implement
// it: Lecture, Exercise, Reflection and Quiz. Handling code type-switches
// over the concrete types; adding a shape breaks every switch at compile
// time, which is the point.
type Section interface {
	isSection()

	// Title is the section heading.
	Title() string
	// Minutes is the planned duration.
	Minutes() int
}

var (
	_ Section = (*Lecture)(nil)
	_ Section = (*Exercise)(nil)
	_ Section = (*Reflection)(nil)
	_ Section = (*Quiz)(nil)
)

type sectionBase struct {
	SectionTitle string
	SectionMin   int
}

func (b sectionBase) Title() string { return b.SectionTitle }
func (b sectionBase) Minutes() int  { return b.SectionMin }

// Lecture is expository teaching: a list of talking points.
type Lecture struct {
	sectionBase
	Points []string
}

func (*Lecture) isSection() {}

// Exercise is hands-on practice with starter and solution content.
type Exercise struct {
	sectionBase
	Instructions string
	Starter      string
	Solution     string
	Hints        []string
}

func (*Exercise) isSection() {}

// Reflection holds open prompts for the learner.
type Reflection struct {
	sectionBase
	Prompts []string
}

func (*Reflection) isSection() {}

// Quiz is a checkpoint with parallel question/answer/explanation lists.
type Quiz struct {
	sectionBase
	Questions    []string
	Answers      []string
	Explanations []string
}

func (*Quiz) isSection() {}

// NewLecture builds a Lecture section.
func NewLecture(title string, minutes int, points []string) *Lecture {
	return &Lecture{sectionBase: sectionBase{title, minutes}, Points: points}
}

// NewExercise builds an Exercise section.
func NewExercise(title string, minutes int, instructions, starter, solution string, hints []string) *Exercise {
	return &Exercise{
		sectionBase:  sectionBase{title, minutes},
		Instructions: instructions,
		Starter:      starter,
		Solution:     solution,
		Hints:        hints,
	}
}

// NewReflection builds a Reflection section.
func NewReflection(title string, minutes int, prompts []string) *Reflection {
	return &Reflection{sectionBase: sectionBase{title, minutes}, Prompts: prompts}
}

// NewQuiz builds a Quiz section.
func NewQuiz(title string, minutes int, questions, answers, explanations []string) *Quiz {
	return &Quiz{
		sectionBase:  sectionBase{title, minutes},
		Questions:    questions,
		Answers:      answers,
		Explanations: explanations,
	}
}
