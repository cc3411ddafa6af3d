package course

import (
	"encoding/json"
	"fmt"
)

// Wire discriminators for the section variants.
const (
	kindLecture    = "lecture"
	kindExercise   = "exercise"
	kindReflection = "reflection"
	kindQuiz       = "quiz"
)

// Kind returns the wire discriminator for a section.
func Kind(s Section) string {
	switch s.(type) {
	case *Lecture:
		return kindLecture
	case *Exercise:
		return kindExercise
	case *Reflection:
		return kindReflection
	case *Quiz:
		return kindQuiz
	}
	panic(fmt.Sprintf("course: unknown section type %T", s))
}

// sectionWire is the flattened JSON form of every section variant, selected
// by the "type" field.
type sectionWire struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Minutes int    `json:"minutes"`

	Points []string `json:"points,omitempty"`

	Instructions string   `json:"instructions,omitempty"`
	Starter      string   `json:"starter,omitempty"`
	Solution     string   `json:"solution,omitempty"`
	Hints        []string `json:"hints,omitempty"`

	Prompts []string `json:"prompts,omitempty"`

	Questions    []string `json:"questions,omitempty"`
	Answers      []string `json:"answers,omitempty"`
	Explanations []string `json:"explanations,omitempty"`
}

func sectionToWire(s Section) sectionWire {
	w := sectionWire{
		Type:    Kind(s),
		Title:   s.Title(),
		Minutes: s.Minutes(),
	}
	switch v := s.(type) {
	case *Lecture:
		w.Points = v.Points
	case *Exercise:
		w.Instructions = v.Instructions
		w.Starter = v.Starter
		w.Solution = v.Solution
		w.Hints = v.Hints
	case *Reflection:
		w.Prompts = v.Prompts
	case *Quiz:
		w.Questions = v.Questions
		w.Answers = v.Answers
		w.Explanations = v.Explanations
	}
	return w
}

func sectionFromWire(w sectionWire) (Section, error) {
	base := sectionBase{SectionTitle: w.Title, SectionMin: w.Minutes}
	switch w.Type {
	case kindLecture:
		return &Lecture{sectionBase: base, Points: w.Points}, nil
	case kindExercise:
		return &Exercise{
			sectionBase:  base,
			Instructions: w.Instructions,
			Starter:      w.Starter,
			Solution:     w.Solution,
			Hints:        w.Hints,
		}, nil
	case kindReflection:
		return &Reflection{sectionBase: base, Prompts: w.Prompts}, nil
	case kindQuiz:
		if len(w.Answers) != len(w.Questions) || len(w.Explanations) != len(w.Questions) {
			return nil, fmt.Errorf("quiz %q: questions/answers/explanations lengths differ (%d/%d/%d)",
				w.Title, len(w.Questions), len(w.Answers), len(w.Explanations))
		}
		return &Quiz{
			sectionBase:  base,
			Questions:    w.Questions,
			Answers:      w.Answers,
			Explanations: w.Explanations,
		}, nil
	default:
		return nil, fmt.Errorf("unknown section type %q", w.Type)
	}
}

// moduleWire mirrors Module with sections in wire form.
type moduleWire struct {
	Title    string        `json:"title"`
	Minutes  int           `json:"minutes"`
	Outcomes []Outcome     `json:"outcomes,omitempty"`
	Sections []sectionWire `json:"sections"`
}

func (m Module) wire() moduleWire {
	w := moduleWire{
		Title:    m.Title,
		Minutes:  m.Minutes,
		Outcomes: m.Outcomes,
		Sections: make([]sectionWire, len(m.Sections)),
	}
	for i, s := range m.Sections {
		w.Sections[i] = sectionToWire(s)
	}
	return w
}

func (m *Module) fromWire(w moduleWire) error {
	sections := make([]Section, len(w.Sections))
	for i, sw := range w.Sections {
		s, err := sectionFromWire(sw)
		if err != nil {
			return fmt.Errorf("module %q, section %d: %w", w.Title, i+1, err)
		}
		sections[i] = s
	}
	m.Title = w.Title
	m.Minutes = w.Minutes
	m.Outcomes = w.Outcomes
	m.Sections = sections
	return nil
}

// MarshalJSON encodes the module with each section flattened to its tagged
// wire form.
func (m Module) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.wire())
}

// MarshalYAML renders the module in the same tagged wire form as JSON.
func (m Module) MarshalYAML() (any, error) {
	return m.wire(), nil
}

// UnmarshalJSON decodes the tagged wire form back into section variants.
// Unknown section types and mismatched quiz lists are rejected.
func (m *Module) UnmarshalJSON(data []byte) error {
	var w moduleWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	return m.fromWire(w)
}
