package course

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestModule_JSONRoundTrip(t *testing.T) {
	c := twoModuleCourse()
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var back Course
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if len(back.Modules) != 2 {
		t.Fatalf("modules = %d, want 2", len(back.Modules))
	}
	ex, ok := back.Modules[0].Sections[1].(*Exercise)
	if !ok {
		t.Fatalf("section 2 decoded as %T, want *Exercise", back.Modules[0].Sections[1])
	}
	if ex.Solution == "" {
		t.Error("exercise solution lost in round trip")
	}
	if _, ok := back.Modules[1].Sections[0].(*Reflection); !ok {
		t.Errorf("section 4 decoded as %T, want *Reflection", back.Modules[1].Sections[0])
	}

	again, err := json.Marshal(&back)
	if err != nil {
		t.Fatalf("re-Marshal() error: %v", err)
	}
	if string(again) != string(data) {
		t.Error("marshal is not stable across a round trip")
	}
}

func TestModule_UnmarshalUnknownSectionType(t *testing.T) {
	raw := `{"title": "M", "minutes": 10, "sections": [
		{"type": "karaoke", "title": "S", "minutes": 10}
	]}`
	var m Module
	err := json.Unmarshal([]byte(raw), &m)
	if err == nil {
		t.Fatal("Unmarshal should reject unknown section type")
	}
	if !strings.Contains(err.Error(), "karaoke") {
		t.Errorf("error should name the bad type, got: %v", err)
	}
}

func TestModule_UnmarshalQuizLengthMismatch(t *testing.T) {
	raw := `{"title": "M", "minutes": 10, "sections": [
		{"type": "quiz", "title": "Q", "minutes": 10,
		 "questions": ["a", "b"], "answers": ["x"], "explanations": ["y", "z"]}
	]}`
	var m Module
	if err := json.Unmarshal([]byte(raw), &m); err == nil {
		t.Fatal("Unmarshal should reject quiz with mismatched parallel lists")
	}
}

func TestKind_AllVariants(t *testing.T) {
	cases := []struct {
		s    Section
		want string
	}{
		{NewLecture("l", 5, nil), "lecture"},
		{NewExercise("e", 5, "", "", "", nil), "exercise"},
		{NewReflection("r", 5, nil), "reflection"},
		{NewQuiz("q", 5, nil, nil, nil), "quiz"},
	}
	for _, c := range cases {
		if got := Kind(c.s); got != c.want {
			t.Errorf("Kind(%T) = %q, want %q", c.s, got, c.want)
		}
	}
}

func TestBloomTag_Rank(t *testing.T) {
	if TagRemember.Rank() != 0 {
		t.Errorf("remember rank = %d, want 0", TagRemember.Rank())
	}
	if TagCreate.Rank() != 5 {
		t.Errorf("create rank = %d, want 5", TagCreate.Rank())
	}
	if TagUnderstand.Rank() >= TagApply.Rank() {
		t.Error("understand should rank below apply")
	}
	if BloomTag("memorize").Rank() != -1 {
		t.Error("unknown tag should rank -1")
	}
}
