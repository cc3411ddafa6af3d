package course

import (
	"encoding/json"
	"testing"
)

// sectionJSON serializes a single section for byte-level comparison.
func sectionJSON(t *testing.T, s Section) string {
	t.Helper()
	data, err := json.Marshal(sectionToWire(s))
	if err != nil {
		t.Fatalf("marshal section: %v", err)
	}
	return string(data)
}

func TestSplice_Isolation(t *testing.T) {
	dst := twoModuleCourse()
	frag := twoModuleCourse()
	frag.Modules[0].Sections[1] = NewExercise("Rewritten exercise", 30, "New task.", "starter", "solution", nil)
	frag.Modules[1].Sections[0] = NewReflection("Rewritten reflection", 20, []string{"new prompt"})

	before := make(map[int]string)
	l := NewLocator(dst)
	for flat := 1; flat <= l.Count(); flat++ {
		m, s, _ := l.Position(flat)
		before[flat] = sectionJSON(t, dst.Modules[m].Sections[s])
	}
	metaBefore, _ := json.Marshal(struct {
		Title string
		Aud   Audience
		Min   int
		Pre   []string
		Refs  []string
	}{dst.Title, dst.Audience, dst.Minutes, dst.Prerequisites, dst.References})

	report := Splice(dst, SectionIndices(2, 4), frag, nil)

	if report.Requested != 2 || report.Updated != 2 {
		t.Fatalf("report = %+v, want Requested=2 Updated=2", report)
	}
	if report.Mismatch() {
		t.Error("full splice should not report a mismatch")
	}

	l = NewLocator(dst)
	for flat := 1; flat <= l.Count(); flat++ {
		m, s, _ := l.Position(flat)
		after := sectionJSON(t, dst.Modules[m].Sections[s])
		switch flat {
		case 2, 4:
			if after == before[flat] {
				t.Errorf("section %d should have been replaced", flat)
			}
		default:
			if after != before[flat] {
				t.Errorf("section %d changed: before %s, after %s", flat, before[flat], after)
			}
		}
	}

	metaAfter, _ := json.Marshal(struct {
		Title string
		Aud   Audience
		Min   int
		Pre   []string
		Refs  []string
	}{dst.Title, dst.Audience, dst.Minutes, dst.Prerequisites, dst.References})
	if string(metaAfter) != string(metaBefore) {
		t.Errorf("root metadata changed: before %s, after %s", metaBefore, metaAfter)
	}
}

func TestSplice_All(t *testing.T) {
	dst := twoModuleCourse()
	frag := twoModuleCourse()
	for i := range frag.Modules[0].Sections {
		frag.Modules[0].Sections[i] = NewLecture("replaced", 10, nil)
	}
	for i := range frag.Modules[1].Sections {
		frag.Modules[1].Sections[i] = NewLecture("replaced", 10, nil)
	}

	report := Splice(dst, AllSections(), frag, nil)
	if report.Requested != 5 || report.Updated != 5 {
		t.Fatalf("report = %+v, want Requested=5 Updated=5", report)
	}
	for _, m := range dst.Modules {
		for _, s := range m.Sections {
			if s.Title() != "replaced" {
				t.Fatalf("section %q not replaced", s.Title())
			}
		}
	}
}

func TestSplice_PartialMatch(t *testing.T) {
	dst := twoModuleCourse()

	// The generator reshaped the fragment down to 3 sections; targets 4 and 5
	// no longer resolve there.
	frag := twoModuleCourse()
	frag.Modules = frag.Modules[:1]

	report := Splice(dst, SectionIndices(2, 4, 5), frag, nil)
	if report.Requested != 3 {
		t.Errorf("Requested = %d, want 3", report.Requested)
	}
	if report.Updated != 1 {
		t.Errorf("Updated = %d, want 1", report.Updated)
	}
	if !report.Mismatch() {
		t.Error("partial splice should report a mismatch")
	}
	if len(report.Missing) != 2 || report.Missing[0] != 4 || report.Missing[1] != 5 {
		t.Errorf("Missing = %v, want [4 5]", report.Missing)
	}
}

func TestSplice_DuplicateTargetsCountedOnce(t *testing.T) {
	dst := twoModuleCourse()
	frag := twoModuleCourse()
	report := Splice(dst, SectionIndices(2, 2, 2), frag, nil)
	if report.Requested != 1 || report.Updated != 1 {
		t.Errorf("report = %+v, want Requested=1 Updated=1", report)
	}
}

func TestSplice_ReferenceUnion(t *testing.T) {
	dst := twoModuleCourse()
	dst.References = []string{"notes/intro.md", "notes/http.md"}
	frag := twoModuleCourse()
	frag.References = []string{"should/not/leak.md"}

	Splice(dst, SectionIndices(1), frag, []string{"notes/http.md", "notes/cli.md"})

	want := []string{"notes/intro.md", "notes/http.md", "notes/cli.md"}
	if len(dst.References) != len(want) {
		t.Fatalf("References = %v, want %v", dst.References, want)
	}
	for i := range want {
		if dst.References[i] != want[i] {
			t.Fatalf("References = %v, want %v", dst.References, want)
		}
	}
}

func TestSplice_NoRefsLeavesReferencesUntouched(t *testing.T) {
	dst := twoModuleCourse()
	dst.References = []string{"a.md", "a.md"}
	Splice(dst, SectionIndices(1), twoModuleCourse(), nil)
	if len(dst.References) != 2 {
		t.Errorf("References = %v, want untouched", dst.References)
	}
}
