package course

import "log/slog"

// Targets selects which flat section indices a splice should replace.
type Targets struct {
	// All replaces every section, ignoring Indices.
	All bool
	// Indices are 1-based flat indices into the destination course.
	Indices []int
}

// AllSections targets every section of the destination.
func AllSections() Targets {
	return Targets{All: true}
}

// SectionIndices targets the given 1-based flat indices.
func SectionIndices(idx ...int) Targets {
	return Targets{Indices: idx}
}

// SpliceReport accounts for how much of a splice request resolved.
// Updated < Requested is a soft warning, not a failure: the sections that
// did resolve have been replaced.
type SpliceReport struct {
	// Requested is the number of distinct targeted indices.
	Requested int
	// Updated is the number of sections actually replaced.
	Updated int
	// Missing lists targeted flat indices that resolved in neither the
	// destination nor the fragment.
	Missing []int
}

// Mismatch reports whether fewer sections were updated than requested.
func (r SpliceReport) Mismatch() bool {
	return r.Updated < r.Requested
}

// Splice copies the sections at the targeted flat indices from frag into
// dst, leaving every other section, module and root field untouched. The
// fragment is addressed by the same flat indexing as the destination; a
// target that has no counterpart in the fragment (the generator may have
// reshaped module boundaries) is skipped and reported.
//
// Root metadata is never overwritten, with one deliberate exception: refs
// supplied alongside the regeneration request are unioned into
// dst.References with duplicates removed.
//
// Splice assumes a single writer; callers must not run two splices against
// the same Course concurrently.
func Splice(dst *Course, targets Targets, frag *Course, refs []string) SpliceReport {
	dl := NewLocator(dst)
	fl := NewLocator(frag)

	var want []int
	if targets.All {
		want = make([]int, dl.Count())
		for i := range want {
			want[i] = i + 1
		}
	} else {
		seen := make(map[int]bool, len(targets.Indices))
		for _, flat := range targets.Indices {
			if !seen[flat] {
				seen[flat] = true
				want = append(want, flat)
			}
		}
	}

	report := SpliceReport{Requested: len(want)}
	for _, flat := range want {
		dm, ds, ok := dl.Position(flat)
		if !ok {
			report.Missing = append(report.Missing, flat)
			continue
		}
		fm, fs, ok := fl.Position(flat)
		if !ok {
			report.Missing = append(report.Missing, flat)
			continue
		}
		dst.Modules[dm].Sections[ds] = frag.Modules[fm].Sections[fs]
		report.Updated++
	}

	dst.References = unionRefs(dst.References, refs)

	if report.Mismatch() {
		slog.Warn("course: splice resolved fewer sections than requested",
			"requested", report.Requested,
			"updated", report.Updated,
			"missing", report.Missing)
	}
	return report
}

// unionRefs appends the new refs that are not already present, preserving
// order of first appearance.
func unionRefs(existing, extra []string) []string {
	if len(extra) == 0 {
		return existing
	}
	seen := make(map[string]bool, len(existing)+len(extra))
	out := make([]string, 0, len(existing)+len(extra))
	for _, r := range existing {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	for _, r := range extra {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}
