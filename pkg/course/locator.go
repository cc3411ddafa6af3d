package course

// Locator maps between 1-based flat section indices and zero-based
// (module, section) positions by depth-first counting: modules in order,
// sections within each module in order, contiguous across module boundaries.
//
// The table is a snapshot of the course shape at construction time. Any
// mutation that changes section counts invalidates it; build a fresh one
// rather than patching.
type Locator struct {
	sizes []int
	total int
}

// NewLocator builds the index table for the course's current shape.
func NewLocator(c *Course) *Locator {
	l := &Locator{sizes: make([]int, len(c.Modules))}
	for i, m := range c.Modules {
		l.sizes[i] = len(m.Sections)
		l.total += len(m.Sections)
	}
	return l
}

// Count returns the number of sections across all modules.
func (l *Locator) Count() int {
	return l.total
}

// Position resolves a flat index to its (module, section) position.
// ok is false when flat is out of range.
func (l *Locator) Position(flat int) (module, section int, ok bool) {
	if flat < 1 || flat > l.total {
		return 0, 0, false
	}
	rest := flat - 1
	for i, n := range l.sizes {
		if rest < n {
			return i, rest, true
		}
		rest -= n
	}
	return 0, 0, false
}

// Flat resolves a (module, section) position to its 1-based flat index.
// ok is false when the position does not exist in the snapshot.
func (l *Locator) Flat(module, section int) (int, bool) {
	if module < 0 || module >= len(l.sizes) || section < 0 || section >= l.sizes[module] {
		return 0, false
	}
	flat := 1 + section
	for _, n := range l.sizes[:module] {
		flat += n
	}
	return flat, true
}
