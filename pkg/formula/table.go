package formula

import "fmt"

// TableEntry assigns a formula string to either an exact phrase length or an
// inclusive length range. Exact entries set Length; range entries set Min and
// Max. Entries are applied in declaration order, later entries overwriting
// earlier ones at the same length.
type TableEntry struct {
	Length  int
	Min     int
	Max     int
	Formula string
}

// Table maps a phrase character count to its compiled formula. Built once,
// immutable afterwards; identical formula strings share one compiled Formula.
type Table struct {
	rules map[int]Formula
}

// BuildTable expands the entry list into a length-to-formula table. Any
// formula that fails to compile fails the whole build: a broken table is a
// startup error, never a per-lookup one.
func BuildTable(entries []TableEntry) (*Table, error) {
	sources := make(map[int]string)
	for _, e := range entries {
		switch {
		case e.Length > 0:
			sources[e.Length] = e.Formula
		case e.Min > 0 && e.Max >= e.Min:
			for n := e.Min; n <= e.Max; n++ {
				sources[n] = e.Formula
			}
		default:
			return nil, fmt.Errorf("rule entry %+v: need length or min..max", e)
		}
	}

	compiled := make(map[string]Formula)
	rules := make(map[int]Formula, len(sources))
	for n, src := range sources {
		f, ok := compiled[src]
		if !ok {
			var err error
			f, err = Compile(src)
			if err != nil {
				return nil, fmt.Errorf("building rule table: %w", err)
			}
			compiled[src] = f
		}
		rules[n] = f
	}
	return &Table{rules: rules}, nil
}

// Lookup returns the formula configured for a phrase of n characters.
func (t *Table) Lookup(n int) (Formula, bool) {
	f, ok := t.rules[n]
	return f, ok
}

// MaxLength returns the largest configured phrase length, 0 for an empty table.
func (t *Table) MaxLength() int {
	maxLen := 0
	for n := range t.rules {
		if n > maxLen {
			maxLen = n
		}
	}
	return maxLen
}

// Len returns how many phrase lengths have a rule.
func (t *Table) Len() int {
	return len(t.rules)
}
