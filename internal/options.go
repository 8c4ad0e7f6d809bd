package internal

// NoSelection is returned by option-group operations when the group is empty
// or nothing is active.
const NoSelection = 0

// OptionGroup is an ordered list of named boolean flags of which at most one
// is active at a time. Flag indices are 1-based. The group remembers the last
// index a cycle landed on away from index 1 ("off"), so switching off and
// back restores the previous verbosity instead of the default.
//
// The group is only ever touched from the single-threaded event and filter
// callbacks; it carries no locking.
type OptionGroup struct {
	names      []string
	active     []bool
	defaultIdx int
	saved      int
}

// NewOptionGroup creates a group over the given flag names. defaultIdx is the
// 1-based flag activated by EnsureInitialized when nothing was remembered;
// out-of-range values mean "no default".
func NewOptionGroup(names []string, defaultIdx int) *OptionGroup {
	if defaultIdx < 0 || defaultIdx > len(names) {
		defaultIdx = 0
	}
	return &OptionGroup{
		names:      names,
		active:     make([]bool, len(names)),
		defaultIdx: defaultIdx,
	}
}

// Len returns the number of flags in the group.
func (g *OptionGroup) Len() int {
	return len(g.names)
}

// Active returns the 1-based index of the active flag, NoSelection if none.
func (g *OptionGroup) Active() int {
	for i, on := range g.active {
		if on {
			return i + 1
		}
	}
	return NoSelection
}

// ActiveName returns the name of the active flag, "" if none.
func (g *OptionGroup) ActiveName() string {
	if k := g.Active(); k != NoSelection {
		return g.names[k-1]
	}
	return ""
}

// Names returns the flag names in order.
func (g *OptionGroup) Names() []string {
	return g.names
}

// EnsureInitialized activates saved, else default, else index 1 when no flag
// is active. Idempotent; a no-op on an empty group.
func (g *OptionGroup) EnsureInitialized() int {
	if len(g.names) == 0 {
		return NoSelection
	}
	if k := g.Active(); k != NoSelection {
		return k
	}
	return g.set(g.fallback())
}

// Toggle flips the flag of a single-flag group. Groups with more than one
// flag use Cycle or Switch instead; Toggle is a no-op for them.
func (g *OptionGroup) Toggle() int {
	if len(g.names) != 1 {
		return g.Active()
	}
	g.active[0] = !g.active[0]
	return g.Active()
}

// Cycle deactivates the active flag and activates its neighbor, wrapping
// around the group. With no active flag it activates saved, else default,
// else index 1. Returns the newly active index; landing anywhere but index 1
// updates the remembered index.
func (g *OptionGroup) Cycle(forward bool) int {
	if len(g.names) == 0 {
		return NoSelection
	}

	k := g.Active()
	var next int
	if k == NoSelection {
		next = g.fallback()
	} else {
		if forward {
			next = k + 1
		} else {
			next = k - 1
		}
		next = ((next-1)%len(g.names)+len(g.names))%len(g.names) + 1
	}
	return g.set(next)
}

// Switch jumps between index 1 ("off") and the remembered index: off goes
// back to the last meaningful state, anything else goes off.
func (g *OptionGroup) Switch() int {
	if len(g.names) == 0 {
		return NoSelection
	}
	if g.Active() == 1 {
		return g.set(g.fallback())
	}
	return g.set(1)
}

// Activate forces a specific flag on, with the same remembrance side effect
// as a cycle landing there. Out-of-range indices are ignored.
func (g *OptionGroup) Activate(idx int) int {
	if idx < 1 || idx > len(g.names) {
		return g.Active()
	}
	return g.set(idx)
}

func (g *OptionGroup) fallback() int {
	if g.saved != 0 {
		return g.saved
	}
	if g.defaultIdx != 0 {
		return g.defaultIdx
	}
	return 1
}

func (g *OptionGroup) set(idx int) int {
	for i := range g.active {
		g.active[i] = false
	}
	g.active[idx-1] = true
	if idx != 1 {
		g.saved = idx
	}
	return idx
}
