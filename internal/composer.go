package internal

import (
	"log/slog"
	"sort"

	"github.com/Hanaasagi/tricomment/pkg/formula"
	"github.com/Hanaasagi/tricomment/pkg/record"
)

// Placeholder marks a component a formula asked for that the character's
// record does not have. A phrase keeps its annotation with the gap visible
// instead of losing it entirely.
const Placeholder = "□"

// maxCodeVariants bounds the alternate expansion when composing phrase
// codes, so a record with many alternates cannot blow up a candidate.
const maxCodeVariants = 8

// Composer synthesizes phrase-level spellings and codes by applying the rule
// table's formula for the phrase length across the per-character records of
// the reverse-lookup store. Compositions are deterministic and read-only.
type Composer struct {
	table *formula.Table
	store *Store
}

// NewComposer wires a composer to its rule table and record store.
func NewComposer(table *formula.Table, store *Store) *Composer {
	return &Composer{table: table, store: store}
}

// Compose builds the phrase-level string for the requested mode. ok is false
// when no formula covers the phrase length, when any referenced character has
// no stored record, or when a formula instruction points outside the phrase.
// A partial annotation is worse than none, so any missing record aborts the
// whole composition.
func (c *Composer) Compose(phrase string, mode record.Mode) (string, bool) {
	chars := []rune(phrase)
	if len(chars) < 2 {
		return "", false
	}
	f, ok := c.table.Lookup(len(chars))
	if !ok {
		return "", false
	}

	result := make([]byte, 0, len(f)*3)
	for _, ins := range f {
		rec, ok := c.resolveRecord(chars, ins)
		if !ok {
			return "", false
		}
		result = append(result, componentAt(rec.Components(mode), ins.Component)...)
	}
	return string(result), true
}

// ComposeCodes builds every phrase code the formula can produce from the
// referenced characters' code alternates, deduplicated and sorted shortest
// first. ok is false under the same conditions as Compose, and additionally
// when a referenced character has no code field at all.
func (c *Composer) ComposeCodes(phrase string) ([]string, bool) {
	chars := []rune(phrase)
	if len(chars) < 2 {
		return nil, false
	}
	f, ok := c.table.Lookup(len(chars))
	if !ok {
		return nil, false
	}

	variants := []string{""}
	for _, ins := range f {
		rec, ok := c.resolveRecord(chars, ins)
		if !ok {
			return nil, false
		}
		alts := rec.CodeAlternates()
		if len(alts) == 0 {
			return nil, false
		}

		next := make([]string, 0, len(variants))
		seen := make(map[string]bool)
		for _, prefix := range variants {
			for _, alt := range alts {
				v := prefix + componentAt(alt, ins.Component)
				if !seen[v] {
					seen[v] = true
					next = append(next, v)
				}
				if len(next) >= maxCodeVariants {
					break
				}
			}
			if len(next) >= maxCodeVariants {
				break
			}
		}
		variants = next
	}

	sort.Slice(variants, func(i, j int) bool {
		if len(variants[i]) != len(variants[j]) {
			return len(variants[i]) < len(variants[j])
		}
		return variants[i] < variants[j]
	})
	return variants, true
}

// resolveRecord maps an instruction's character index onto the phrase and
// fetches that character's parsed record.
func (c *Composer) resolveRecord(chars []rune, ins formula.Instruction) (record.Record, bool) {
	pos, ok := formula.Resolve(ins.Char, len(chars))
	if !ok {
		slog.Debug("formula char index out of range", "index", ins.Char, "length", len(chars))
		return record.Record{}, false
	}
	return c.store.ParsedLookup(string(chars[pos]))
}

// componentAt picks the component at a signed 1-based index, substituting the
// placeholder glyph when the index falls outside the list.
func componentAt(components []string, idx int) string {
	pos, ok := formula.Resolve(idx, len(components))
	if !ok {
		return Placeholder
	}
	return components[pos]
}
