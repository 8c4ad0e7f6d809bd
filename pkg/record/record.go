// Package record parses the raw annotation record stored for a single
// character and exposes its ordered atomic components.
//
// A raw record looks like "[spelling,code1_code2,pron1_pron2]": a bracketed,
// comma-separated run of a spelling field, an optional code field and
// optional pronunciation fields. Underscores separate same-field alternates.
// Inside the spelling field a braced run such as "{木}" names one
// multi-character unit (a named radical) that must stay a single component.
package record

import "strings"

// Mode selects which decomposition a record yields.
type Mode int

const (
	// Spelling is the structural decomposition of the spelling field.
	Spelling Mode = iota
	// CodeTerse keeps only the primary code alternate, split per codepoint.
	CodeTerse
	// CodeLiteral keeps every code alternate verbatim.
	CodeLiteral
)

// Record is the parsed form of one character's raw annotation record.
type Record struct {
	spelling string
	code     string
	prons    []string
}

// Parse decodes a raw record. ok is false for an empty raw string, the
// "no annotation available" case; callers composing phrases must treat it as
// a hard stop for the whole phrase. Malformed records are parsed best-effort.
func Parse(raw string) (Record, bool) {
	if raw == "" {
		return Record{}, false
	}

	body := strings.TrimPrefix(raw, "[")
	body = strings.TrimSuffix(body, "]")

	fields := splitTopLevel(body)
	var r Record
	if len(fields) > 0 {
		r.spelling = fields[0]
	}
	if len(fields) > 1 {
		r.code = fields[1]
	}
	if len(fields) > 2 {
		for _, f := range fields[2:] {
			for _, p := range strings.Split(f, "_") {
				if p != "" {
					r.prons = append(r.prons, p)
				}
			}
		}
	}
	return r, true
}

// splitTopLevel splits on commas that are not nested inside braces or
// brackets. Stored records are not supposed to nest, but malformed data must
// degrade instead of scrambling fields.
func splitTopLevel(s string) []string {
	var fields []string
	depth := 0
	start := 0
	for i, c := range s {
		switch c {
		case '{', '[':
			depth++
		case '}', ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				fields = append(fields, s[start:i])
				start = i + 1
			}
		}
	}
	fields = append(fields, s[start:])
	return fields
}

// Components returns the ordered atomic components for the given mode.
func (r Record) Components(mode Mode) []string {
	switch mode {
	case Spelling:
		return braceTokens(r.spelling)
	case CodeTerse:
		return runeTokens(primaryAlternate(r.code))
	case CodeLiteral:
		var tokens []string
		for _, alt := range strings.Split(r.code, "_") {
			if alt != "" {
				tokens = append(tokens, alt)
			}
		}
		return tokens
	}
	return nil
}

// CodeAlternates returns each underscore-separated code alternate as its own
// codepoint decomposition, in stored order.
func (r Record) CodeAlternates() [][]string {
	var alts [][]string
	for _, alt := range strings.Split(r.code, "_") {
		if alt == "" {
			continue
		}
		alts = append(alts, runeTokens(alt))
	}
	return alts
}

// Pronunciations returns the pronunciation alternates, if any.
func (r Record) Pronunciations() []string {
	return r.prons
}

// HasCode reports whether the record carries a code field.
func (r Record) HasCode() bool {
	return r.code != ""
}

// primaryAlternate cuts a code field down to its primary sub-field: anything
// past the first comma or underscore is an alternate reading.
func primaryAlternate(code string) string {
	if i := strings.IndexByte(code, ','); i >= 0 {
		code = code[:i]
	}
	if i := strings.IndexByte(code, '_'); i >= 0 {
		code = code[:i]
	}
	return code
}

// braceTokens tokenizes a spelling field: each "{...}" run is one component,
// everything else splits per codepoint. An unterminated brace swallows the
// rest of the field rather than failing.
func braceTokens(s string) []string {
	var tokens []string
	for len(s) > 0 {
		if s[0] == '{' {
			end := strings.IndexByte(s, '}')
			if end < 0 {
				tokens = append(tokens, s)
				break
			}
			tokens = append(tokens, s[:end+1])
			s = s[end+1:]
			continue
		}
		next := strings.IndexByte(s, '{')
		run := s
		if next >= 0 {
			run = s[:next]
			s = s[next:]
		} else {
			s = ""
		}
		tokens = append(tokens, runeTokens(run)...)
	}
	return tokens
}

// runeTokens splits a run into one component per codepoint.
func runeTokens(s string) []string {
	var tokens []string
	for _, r := range s {
		tokens = append(tokens, string(r))
	}
	return tokens
}
