package internal

import "strings"

// Display punctuation for attached annotations. Stored records use ASCII
// structure characters (brackets, braces, underscores, commas); the display
// form swaps them for fullwidth-safe punctuation so annotations never clash
// with the stream encoding.
const (
	annOpen  = "〔"
	annClose = "〕"

	// Alternate brackets mark a phrase spelling whose code could not be
	// resolved.
	altOpen  = "〈"
	altClose = "〉"

	unitOpen  = "("
	unitClose = ")"
	altSep    = "/"
	fieldSep  = " "
)

// displayText rewrites one raw field into display punctuation: braces become
// parentheses, underscores and commas become the alternate separator, and
// stray brackets disappear. Runs of separators produced by empty sub-fields
// collapse to one; the pass is a plain tokenizer, so applying it twice
// changes nothing.
func displayText(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		switch r {
		case '[', ']':
			// dropped
		case '{':
			sb.WriteString(unitOpen)
		case '}':
			sb.WriteString(unitClose)
		case '_', ',':
			if sb.Len() > 0 {
				pendingSep = true
			}
		default:
			if pendingSep {
				sb.WriteString(altSep)
				pendingSep = false
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// formatComponents renders an ordered component list, unwrapping named units.
func formatComponents(components []string) string {
	parts := make([]string, 0, len(components))
	for _, c := range components {
		if d := displayText(c); d != "" {
			parts = append(parts, d)
		}
	}
	return strings.Join(parts, "")
}

// formatFields joins non-empty annotation fields, collapsing the separators
// empty fields would otherwise leave behind.
func formatFields(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, fieldSep)
}

// formatSpellingBlock wraps a phrase or character spelling in the standard
// annotation brackets.
func formatSpellingBlock(spelling string) string {
	return annOpen + spelling + annClose
}

// formatBareBlock wraps a spelling in the alternate brackets that flag a
// missing code.
func formatBareBlock(spelling string) string {
	return altOpen + spelling + altClose
}
