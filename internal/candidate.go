package internal

import (
	"fmt"
	"strings"
)

// CandidateType tags a candidate with the policy the annotation pipeline
// applies to it.
type CandidateType int

const (
	Plain CandidateType = iota
	SimplifiedVariant
	Completion
	Punctuation
	Sentence
	Other
)

var candidateTypeNames = map[CandidateType]string{
	Plain:             "plain",
	SimplifiedVariant: "simplified",
	Completion:        "completion",
	Punctuation:       "punct",
	Sentence:          "sentence",
	Other:             "other",
}

// String returns the stream tag for the type.
func (t CandidateType) String() string {
	if name, ok := candidateTypeNames[t]; ok {
		return name
	}
	return "other"
}

// ParseCandidateType maps a stream tag back to its type. Unknown tags fold
// into Other so foreign candidates still pass through the pipeline.
func ParseCandidateType(s string) CandidateType {
	for t, name := range candidateTypeNames {
		if name == s {
			return t
		}
	}
	return Other
}

// Candidate is one text span produced by the host engine. The pipeline only
// reads Type and Text and rewrites Comment. Start and End are in-process
// rune positions for hosts that hand candidates over directly; the stream
// codec does not carry them.
type Candidate struct {
	Type    CandidateType
	Start   int
	End     int
	Text    string
	Comment string
}

// String returns a debug representation of the candidate.
func (c Candidate) String() string {
	return fmt.Sprintf("Candidate{type:%s,span:%d-%d,text:%s,comment:<%s>}",
		c.Type, c.Start, c.End, c.Text, c.Comment)
}

// DecodeCandidate parses one stream line of the form
// "type<TAB>text[<TAB>comment]". Lines with a single field are plain
// candidates with no comment. The line carries no span, so the decoded
// candidate spans its own text: Start 0, End the rune count.
func DecodeCandidate(line string) (Candidate, error) {
	parts := strings.SplitN(line, "\t", 3)
	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return Candidate{}, fmt.Errorf("empty candidate line")
		}
		return Candidate{Type: Plain, Text: parts[0], End: len([]rune(parts[0]))}, nil
	case 2:
		return Candidate{
			Type: ParseCandidateType(parts[0]),
			Text: parts[1],
			End:  len([]rune(parts[1])),
		}, nil
	default:
		return Candidate{
			Type:    ParseCandidateType(parts[0]),
			Text:    parts[1],
			End:     len([]rune(parts[1])),
			Comment: parts[2],
		}, nil
	}
}

// EncodeCandidate renders the candidate back into its stream line. Only the
// type, text and comment survive the trip; the span is re-derived on decode.
func EncodeCandidate(c Candidate) string {
	return c.Type.String() + "\t" + c.Text + "\t" + c.Comment
}
