package internal

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/Hanaasagi/tricomment/pkg/formula"
)

func testPipeline(t *testing.T, level int, enablePhrase, mixedInput bool) *Pipeline {
	t.Helper()
	table := testTable(t,
		formula.TableEntry{Length: 2, Formula: "AaBa"},
		formula.TableEntry{Min: 3, Max: 6, Formula: "AaBaZa"},
	)
	store := testStore()
	punct := NewStore(map[string]string{
		"，": "comma",
		"。": "stop_full",
	})
	opts := NewOptionGroup([]string{"off", "lv1", "lv2", "lv3"}, 4)
	p := NewPipeline(opts, NewComposer(table, store), store, punct, enablePhrase, mixedInput)
	if level == 0 {
		opts.Activate(1)
	} else {
		opts.Activate(level + 1)
	}
	return p
}

func collect(p *Pipeline, in []Candidate) []Candidate {
	var out []Candidate
	for c := range p.Annotate(slices.Values(in)) {
		out = append(out, c)
	}
	return out
}

func TestOffFlagBypassesEverything(t *testing.T) {
	p := testPipeline(t, 0, true, false)
	in := []Candidate{
		{Type: Plain, Text: "木", Comment: "upstream"},
		{Type: Plain, Text: "木林"},
		{Type: Punctuation, Text: "，"},
	}
	got := collect(p, in)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("off flag must pass candidates through unmodified:\n got %v\nwant %v", got, in)
	}
}

func TestSingleCharLevels(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "〔a(木)〕"},
		{2, "〔a(木)〕 ab/cd"},
		{3, "〔a(木)〕 ab/cd mu4"},
	}
	for _, tt := range tests {
		p := testPipeline(t, tt.level, true, false)
		got := p.Apply(Candidate{Type: Plain, Text: "木"})
		if got.Comment != tt.want {
			t.Errorf("level %d comment = %q; want %q", tt.level, got.Comment, tt.want)
		}
	}
}

func TestSingleCharWithoutRecord(t *testing.T) {
	p := testPipeline(t, 3, true, false)
	got := p.Apply(Candidate{Type: Plain, Text: "水", Comment: "keep"})
	if got.Comment != "keep" {
		t.Errorf("comment = %q; want untouched %q", got.Comment, "keep")
	}
}

func TestPhraseLevelThreeHasSpellingAndCodes(t *testing.T) {
	p := testPipeline(t, 3, true, false)
	got := p.Apply(Candidate{Type: Plain, Text: "木林"})

	if !strings.Contains(got.Comment, "〔ax〕") {
		t.Errorf("comment %q missing spelling block", got.Comment)
	}
	if !strings.Contains(got.Comment, "az/cz") {
		t.Errorf("comment %q missing sorted code tokens", got.Comment)
	}
}

func TestPhraseLevelOneSpellingOnly(t *testing.T) {
	p := testPipeline(t, 1, true, false)
	got := p.Apply(Candidate{Type: Plain, Text: "木林"})
	if want := "〔ax〕"; got.Comment != want {
		t.Errorf("comment = %q; want %q", got.Comment, want)
	}
}

func TestPhraseWithoutCodeUsesAlternateBrackets(t *testing.T) {
	p := testPipeline(t, 3, true, false)
	// 口 composes a spelling but has no code field.
	got := p.Apply(Candidate{Type: Plain, Text: "木口"})
	if want := "〈ak〉"; got.Comment != want {
		t.Errorf("comment = %q; want %q", got.Comment, want)
	}
}

func TestPhraseAnnotationDisabled(t *testing.T) {
	p := testPipeline(t, 3, false, false)
	got := p.Apply(Candidate{Type: Plain, Text: "木林", Comment: "keep"})
	if got.Comment != "keep" {
		t.Errorf("comment = %q; phrase annotation should be disabled", got.Comment)
	}
}

func TestPhraseMissingRecordNoAnnotation(t *testing.T) {
	p := testPipeline(t, 3, true, false)
	got := p.Apply(Candidate{Type: Plain, Text: "木水"})
	if got.Comment != "" {
		t.Errorf("comment = %q; a missing record must not yield a partial annotation", got.Comment)
	}
}

func TestAnnotationPrependsToComment(t *testing.T) {
	p := testPipeline(t, 1, true, false)
	got := p.Apply(Candidate{Type: Plain, Text: "木", Comment: "freq:9"})
	if want := "〔a(木)〕 freq:9"; got.Comment != want {
		t.Errorf("comment = %q; want %q", got.Comment, want)
	}
}

func TestCompletionReplacesUnderMixedInput(t *testing.T) {
	p := testPipeline(t, 1, true, true)
	got := p.Apply(Candidate{Type: Completion, Text: "木", Comment: "host hint"})
	if want := "〔a(木)〕"; got.Comment != want {
		t.Errorf("comment = %q; want replacement %q", got.Comment, want)
	}

	// Without mixed input style the annotation prepends like everywhere else.
	p = testPipeline(t, 1, true, false)
	got = p.Apply(Candidate{Type: Completion, Text: "木", Comment: "host hint"})
	if want := "〔a(木)〕 host hint"; got.Comment != want {
		t.Errorf("comment = %q; want %q", got.Comment, want)
	}
}

func TestPunctuationFromCodeStore(t *testing.T) {
	p := testPipeline(t, 2, true, false)
	got := p.Apply(Candidate{Type: Punctuation, Text: "，"})
	if want := "〔comma〕"; got.Comment != want {
		t.Errorf("comment = %q; want %q", got.Comment, want)
	}

	// Display punctuation normalization applies to stored codes too.
	got = p.Apply(Candidate{Type: Punctuation, Text: "。"})
	if want := "〔stop/full〕"; got.Comment != want {
		t.Errorf("comment = %q; want %q", got.Comment, want)
	}

	got = p.Apply(Candidate{Type: Punctuation, Text: "？"})
	if got.Comment != "" {
		t.Errorf("comment = %q; unknown punctuation gets no annotation", got.Comment)
	}
}

func TestSentenceNeverAnnotated(t *testing.T) {
	p := testPipeline(t, 3, true, false)
	got := p.Apply(Candidate{Type: Sentence, Text: "木林森", Comment: "assembled"})
	if got.Comment != "assembled" {
		t.Errorf("comment = %q; sentences are never annotated", got.Comment)
	}
}

func TestStreamOrderPreserved(t *testing.T) {
	p := testPipeline(t, 1, true, false)
	in := []Candidate{
		{Type: Plain, Text: "木"},
		{Type: Sentence, Text: "木林森"},
		{Type: Plain, Text: "林"},
	}
	got := collect(p, in)
	if len(got) != len(in) {
		t.Fatalf("got %d candidates; want %d", len(got), len(in))
	}
	for i := range got {
		if got[i].Text != in[i].Text {
			t.Errorf("candidate %d text = %q; want %q (order must be preserved)", i, got[i].Text, in[i].Text)
		}
	}
}

func TestEarlyStopConsumesNothingFurther(t *testing.T) {
	p := testPipeline(t, 1, true, false)
	pulled := 0
	upstream := func(yield func(Candidate) bool) {
		for _, c := range []Candidate{{Text: "木"}, {Text: "林"}, {Text: "森"}} {
			pulled++
			if !yield(c) {
				return
			}
		}
	}

	for range p.Annotate(upstream) {
		break
	}
	if pulled != 1 {
		t.Errorf("upstream pulled %d candidates after early stop; want 1", pulled)
	}
}
