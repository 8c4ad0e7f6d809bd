package internal

import (
	"iter"
	"log/slog"
	"strings"

	"github.com/Hanaasagi/tricomment/pkg/record"
)

// Verbosity levels, relative to the option group layout [off, lv1, lv2, lv3]:
// index 1 is the global bypass, indices 2..4 map to levels 1..3.
const (
	levelSpelling = 1
	levelCode     = 2
	levelFull     = 3
)

// Pipeline annotates a host candidate stream. Candidates are consumed
// lazily, annotated according to the active option flag and the candidate
// type, and re-emitted in order. Every per-candidate failure degrades to "no
// annotation"; nothing ever interrupts the stream.
type Pipeline struct {
	opts         *OptionGroup
	composer     *Composer
	store        *Store
	punct        *Store
	enablePhrase bool
	mixedInput   bool
}

// NewPipeline builds a pipeline over the option group, the character record
// store and the punctuation code store. enablePhrase gates phrase
// composition; mixedInput switches completion candidates from comment
// prepending to comment replacement.
func NewPipeline(opts *OptionGroup, composer *Composer, store, punct *Store, enablePhrase, mixedInput bool) *Pipeline {
	opts.EnsureInitialized()
	return &Pipeline{
		opts:         opts,
		composer:     composer,
		store:        store,
		punct:        punct,
		enablePhrase: enablePhrase,
		mixedInput:   mixedInput,
	}
}

// Options exposes the pipeline's option group to the key-event handler.
func (p *Pipeline) Options() *OptionGroup {
	return p.opts
}

// Annotate returns a lazy pass-through sequence of the upstream candidates
// with annotations attached. The consumer controls pacing; stopping early
// stops all processing.
func (p *Pipeline) Annotate(upstream iter.Seq[Candidate]) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for c := range upstream {
			if !yield(p.Apply(c)) {
				return
			}
		}
	}
}

// Apply annotates a single candidate. With the off flag active every
// candidate passes through byte-identical.
func (p *Pipeline) Apply(c Candidate) Candidate {
	level := p.level()
	if level == 0 {
		return c
	}

	var annotation string
	switch c.Type {
	case Sentence:
		// Host-assembled strings never get character or phrase annotation.
		return c
	case Punctuation:
		annotation = p.punctAnnotation(c.Text)
	default:
		annotation = p.textAnnotation(c.Text, level)
	}
	if annotation == "" {
		return c
	}

	if c.Type == Completion && p.mixedInput {
		c.Comment = annotation
		return c
	}
	if c.Comment == "" {
		c.Comment = annotation
	} else {
		c.Comment = annotation + fieldSep + c.Comment
	}
	return c
}

// level maps the active option flag to a verbosity level, 0 meaning bypass.
func (p *Pipeline) level() int {
	k := p.opts.Active()
	if k <= 1 {
		return 0
	}
	level := k - 1
	if level > levelFull {
		level = levelFull
	}
	return level
}

// punctAnnotation annotates punctuation purely from the code store keyed by
// the literal text, bypassing record parsing.
func (p *Pipeline) punctAnnotation(text string) string {
	raw := p.punct.Lookup(text)
	if raw == "" {
		return ""
	}
	return formatSpellingBlock(displayText(raw))
}

// textAnnotation annotates a plain text span: single characters straight off
// their record, longer spans through the phrase composer.
func (p *Pipeline) textAnnotation(text string, level int) string {
	if len([]rune(text)) == 1 {
		return p.charAnnotation(text, level)
	}
	if !p.enablePhrase {
		return ""
	}
	return p.phraseAnnotation(text, level)
}

// charAnnotation formats a single character's record at the requested level:
// spelling only, spelling plus codes, or the full record.
func (p *Pipeline) charAnnotation(text string, level int) string {
	rec, ok := p.store.ParsedLookup(text)
	if !ok {
		return ""
	}

	spelling := formatSpellingBlock(formatComponents(rec.Components(record.Spelling)))
	if level == levelSpelling {
		return spelling
	}

	codes := strings.Join(rec.Components(record.CodeLiteral), altSep)
	if level == levelCode {
		return formatFields(spelling, codes)
	}
	return formatFields(spelling, codes, strings.Join(rec.Pronunciations(), altSep))
}

// phraseAnnotation composes a phrase's spelling and, above level 1, its code
// variants. A phrase whose spelling cannot be composed gets no annotation; a
// phrase whose code cannot be resolved keeps its spelling in the alternate
// bracket style.
func (p *Pipeline) phraseAnnotation(text string, level int) string {
	spelling, ok := p.composer.Compose(text, record.Spelling)
	if !ok {
		slog.Debug("phrase composition unavailable", "text", text)
		return ""
	}
	spelling = displayText(spelling)

	if level == levelSpelling {
		return formatSpellingBlock(spelling)
	}

	codes, ok := p.composer.ComposeCodes(text)
	if !ok {
		return formatBareBlock(spelling)
	}
	return formatFields(formatSpellingBlock(spelling), strings.Join(codes, altSep))
}
