package internal

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Inspector is a terminal UI over a captured candidate list. It re-runs the
// annotation pipeline after every option change, so cycling verbosity on the
// bound keys shows its effect on the live stream. Arrow keys scroll.
type Inspector struct {
	pipeline   *Pipeline
	keymap     *Keymap
	candidates []Candidate
	screen     tcell.Screen
	offset     int
}

// NewInspector builds an inspector over a fixed candidate slice.
func NewInspector(pipeline *Pipeline, keymap *Keymap, candidates []Candidate) *Inspector {
	return &Inspector{
		pipeline:   pipeline,
		keymap:     keymap,
		candidates: candidates,
	}
}

// Run owns the screen until the user quits. The annotated candidates as of
// the final option state are returned so the caller can still emit them.
func (in *Inspector) Run() ([]Candidate, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	in.screen = screen
	defer screen.Fini()

	in.render()
	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if in.handleKey(ev) {
				return in.annotated(), nil
			}
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventError:
			return in.annotated(), nil
		}
		in.render()
		time.Sleep(time.Millisecond * 10)
	}
}

// handleKey applies one key event; true means quit.
func (in *Inspector) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		if in.offset > 0 {
			in.offset--
		}
		return false
	case tcell.KeyDown:
		if in.offset < len(in.candidates)-1 {
			in.offset++
		}
		return false
	}

	opts := in.pipeline.Options()
	switch in.keymap.Resolve(ev) {
	case ActionCycleForward:
		k := opts.Cycle(true)
		slog.Debug("option cycled", "direction", "forward", "active", k)
	case ActionCycleBackward:
		k := opts.Cycle(false)
		slog.Debug("option cycled", "direction", "backward", "active", k)
	case ActionSwitch:
		k := opts.Switch()
		slog.Debug("option switched", "active", k)
	case ActionQuit:
		return true
	}
	return false
}

// annotated runs the pipeline over the captured candidates with the current
// option state.
func (in *Inspector) annotated() []Candidate {
	out := make([]Candidate, len(in.candidates))
	for i, c := range in.candidates {
		out[i] = in.pipeline.Apply(c)
	}
	return out
}

var (
	headerStyle  = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorYellow)
	textStyle    = tcell.StyleDefault
	commentStyle = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	typeStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (in *Inspector) render() {
	in.screen.Clear()
	width, height := in.screen.Size()

	active := in.pipeline.Options().ActiveName()
	if active == "" {
		active = "none"
	}
	header := fmt.Sprintf(" tricomment  [%s]  %d candidates", active, len(in.candidates))
	in.setLine(0, header, headerStyle, width)

	// Column of candidate texts, runewidth-aligned so CJK spans line up.
	textWidth := 0
	for _, c := range in.candidates {
		if w := runewidth.StringWidth(c.Text); w > textWidth {
			textWidth = w
		}
	}

	row := 1
	for _, c := range in.candidates[min(in.offset, len(in.candidates)):] {
		if row >= height {
			break
		}
		annotated := in.pipeline.Apply(c)
		x := in.setCells(1, row, fmt.Sprintf("%-11s", annotated.Type.String()), typeStyle)
		x = in.setCells(x, row, runewidth.FillRight(annotated.Text, textWidth+2), textStyle)
		in.setCells(x, row, annotated.Comment, commentStyle)
		row++
	}

	in.screen.Show()
}

// setLine draws a full-width line, padding or truncating to the screen.
func (in *Inspector) setLine(y int, text string, style tcell.Style, width int) {
	in.setCells(0, y, runewidth.FillRight(runewidth.Truncate(text, width, "…"), width), style)
}

// setCells draws text at a position, advancing by display width. Returns the
// column after the last cell.
func (in *Inspector) setCells(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		in.screen.SetContent(x, y, r, nil, style)
		w := runewidth.RuneWidth(r)
		if w <= 0 {
			w = 1
		}
		x += w
	}
	return x
}
