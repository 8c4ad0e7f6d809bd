package internal

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Action names the option-group operation a key triggers.
type Action int

const (
	ActionNone Action = iota
	ActionCycleForward
	ActionCycleBackward
	ActionSwitch
	ActionQuit
)

// keyChord is one resolved binding: either a special key or a rune, plus
// modifiers.
type keyChord struct {
	key  tcell.Key
	ch   rune
	mods tcell.ModMask
}

// Keymap resolves key events delivered by the host terminal into option
// actions. Bindings come from configuration strings like "F4", "Ctrl+T" or a
// single character.
type Keymap struct {
	bindings map[keyChord]Action
}

// NewKeymap builds a keymap from binding strings. An empty binding string
// leaves its action unbound. Unparseable bindings are a startup error, the
// same class as an invalid formula.
func NewKeymap(cycleForward, cycleBackward, switchKey string) (*Keymap, error) {
	km := &Keymap{bindings: make(map[keyChord]Action)}
	for _, b := range []struct {
		spec   string
		action Action
	}{
		{cycleForward, ActionCycleForward},
		{cycleBackward, ActionCycleBackward},
		{switchKey, ActionSwitch},
	} {
		if b.spec == "" {
			continue
		}
		chord, err := parseChord(b.spec)
		if err != nil {
			return nil, fmt.Errorf("key binding %q: %w", b.spec, err)
		}
		km.bindings[chord] = b.action
	}
	return km, nil
}

// Resolve maps a key event to its action. Escape and Ctrl+C always quit.
func (km *Keymap) Resolve(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	}

	chord := keyChord{key: ev.Key(), mods: ev.Modifiers()}
	if ev.Key() == tcell.KeyRune {
		chord.ch = ev.Rune()
		// Shift is already folded into the rune.
		chord.mods &^= tcell.ModShift
	} else if ctrlEncoded(ev.Key()) {
		chord.mods &^= tcell.ModCtrl
	}
	if action, ok := km.bindings[chord]; ok {
		return action
	}
	return ActionNone
}

// ctrlEncoded reports whether a key constant already carries Ctrl: tcell
// uses the raw ASCII control codes for Ctrl+letter combinations.
func ctrlEncoded(key tcell.Key) bool {
	return key >= 0 && key < ' '
}

// parseChord parses "Ctrl+T", "Alt+F2", "F4" or a single character.
func parseChord(spec string) (keyChord, error) {
	var chord keyChord
	parts := strings.Split(spec, "+")
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(mod) {
		case "ctrl", "control":
			chord.mods |= tcell.ModCtrl
		case "alt":
			chord.mods |= tcell.ModAlt
		case "shift":
			chord.mods |= tcell.ModShift
		default:
			return chord, fmt.Errorf("unknown modifier %q", mod)
		}
	}

	last := parts[len(parts)-1]
	if last == "" {
		return chord, fmt.Errorf("missing key")
	}

	// Named special keys (F1..F64, Tab, Enter, ...) per tcell's own names.
	for key, name := range tcell.KeyNames {
		if strings.EqualFold(name, last) {
			chord.key = key
			if ctrlEncoded(key) {
				chord.mods &^= tcell.ModCtrl
			}
			return chord, nil
		}
	}

	runes := []rune(last)
	if len(runes) != 1 {
		return chord, fmt.Errorf("unknown key %q", last)
	}
	if chord.mods&tcell.ModCtrl != 0 {
		// tcell reports Ctrl+letter as a control key, not a rune.
		name := "Ctrl-" + strings.ToUpper(string(runes[0]))
		for key, n := range tcell.KeyNames {
			if n == name {
				chord.key = key
				chord.mods &^= tcell.ModCtrl
				return chord, nil
			}
		}
		return chord, fmt.Errorf("unsupported control key %q", last)
	}
	chord.key = tcell.KeyRune
	chord.ch = runes[0]
	return chord, nil
}
