package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/Hanaasagi/tricomment/pkg/formula"
)

type Config struct {
	Core    CoreConfig    `toml:"core"`
	Rules   []RuleConfig  `toml:"rules"`
	Dicts   DictsConfig   `toml:"dicts"`
	Keys    KeysConfig    `toml:"keys"`
	Options OptionsConfig `toml:"options"`
}

type CoreConfig struct {
	// EnablePhrase gates phrase-level composition; single characters are
	// always annotatable.
	EnablePhrase bool `toml:"enable_phrase"`
	// MixedInputFlags is the host's input-style flag count; more than one
	// flag means mixed input style, under which completion candidates get
	// their comment replaced instead of prepended.
	MixedInputFlags int    `toml:"mixed_input_flags"`
	LogLevel        string `toml:"log_level"`
}

// RuleConfig assigns a formula either to one exact phrase length or to an
// inclusive length range.
type RuleConfig struct {
	Length  int    `toml:"length"`
	Min     int    `toml:"min"`
	Max     int    `toml:"max"`
	Formula string `toml:"formula"`
}

type DictsConfig struct {
	Reverse string `toml:"reverse"`
	Punct   string `toml:"punct"`
}

type KeysConfig struct {
	CycleForward  string `toml:"cycle_forward"`
	CycleBackward string `toml:"cycle_backward"`
	Switch        string `toml:"switch"`
}

type OptionsConfig struct {
	Flags   []string `toml:"flags"`
	Default int      `toml:"default"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			EnablePhrase:    true,
			MixedInputFlags: 1,
			LogLevel:        "info",
		},
		Rules: []RuleConfig{
			{Length: 2, Formula: "AaAbBaBb"},
			{Length: 3, Formula: "AaBaCaCb"},
			{Min: 4, Max: 10, Formula: "AaBaCaZa"},
		},
		Keys: KeysConfig{
			CycleForward:  "/",
			CycleBackward: "\\",
			Switch:        "Ctrl+T",
		},
		Options: OptionsConfig{
			Flags:   []string{"off", "lv1", "lv2", "lv3"},
			Default: 4,
		},
	}
}

func LoadConfigFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil // no config file, return defaults
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	return config, nil
}

// TableEntries converts the configured rules into rule-table entries.
func (c *Config) TableEntries() []formula.TableEntry {
	entries := make([]formula.TableEntry, 0, len(c.Rules))
	for _, r := range c.Rules {
		entries = append(entries, formula.TableEntry{
			Length:  r.Length,
			Min:     r.Min,
			Max:     r.Max,
			Formula: r.Formula,
		})
	}
	return entries
}
