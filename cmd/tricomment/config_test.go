package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	config, err := LoadConfigFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfigFromFile failed: %v", err)
	}
	if !config.Core.EnablePhrase {
		t.Error("default config should enable phrase annotation")
	}
	if len(config.Options.Flags) != 4 || config.Options.Default != 4 {
		t.Errorf("default option group = %v default %d", config.Options.Flags, config.Options.Default)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	src := `
[core]
enable_phrase = false
mixed_input_flags = 3
log_level = "debug"

[[rules]]
length = 2
formula = "AaBa"

[[rules]]
min = 3
max = 5
formula = "AaZa"

[dicts]
reverse = "/data/reverse.tsv"
punct = "/data/punct.tsv"

[keys]
cycle_forward = "F4"

[options]
flags = ["off", "on"]
default = 2
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfigFromFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFromFile failed: %v", err)
	}

	if config.Core.EnablePhrase {
		t.Error("enable_phrase = true; want false")
	}
	if config.Core.MixedInputFlags != 3 {
		t.Errorf("mixed_input_flags = %d; want 3", config.Core.MixedInputFlags)
	}
	if config.Dicts.Reverse != "/data/reverse.tsv" {
		t.Errorf("reverse dict = %q", config.Dicts.Reverse)
	}
	if config.Keys.CycleForward != "F4" {
		t.Errorf("cycle_forward = %q; want F4", config.Keys.CycleForward)
	}

	entries := config.TableEntries()
	if len(entries) != 2 {
		t.Fatalf("TableEntries = %d entries; want 2", len(entries))
	}
	if entries[0].Length != 2 || entries[1].Min != 3 || entries[1].Max != 5 {
		t.Errorf("TableEntries = %+v", entries)
	}
}
