package cli

import (
	"testing"
)

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2026-01-01")

	if version != "1.0.0" {
		t.Errorf("version = %q, want %q", version, "1.0.0")
	}
	if commit != "abc123" {
		t.Errorf("commit = %q, want %q", commit, "abc123")
	}
	if date != "2026-01-01" {
		t.Errorf("date = %q, want %q", date, "2026-01-01")
	}
}

func TestCommandTree(t *testing.T) {
	// The river drawing lives under a subcommand so other river views can
	// be added later; everything else is a direct child of the root.
	river := newRiverCmd()
	names := make(map[string]bool)
	for _, sub := range river.Commands() {
		names[sub.Name()] = true
	}
	if !names["graph"] {
		t.Errorf("river subcommands = %v, want graph", names)
	}

	cacheCmd := newCacheCmd()
	names = map[string]bool{}
	for _, sub := range cacheCmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"clear", "path"} {
		if !names[want] {
			t.Errorf("cache subcommands = %v, missing %q", names, want)
		}
	}
}
