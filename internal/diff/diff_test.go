package diff

import (
	"strings"
	"testing"

	"github.com/jpl-au/hive/internal/result"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		from    int
		to      int
		wantErr bool
		errMsg  string
	}{
		{name: "full", input: "1:3", from: 1, to: 3},
		{name: "single", input: "2:2", from: 2, to: 2},
		{name: "open start", input: ":5", from: 0, to: 5},
		{name: "open end", input: "3:", from: 3, to: 0},
		{name: "all", input: ":", from: 0, to: 0},
		{name: "no colon", input: "5", wantErr: true, errMsg: "expected from:to"},
		{name: "too many colons", input: "1:2:3", wantErr: true, errMsg: "expected from:to"},
		{name: "non-numeric start", input: "abc:5", wantErr: true, errMsg: "invalid range start"},
		{name: "non-numeric end", input: "3:xyz", wantErr: true, errMsg: "invalid range end"},
		{name: "negative", input: "-1:3", wantErr: true, errMsg: ">= 0"},
		{name: "reversed", input: "4:1", wantErr: true, errMsg: "end before start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := ParseRange(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRange(%q) = (%d, %d, nil), want error containing %q", tt.input, from, to, tt.errMsg)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ParseRange(%q) error = %q, want containing %q", tt.input, err.Error(), tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange(%q) = error %v", tt.input, err)
			}
			if from != tt.from || to != tt.to {
				t.Errorf("ParseRange(%q) = (%d, %d), want (%d, %d)", tt.input, from, to, tt.from, tt.to)
			}
		})
	}
}

func TestResults(t *testing.T) {
	old := []result.Match{
		{Path: `HKEY_CURRENT_USER\A`},
		{Path: `HKEY_CURRENT_USER\B`, Name: "n"},
		{Path: `HKEY_CURRENT_USER\C`, Data: "acme"},
	}
	cur := []result.Match{
		{Path: `HKEY_CURRENT_USER\A`},
		{Path: `HKEY_CURRENT_USER\C`, Data: "acme"},
		{Path: `HKEY_CURRENT_USER\D`},
	}
	r := Results(old, cur, "before", "after")
	if r.Added != 1 || r.Removed != 1 {
		t.Fatalf("added=%d removed=%d, want 1 and 1\n%s", r.Added, r.Removed, r.Diff)
	}
	if !strings.Contains(r.Diff, "- HKEY_CURRENT_USER\\B [n]\n") {
		t.Errorf("missing removal in\n%s", r.Diff)
	}
	if !strings.Contains(r.Diff, "+ HKEY_CURRENT_USER\\D\n") {
		t.Errorf("missing addition in\n%s", r.Diff)
	}
	if !strings.Contains(r.Diff, "  HKEY_CURRENT_USER\\C [(Default)] = acme\n") {
		t.Errorf("unchanged data row not shown in\n%s", r.Diff)
	}
	if !strings.HasPrefix(r.Format(false), "--- before\n+++ after\n") {
		t.Errorf("bad header: %q", r.Format(false))
	}
}

func TestResults_Same(t *testing.T) {
	ms := []result.Match{{Path: `HKEY_USERS\X`}}
	if r := Results(ms, ms, "a", "b"); !r.Same() {
		t.Errorf("identical sets differ:\n%s", r.Diff)
	}
}

func TestColourise(t *testing.T) {
	out := Colourise("- a\n+ b\n  c\n")
	if !strings.Contains(out, "\033[31m- a") || !strings.Contains(out, "\033[32m+ b") {
		t.Errorf("colours missing: %q", out)
	}
	if !strings.Contains(out, "  c\n") {
		t.Errorf("context line changed: %q", out)
	}
}
