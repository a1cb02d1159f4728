package repl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHistory_Persist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.utf8")
	h := NewHistory(path)

	if err := h.Load(); err != nil {
		t.Fatalf("Load() on missing file error = %v", err)
	}

	entries := []HistoryEntry{
		{Line: ".sum {1} {2}", Mode: modeEval},
		{Line: "list", Mode: modeCtrl},
		{Line: "# Title\n\nbody with \\n literal", Mode: modeEval},
	}

	for _, e := range entries {
		if err := h.Add(e.Line, e.Mode); err != nil {
			t.Fatalf("Add(%q) error = %v", e.Line, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if n := strings.Count(string(data), "\n"); n != len(entries) {
		t.Errorf("history file has %d lines, want %d", n, len(entries))
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got := reloaded.Entries()
	if len(got) != len(entries) {
		t.Fatalf("Entries() = %d entries, want %d", len(got), len(entries))
	}

	for i := range entries {
		if got[i] != entries[i] {
			t.Errorf("Entries()[%d] = %+v, want %+v", i, got[i], entries[i])
		}
	}
}

func TestHistory_Duplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.utf8")
	h := NewHistory(path)

	for _, line := range []string{"a", "b", "b", "a"} {
		if err := h.Add(line, modeEval); err != nil {
			t.Fatal(err)
		}
	}

	// A repeated entry moves to the end; mode distinguishes entries.
	if err := h.Add("a", modeCtrl); err != nil {
		t.Fatal(err)
	}

	want := []HistoryEntry{
		{Line: "b", Mode: modeEval},
		{Line: "a", Mode: modeEval},
		{Line: "a", Mode: modeCtrl},
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	for _, hist := range []*History{h, reloaded} {
		got := hist.Entries()
		if len(got) != len(want) {
			t.Fatalf("Entries() = %+v, want %+v", got, want)
		}

		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Entries()[%d] = %+v, want %+v", i, got[i], want[i])
			}
		}
	}
}

func TestHistory_Bounds(t *testing.T) {
	h := NewHistory("")

	if err := h.Add("  ", modeEval); err != nil {
		t.Fatal(err)
	}

	if h.Len() != 0 {
		t.Errorf("Len() = %d after blank entry, want 0", h.Len())
	}

	for _, i := range []int{-1, 0} {
		if _, err := h.GetEntry(i); err != ErrOutOfBounds {
			t.Errorf("GetEntry(%d) error = %v, want %v", i, err, ErrOutOfBounds)
		}
	}
}

func TestHistory_Limit(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "history.utf8"))

	for i := range maxHistory + 5 {
		if err := h.Add(strings.Repeat("x", i+1), modeEval); err != nil {
			t.Fatal(err)
		}
	}

	if h.Len() != maxHistory {
		t.Errorf("Len() = %d, want %d", h.Len(), maxHistory)
	}

	first, err := h.GetEntry(0)
	if err != nil {
		t.Fatal(err)
	}

	if len(first.Line) != 6 {
		t.Errorf("oldest entry length = %d, want 6", len(first.Line))
	}
}
