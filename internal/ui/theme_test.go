package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 2 {
		t.Fatalf("ThemeNames() returned %d names, want 2", len(names))
	}
	if names[0] != "Dracula" || names[1] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Dracula Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Slate" {
		t.Fatalf("NextTheme(Dracula) = %q, want Slate", got)
	}
	if got := NextTheme("Slate"); got != "Dracula" {
		t.Fatalf("NextTheme(Slate) = %q, want Dracula", got)
	}
	if got := NextTheme("nope"); got != "Dracula" {
		t.Fatalf("NextTheme(nope) = %q, want Dracula", got)
	}
}

func TestGetTheme_UnknownFallsBack(t *testing.T) {
	if got := GetTheme("missing").Name; got != "Dracula" {
		t.Fatalf("GetTheme(missing).Name = %q, want Dracula", got)
	}
}

func TestStatusColor(t *testing.T) {
	th := GetTheme("Dracula")
	s := th.Styles()
	if got := s.StatusColor("  Active "); got != th.StatusColors["active"] {
		t.Fatalf("StatusColor = %q, want %q", got, th.StatusColors["active"])
	}
	if got := s.StatusColor("archived"); got != th.Muted {
		t.Fatalf("StatusColor unknown = %q, want %q", got, th.Muted)
	}
}

func TestBar_LineFillsWidth(t *testing.T) {
	b := newBar(GetTheme("Slate"), 40)
	got := b.line(b.text("Team Members", b.styles.Text), "", b.hint("n", "New", b.styles.MutedText))
	if w := lipgloss.Width(got); w != 40 {
		t.Fatalf("line width = %d, want 40", w)
	}
	for _, want := range []string{"Team", "Members", "New"} {
		if !strings.Contains(got, want) {
			t.Fatalf("line = %q, missing %q", got, want)
		}
	}
}
