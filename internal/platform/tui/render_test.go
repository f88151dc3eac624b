package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/skyraid/internal/core"
)

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(10, 3)
	s.DrawTextColor(1, 0, "A", core.ColorBrightCyan)
	s.DrawTextColor(2, 0, "vv", core.ColorBrightRed)
	s.DrawText(0, 2, "HP")

	out := RenderScreen(s)
	lines := strings.Split(ansi.Strip(out), "\n")

	if len(lines) != 3 {
		t.Fatalf("RenderScreen() has %d lines, expected 3", len(lines))
	}
	if lines[0] != " Avv      " {
		t.Errorf("line 0 = %q, expected %q", lines[0], " Avv      ")
	}
	if lines[2] != "HP        " {
		t.Errorf("line 2 = %q, expected %q", lines[2], "HP        ")
	}
}

func TestRenderScreenUnknownColor(t *testing.T) {
	s := core.NewScreen(3, 1)
	s.DrawTextColor(0, 0, "xyz", core.Color(200))

	if got := ansi.Strip(RenderScreen(s)); got != "xyz" {
		t.Errorf("RenderScreen() = %q, expected %q", got, "xyz")
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"ab", 6, "  ab"},
		{"abc", 3, "abc"},
		{"abcdef", 4, "abcdef"},
	}

	for _, tt := range tests {
		if got := centerText(tt.text, tt.width); got != tt.want {
			t.Errorf("centerText(%q, %d) = %q, expected %q", tt.text, tt.width, got, tt.want)
		}
	}
}
