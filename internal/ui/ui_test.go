package ui

import (
	"strings"
	"testing"
)

func withColor(t *testing.T, enabled bool) {
	t.Helper()
	prev := noColor
	noColor = !enabled
	t.Cleanup(func() { noColor = prev })
}

func TestRender_NoColor(t *testing.T) {
	withColor(t, false)
	for _, tc := range []struct {
		name string
		got  string
		want string
	}{
		{"pass", RenderPass("Chain is valid (2 events)"), "✓ Chain is valid (2 events)"},
		{"fail", RenderFail("Merkle proof is invalid"), "✗ Merkle proof is invalid"},
		{"accent", RenderAccent("Commands:"), "Commands:"},
		{"muted", RenderMuted("(right)"), "(right)"},
		{"command", RenderCommand("merkle-root"), "merkle-root"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %q, want %q", tc.got, tc.want)
			}
		})
	}
}

func TestRender_Color(t *testing.T) {
	withColor(t, true)
	got := RenderFail("bad")
	if !strings.HasPrefix(got, "\x1b[38;5;203m✗\x1b[0m") || !strings.HasSuffix(got, " bad") {
		t.Errorf("RenderFail() = %q", got)
	}
	if got := RenderPass("ok"); got != "\x1b[38;5;114m✓\x1b[0m ok" {
		t.Errorf("RenderPass() = %q", got)
	}
	if !ColorEnabled() {
		t.Error("ColorEnabled() = false with color on")
	}
}

func TestForceNoColor(t *testing.T) {
	withColor(t, true)
	ForceNoColor()
	if ColorEnabled() {
		t.Error("ColorEnabled() = true after ForceNoColor")
	}
	if got := RenderAccent("x"); got != "x" {
		t.Errorf("RenderAccent() = %q after ForceNoColor", got)
	}
}

func TestShouldUseColorFor_Env(t *testing.T) {
	for _, tc := range []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"NoColorWins", map[string]string{"NO_COLOR": "1", "CLICOLOR_FORCE": "1"}, false},
		{"Forced", map[string]string{"NO_COLOR": "", "CLICOLOR_FORCE": "1"}, true},
		{"ClicolorZero", map[string]string{"NO_COLOR": "", "CLICOLOR_FORCE": "", "CLICOLOR": "0"}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if got := ShouldUseColorFor(&strings.Builder{}); got != tc.want {
				t.Errorf("ShouldUseColorFor() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestShouldUseColorFor_NonTerminal(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR_FORCE", "")
	t.Setenv("CLICOLOR", "")
	var sb strings.Builder
	if ShouldUseColorFor(&sb) {
		t.Error("a plain writer should not get color")
	}
	t.Setenv("CLICOLOR_FORCE", "1")
	if !ShouldUseColorFor(&sb) {
		t.Error("CLICOLOR_FORCE=1 should force color")
	}
}

func TestSetColor(t *testing.T) {
	withColor(t, false)
	SetColor(true)
	if !ColorEnabled() || RenderMuted("x") == "x" {
		t.Error("SetColor(true) did not enable color")
	}
	SetColor(false)
	if ColorEnabled() || RenderMuted("x") != "x" {
		t.Error("SetColor(false) did not disable color")
	}
}
