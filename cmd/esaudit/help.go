package main

import (
	"bytes"
	"cmp"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/esaudit/internal/config"
	"github.com/alfredjeanlab/esaudit/internal/ui"
)

// helpStyle colors every match of re in cobra's plain help text. Group n of
// the match is styled; the rest is kept as is.
type helpStyle struct {
	re     *regexp.Regexp
	group  int
	render func(string) string
}

var helpStyles = []helpStyle{
	// Section headers such as "Merkle Trees:" or "Flags:".
	{regexp.MustCompile(`(?m)^([A-Z][^\n]*:)[ \t]*$`), 1, ui.RenderAccent},
	// Command names: two-space indent, name, then at least two spaces.
	{regexp.MustCompile(`(?m)^  ([a-z][\w-]*)  `), 1, ui.RenderCommand},
	// Flag value types, e.g. "--workers int".
	{regexp.MustCompile(`--?\S+\s+(string|int)\b`), 1, ui.RenderMuted},
	{regexp.MustCompile(`\(default [^)]*\)`), 0, ui.RenderMuted},
}

// helpFunc prints the command's description and usage, styled unless color
// is off. Setup does not run for --help, so --no-color and the config file's
// no_color are checked here.
func (a *app) helpFunc(cmd *cobra.Command, _ []string) {
	if a.noColor {
		ui.ForceNoColor()
	} else if cfg, err := config.Load(a.configPath); err == nil && cfg.NoColor {
		ui.ForceNoColor()
	}

	var buf bytes.Buffer
	if header := strings.TrimRightFunc(cmp.Or(cmd.Long, cmd.Short), unicode.IsSpace); header != "" {
		buf.WriteString(header + "\n\n")
	}
	out := cmd.OutOrStdout()
	cmd.SetOut(&buf)
	_ = cmd.Usage()
	cmd.SetOut(out)

	text := buf.String()
	if ui.ColorEnabled() {
		text = colorizeHelp(text)
	}
	fmt.Fprint(out, text)
}

func colorizeHelp(s string) string {
	for _, st := range helpStyles {
		s = st.re.ReplaceAllStringFunc(s, func(match string) string {
			loc := st.re.FindStringSubmatchIndex(match)
			if loc == nil || loc[2*st.group] < 0 {
				return match
			}
			from, to := loc[2*st.group], loc[2*st.group+1]
			return match[:from] + st.render(match[from:to]) + match[to:]
		})
	}
	return s
}
