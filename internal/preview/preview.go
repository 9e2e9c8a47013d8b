// Package preview prints a frame's scene tree and the audio schedule to the
// terminal, for checking a scenario without encoding video.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ivlev/scenereel/internal/audio"
	"github.com/ivlev/scenereel/internal/engine"
	"github.com/ivlev/scenereel/internal/scene"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffab01"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#505a79"))
	brightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0e8ff"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#c4813a"))
	soundStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffab01"))
	statusStyle = lipgloss.NewStyle().Reverse(true).Padding(0, 1)
	layerStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#505a79")).Padding(0, 1)
)

// Frame renders one sampled frame.
func Frame(st engine.FrameState, fps int) string {
	if fps <= 0 {
		fps = 30
	}
	header := headerStyle.Render(fmt.Sprintf("frame %d  (%.2fs)", st.Frame, float64(st.Frame)/float64(fps)))

	parts := []string{header}
	if len(st.Layers) == 0 {
		parts = append(parts, dimStyle.Render("(nothing visible)"))
	}
	for _, l := range st.Layers {
		parts = append(parts, layerStyle.Render(layer(l)))
	}
	if len(st.Cues) > 0 {
		var names []string
		for _, c := range st.Cues {
			names = append(names, fmt.Sprintf("%s[%s]", c.SoundID, c.Channel))
		}
		parts = append(parts, soundStyle.Render("playing: "+strings.Join(names, ", ")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func layer(l scene.Layer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  opacity %.2f  window %d-%d", strings.ToUpper(string(l.Scene)), l.Opacity, l.Window.Start, l.Window.End)

	if l.Status != "" {
		b.WriteString("\n" + statusStyle.Render(l.Status))
	}
	for _, e := range l.Elements {
		b.WriteString("\n" + element(e))
	}
	for _, line := range l.Lines {
		b.WriteString("\n" + terminalLine(line))
	}
	return b.String()
}

func element(e scene.Element) string {
	content := e.Text
	if e.Asset != "" {
		content = "<" + e.Asset + ">"
	}
	return dimStyle.Render(fmt.Sprintf("%-9s", e.ID)) + " " + brightStyle.Render(content) +
		dimStyle.Render(fmt.Sprintf("  a=%.2f y=%+.1f s=%.2f", e.Opacity, e.OffsetY, e.Scale))
}

func terminalLine(l scene.Line) string {
	style := dimStyle
	switch l.Role {
	case scene.RolePrompt:
		style = promptStyle
	case scene.RoleBright:
		style = brightStyle
	case scene.RoleError:
		style = errorStyle
	case scene.RoleSound:
		style = soundStyle
	}

	text := style.Render(l.Text)
	if l.Caret || (l.Cursor && l.CursorVisible) {
		text += promptStyle.Render("█")
	}
	if l.Badge != nil {
		text += " " + dimStyle.Render(fmt.Sprintf("%s (x%.2f)", l.Badge.Label, l.Badge.Scale))
	}
	if l.Opacity < 1 {
		text += dimStyle.Render(fmt.Sprintf("  a=%.2f", l.Opacity))
	}
	return text
}

// Cues renders the full audio schedule with any warnings.
func Cues(cues []audio.Cue, warnings []audio.Warning, fps int) string {
	if fps <= 0 {
		fps = 30
	}
	lines := []string{headerStyle.Render(fmt.Sprintf("%d cue(s)", len(cues)))}
	for _, c := range cues {
		lines = append(lines, fmt.Sprintf("%s %s %s %s",
			brightStyle.Render(fmt.Sprintf("%5d-%-5d", c.Start, c.End())),
			dimStyle.Render(fmt.Sprintf("%6.2fs", float64(c.Start)/float64(fps))),
			soundStyle.Render(fmt.Sprintf("%-8s", c.Channel)),
			c.SoundID+" "+dimStyle.Render(c.Label)))
	}
	for _, w := range warnings {
		lines = append(lines, errorStyle.Render("! "+w.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
