package scene

import "github.com/ivlev/scenereel/internal/timeline"

// Name identifies a top-level scene.
type Name string

const (
	Title    Name = "title"
	Terminal Name = "terminal"
	Outro    Name = "outro"
)

// Window is a half-open frame range [Start, End).
type Window struct {
	Start int
	End   int
}

// Contains reports whether frame lies inside the window.
func (w Window) Contains(frame int) bool {
	return frame >= w.Start && frame < w.End
}

// Len returns the window length in frames.
func (w Window) Len() int {
	return w.End - w.Start
}

// Config holds the fixed offsets that place scene windows around the
// timeline's anchor events.
type Config struct {
	FPS          int
	Margin       int // cross-fade length between adjacent scenes
	TitleHold    int // title length when no terminal-start is authored
	TerminalTail int // terminal length past the last line when no outro is authored
	OutroLength  int
	TypeSpeed    float64
	BlinkPeriod  int
}

// DefaultConfig returns the offsets used by the demo at 30 fps.
func DefaultConfig() Config {
	return Config{
		FPS:          30,
		Margin:       10,
		TitleHold:    75,
		TerminalTail: 60,
		OutroLength:  100,
		TypeSpeed:    1.5,
		BlinkPeriod:  15,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.FPS <= 0 {
		c.FPS = d.FPS
	}
	if c.Margin < 0 {
		c.Margin = 0
	}
	if c.TitleHold <= 0 {
		c.TitleHold = d.TitleHold
	}
	if c.TerminalTail <= 0 {
		c.TerminalTail = d.TerminalTail
	}
	if c.OutroLength <= 0 {
		c.OutroLength = d.OutroLength
	}
	if c.TypeSpeed <= 0 {
		c.TypeSpeed = d.TypeSpeed
	}
	if c.BlinkPeriod <= 0 {
		c.BlinkPeriod = d.BlinkPeriod
	}
	return c
}

// SceneWindow pairs a scene with the frames it occupies.
type SceneWindow struct {
	Scene  Name
	Window Window
}

// hand-off frames between scenes
type boundaries struct {
	hasTitle  bool
	title     int // title event frame
	terminal  int // Title -> Terminal
	outro     int // Terminal -> Outro
	lastEvent int
}

func findBoundaries(tl *timeline.Timeline, cfg Config) boundaries {
	var b boundaries

	if e, ok := tl.Find(timeline.KindTitle); ok {
		b.hasTitle = true
		b.title = e.Frame
	}

	if e, ok := tl.Find(timeline.KindTerminalStart); ok {
		b.terminal = e.Frame
	} else {
		// the terminal opens early enough to show its first line and never
		// after an authored outro
		b.terminal = b.title + cfg.TitleHold
		if first := tl.TerminalEvents(); len(first) > 0 && first[0].Frame < b.terminal {
			b.terminal = first[0].Frame
		}
		if e, ok := tl.Find(timeline.KindOutro); ok && e.Frame < b.terminal {
			b.terminal = e.Frame
		}
	}

	b.lastEvent = b.terminal
	if last, ok := tl.LastTerminalFrame(); ok && last > b.lastEvent {
		b.lastEvent = last
	}

	if e, ok := tl.Find(timeline.KindOutro); ok {
		b.outro = e.Frame
	} else {
		b.outro = b.lastEvent + cfg.TerminalTail
	}

	return b
}

// windows derives every scene window. Adjacent windows overlap by exactly one
// margin: the earlier scene ends Margin frames after the later one starts.
func windows(b boundaries, cfg Config) []SceneWindow {
	var out []SceneWindow
	if b.hasTitle {
		out = append(out, SceneWindow{Title, Window{Start: b.title, End: b.terminal + cfg.Margin}})
	}
	out = append(out,
		SceneWindow{Terminal, Window{Start: b.terminal, End: b.outro + cfg.Margin}},
		SceneWindow{Outro, Window{Start: b.outro, End: b.outro + cfg.OutroLength}},
	)
	return out
}
