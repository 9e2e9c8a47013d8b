package scene

import (
	"strings"

	"github.com/ivlev/scenereel/internal/animate"
	"github.com/ivlev/scenereel/internal/timeline"
)

// Spring settings for the card and line entrances.
var (
	lineSpring  = animate.Spring{Damping: 20}
	badgeSpring = animate.Spring{Damping: 12}

	titleLogo    = animate.Spring{Damping: 14}
	titleHeading = animate.Spring{Damping: 12, Delay: 8}
	titleSub     = animate.Spring{Damping: 12, Delay: 20}
	titleMascot  = animate.Spring{Damping: 10, Delay: 12}

	outroPanel  = animate.Spring{Damping: 12}
	outroLogo   = animate.Spring{Damping: 14, Delay: 5}
	outroMascot = animate.Spring{Damping: 10, Delay: 8}
)

const (
	lineOffset     = 8
	brandingAlpha  = 0.6
	badgePulseLow  = 0.8
	badgePulseHigh = 1.0
)

// Composer decides which scenes are visible on a frame and how they look.
// It holds only values derived at construction; Compose is a pure function
// of the frame.
type Composer struct {
	cfg      Config
	cards    timeline.Cards
	status   StatusLabel
	bounds   boundaries
	windows  []SceneWindow
	terminal []timeline.Event
}

// NewComposer derives the scene windows from a loaded timeline.
func NewComposer(tl *timeline.Timeline, status timeline.StatusTable, cards timeline.Cards, cfg Config) *Composer {
	cfg = cfg.withDefaults()
	b := findBoundaries(tl, cfg)
	return &Composer{
		cfg:      cfg,
		cards:    cards,
		status:   NewStatusLabel(status),
		bounds:   b,
		windows:  windows(b, cfg),
		terminal: tl.TerminalEvents(),
	}
}

// Windows returns the scene windows in stacking order, bottom first.
func (c *Composer) Windows() []SceneWindow {
	out := make([]SceneWindow, len(c.windows))
	copy(out, c.windows)
	return out
}

// Window returns the window of one scene.
func (c *Composer) Window(name Name) (Window, bool) {
	for _, w := range c.windows {
		if w.Scene == name {
			return w.Window, true
		}
	}
	return Window{}, false
}

// End returns the first frame after the last scene.
func (c *Composer) End() int {
	end := 0
	for _, w := range c.windows {
		if w.Window.End > end {
			end = w.Window.End
		}
	}
	return end
}

// Status returns the terminal tab label at frame.
func (c *Composer) Status(frame int) string {
	return c.status.At(frame)
}

// Compose returns the layers whose window contains frame, bottom first.
func (c *Composer) Compose(frame int) []Layer {
	var layers []Layer
	for _, sw := range c.windows {
		if !sw.Window.Contains(frame) {
			continue
		}
		layer := Layer{
			Scene:   sw.Scene,
			Window:  sw.Window,
			Opacity: c.opacity(sw.Scene, frame),
		}
		switch sw.Scene {
		case Title:
			layer.Elements = c.titleElements(frame)
		case Terminal:
			layer.Elements = c.terminalElements()
			layer.Lines = c.lines(sw.Window, frame)
			layer.Status = c.status.At(frame)
		case Outro:
			layer.Elements = c.outroElements(frame)
		}
		layers = append(layers, layer)
	}
	return layers
}

// opacity fades a scene in over the margin after its start boundary and out
// over the margin after the next scene's start.
func (c *Composer) opacity(name Name, frame int) float64 {
	m := c.cfg.Margin
	switch name {
	case Title:
		return animate.Frames(frame, c.bounds.terminal, c.bounds.terminal+m, 1, 0)
	case Terminal:
		in := animate.Frames(frame, c.bounds.terminal, c.bounds.terminal+m, 0, 1)
		out := animate.Frames(frame, c.bounds.outro, c.bounds.outro+m, 1, 0)
		if c.bounds.hasTitle {
			return min(in, out)
		}
		// nothing to cross-fade from
		return out
	case Outro:
		return animate.Frames(frame, c.bounds.outro, c.bounds.outro+m, 0, 1)
	}
	return 0
}

func (c *Composer) lines(w Window, frame int) []Line {
	var out []Line
	for _, e := range c.terminal {
		if e.Frame > frame {
			break
		}
		if !w.Contains(e.Frame) {
			continue
		}
		out = append(out, c.line(e, frame))
	}
	return out
}

func (c *Composer) line(e timeline.Event, frame int) Line {
	l := Line{
		Frame:    e.Frame,
		Kind:     e.Kind,
		Style:    e.Style,
		Text:     e.Text,
		Entrance: animate.Enter(lineSpring.Progress(frame, e.Frame, c.cfg.FPS), lineOffset, 1),
	}

	if e.Kind == timeline.KindSoundLine {
		l.Role = RoleSound
		l.Badge = &Badge{
			Label:   e.Label,
			Opacity: clamp01(badgeSpring.Progress(frame, e.Frame, c.cfg.FPS)),
			Scale:   animate.Pulse(frame, animate.DefaultPulseRate, badgePulseLow, badgePulseHigh),
		}
		return l
	}

	switch e.Style {
	case timeline.StyleCmd:
		typed := animate.Reveal(e.Text, e.Frame, c.cfg.TypeSpeed, frame)
		l.Text = typed.Shown
		l.Caret = typed.Caret
		l.Role = RoleBright
		if strings.HasPrefix(e.Text, "$") || strings.HasPrefix(e.Text, ">") {
			l.Role = RolePrompt
		}
	case timeline.StyleError:
		l.Role = RoleError
	case timeline.StyleCursor:
		l.Role = RolePrompt
		l.Cursor = true
		l.CursorVisible = animate.CursorVisible(frame, c.cfg.BlinkPeriod)
	default:
		l.Role = RoleDim
	}
	return l
}

func (c *Composer) titleElements(frame int) []Element {
	start := c.bounds.title
	fps := c.cfg.FPS
	card := c.cards.Title

	logo := animate.Enter(titleLogo.Progress(frame, start, fps), 10, 1)
	heading := animate.Enter(titleHeading.Progress(frame, start, fps), 20, 1)
	sub := animate.Enter(titleSub.Progress(frame, start, fps), 0, 1)
	mascot := animate.Enter(titleMascot.Progress(frame, start, fps), 20, 0.7)

	return compact([]Element{
		{ID: "portrait", Role: RoleImage, Asset: c.cards.Portrait, Entrance: logo},
		{ID: "link", Role: RoleLink, Text: card.Link, Entrance: logo},
		{ID: "kicker", Role: RoleKicker, Text: card.Kicker, Entrance: nest(heading, sub)},
		{ID: "heading", Role: RoleHeading, Text: card.Heading, Entrance: heading},
		{ID: "subtitle", Role: RoleSubtitle, Text: card.Subtitle, Entrance: nest(heading, sub)},
		{ID: "handle", Role: RoleHandle, Text: card.Handle, Entrance: sub},
		{ID: "mascot", Role: RoleImage, Asset: c.cards.Mascot, Entrance: mascot},
	})
}

func (c *Composer) terminalElements() []Element {
	steady := animate.Entrance{Opacity: brandingAlpha, Scale: 1}
	return compact([]Element{
		{ID: "portrait", Role: RoleImage, Asset: c.cards.Portrait, Entrance: steady},
		{ID: "handle", Role: RoleHandle, Text: c.cards.Title.Handle, Entrance: steady},
	})
}

func (c *Composer) outroElements(frame int) []Element {
	start := c.bounds.outro
	fps := c.cfg.FPS
	card := c.cards.Outro

	panel := animate.Enter(outroPanel.Progress(frame, start, fps), 0, 0.9)
	logo := nest(panel, animate.Enter(outroLogo.Progress(frame, start, fps), 10, 1))
	mascot := animate.Enter(outroMascot.Progress(frame, start, fps), 20, 0.7)

	return compact([]Element{
		{ID: "portrait", Role: RoleImage, Asset: c.cards.Portrait, Entrance: logo},
		{ID: "kicker", Role: RoleKicker, Text: card.Kicker, Entrance: logo},
		{ID: "heading", Role: RoleHeading, Text: card.Heading, Entrance: panel},
		{ID: "link", Role: RoleLink, Text: card.Link, Entrance: panel},
		{ID: "subtitle", Role: RoleSubtitle, Text: card.Subtitle, Entrance: panel},
		{ID: "handle", Role: RoleHandle, Text: card.Handle, Entrance: panel},
		{ID: "mascot", Role: RoleImage, Asset: c.cards.Mascot, Entrance: mascot},
	})
}

// nest applies a parent entrance to a child inside it.
func nest(parent, child animate.Entrance) animate.Entrance {
	return animate.Entrance{
		Opacity: parent.Opacity * child.Opacity,
		OffsetY: parent.OffsetY + child.OffsetY,
		Scale:   parent.Scale * child.Scale,
	}
}

// compact drops elements with nothing to show.
func compact(elems []Element) []Element {
	out := elems[:0]
	for _, e := range elems {
		if e.Text == "" && e.Asset == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
