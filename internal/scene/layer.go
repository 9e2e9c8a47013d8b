package scene

import (
	"github.com/ivlev/scenereel/internal/animate"
	"github.com/ivlev/scenereel/internal/timeline"
)

// Role tells the rasterizer how to present a piece of text.
type Role string

const (
	RolePrompt   Role = "prompt" // commands typed at a $ or > prompt
	RoleBright   Role = "bright" // typed text without a prompt
	RoleDim      Role = "dim"
	RoleError    Role = "error"
	RoleSound    Role = "sound"
	RoleKicker   Role = "kicker"
	RoleHeading  Role = "heading"
	RoleSubtitle Role = "subtitle"
	RoleLink     Role = "link"
	RoleHandle   Role = "handle"
	RoleImage    Role = "image"
)

// Layer is the visible state of one scene on one frame.
type Layer struct {
	Scene    Name
	Window   Window
	Opacity  float64
	Elements []Element // card pieces, drawn in order
	Lines    []Line    // terminal only
	Status   string    // terminal only
}

// Element is a positioned piece of a card.
type Element struct {
	ID    string
	Role  Role
	Text  string
	Asset string // opaque image id, empty for text
	animate.Entrance
}

// Line is one terminal line as it looks on the current frame.
type Line struct {
	Frame int // appear frame
	Kind  timeline.Kind
	Style timeline.Style
	Role  Role
	Text  string // visible portion
	animate.Entrance
	Caret         bool // typed text still in progress
	Cursor        bool // cursor line
	CursorVisible bool
	Badge         *Badge
}

// Badge is the label that pulses next to a sound line.
type Badge struct {
	Label   string
	Opacity float64
	Scale   float64
}
