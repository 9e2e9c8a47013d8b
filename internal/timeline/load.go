package timeline

import (
	"fmt"
	"sort"
)

// MalformedTimelineError rejects a whole timeline before any frame is rendered.
type MalformedTimelineError struct {
	Index  int // position in the authored list, -1 when not tied to one event
	Frame  int
	Reason string
}

func (e *MalformedTimelineError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed timeline: %s", e.Reason)
	}
	return fmt.Sprintf("malformed timeline: event %d (frame %d): %s", e.Index, e.Frame, e.Reason)
}

// Options controls load-time validation.
type Options struct {
	// Resolve reports whether a sound id can be given a duration, either from
	// the duration table or through a fallback policy. Nil accepts any
	// non-empty id.
	Resolve func(soundID string) bool
}

// Timeline is a validated, frame-sorted and read-only event sequence.
type Timeline struct {
	events []Event
}

// Load validates events and returns them sorted ascending by frame. Events on
// the same frame keep their authored order.
func Load(events []Event, opts Options) (*Timeline, error) {
	seen := map[Kind]int{}

	for i, e := range events {
		if e.Frame < 0 {
			return nil, &MalformedTimelineError{Index: i, Frame: e.Frame, Reason: "negative frame"}
		}

		switch e.Kind {
		case KindTitle, KindOutro, KindTerminalStart:
			if prev, dup := seen[e.Kind]; dup {
				return nil, &MalformedTimelineError{
					Index:  i,
					Frame:  e.Frame,
					Reason: fmt.Sprintf("duplicate %s event (first at index %d)", e.Kind, prev),
				}
			}
			seen[e.Kind] = i
		case KindLine:
			if err := checkStyle(e.Style); err != nil {
				return nil, &MalformedTimelineError{Index: i, Frame: e.Frame, Reason: err.Error()}
			}
		case KindSoundLine:
			if e.SoundID == "" {
				return nil, &MalformedTimelineError{Index: i, Frame: e.Frame, Reason: "sound-line without sound id"}
			}
			if opts.Resolve != nil && !opts.Resolve(e.SoundID) {
				return nil, &MalformedTimelineError{
					Index:  i,
					Frame:  e.Frame,
					Reason: fmt.Sprintf("unresolvable sound id %q and no fallback duration", e.SoundID),
				}
			}
		default:
			return nil, &MalformedTimelineError{Index: i, Frame: e.Frame, Reason: fmt.Sprintf("unknown kind %q", e.Kind)}
		}
	}

	if err := checkAnchors(events, seen); err != nil {
		return nil, err
	}

	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Frame < sorted[j].Frame
	})

	tl := &Timeline{events: sorted}

	if outroIdx, ok := seen[KindOutro]; ok {
		outro := events[outroIdx]
		if last, ok := tl.LastTerminalFrame(); ok && outro.Frame <= last {
			return nil, &MalformedTimelineError{
				Index:  outroIdx,
				Frame:  outro.Frame,
				Reason: fmt.Sprintf("outro must come after the last terminal line (frame %d)", last),
			}
		}
	}

	return tl, nil
}

// checkAnchors requires title < terminal-start < outro and keeps every
// terminal event at or after the point the terminal scene opens.
func checkAnchors(events []Event, seen map[Kind]int) error {
	order := []Kind{KindTitle, KindTerminalStart, KindOutro}
	for i, a := range order {
		ai, ok := seen[a]
		if !ok {
			continue
		}
		for _, b := range order[i+1:] {
			bi, ok := seen[b]
			if !ok || events[bi].Frame > events[ai].Frame {
				continue
			}
			return &MalformedTimelineError{
				Index:  bi,
				Frame:  events[bi].Frame,
				Reason: fmt.Sprintf("%s must come after the %s (frame %d)", b, a, events[ai].Frame),
			}
		}
	}

	opener, ok := seen[KindTerminalStart]
	if !ok {
		if opener, ok = seen[KindTitle]; !ok {
			return nil
		}
	}
	start := events[opener]
	for i, e := range events {
		if (e.Kind == KindLine || e.Kind == KindSoundLine) && e.Frame < start.Frame {
			return &MalformedTimelineError{
				Index:  i,
				Frame:  e.Frame,
				Reason: fmt.Sprintf("%s before the %s (frame %d)", e.Kind, start.Kind, start.Frame),
			}
		}
	}
	return nil
}

func checkStyle(s Style) error {
	switch s {
	case StyleCmd, StyleDim, StyleError, StyleCursor:
		return nil
	case "":
		return fmt.Errorf("line without style")
	default:
		return fmt.Errorf("unknown line style %q", s)
	}
}

// Events returns a copy of the sorted events.
func (t *Timeline) Events() []Event {
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Len returns the number of events.
func (t *Timeline) Len() int {
	return len(t.events)
}

// Find returns the first event of the given kind.
func (t *Timeline) Find(kind Kind) (Event, bool) {
	for _, e := range t.events {
		if e.Kind == kind {
			return e, true
		}
	}
	return Event{}, false
}

// TerminalEvents returns the line and sound-line events in frame order.
func (t *Timeline) TerminalEvents() []Event {
	var out []Event
	for _, e := range t.events {
		if e.Kind == KindLine || e.Kind == KindSoundLine {
			out = append(out, e)
		}
	}
	return out
}

// SoundLines returns the sound-line events in frame order.
func (t *Timeline) SoundLines() []Event {
	var out []Event
	for _, e := range t.events {
		if e.Kind == KindSoundLine {
			out = append(out, e)
		}
	}
	return out
}

// LastTerminalFrame returns the frame of the last line or sound-line.
func (t *Timeline) LastTerminalFrame() (int, bool) {
	for i := len(t.events) - 1; i >= 0; i-- {
		if k := t.events[i].Kind; k == KindLine || k == KindSoundLine {
			return t.events[i].Frame, true
		}
	}
	return 0, false
}
