package audio

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ivlev/scenereel/internal/timeline"
)

// DefaultFallbackDuration is used for sound ids missing from the duration table.
const DefaultFallbackDuration = 50

// ErrOverlap is returned by Check when two cues on one channel overlap.
var ErrOverlap = errors.New("overlapping audio cues")

// Cue is a one-shot playback window.
type Cue struct {
	SoundID  string
	Channel  string
	Start    int // frame
	Duration int // frames
	Label    string
}

// End returns the first frame after the cue.
func (c Cue) End() int {
	return c.Start + c.Duration
}

// Active reports whether the cue is sounding at frame.
func (c Cue) Active(frame int) bool {
	return frame >= c.Start && frame < c.End()
}

// Warning is a content-authoring problem that does not stop rendering.
type Warning struct {
	Frame   int
	SoundID string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("frame %d (%s): %s", w.Frame, w.SoundID, w.Message)
}

// Scheduler turns sound lines into cues using a duration table.
type Scheduler struct {
	Durations map[string]int
	// Fallback is used for ids missing from Durations. Zero or less disables
	// the fallback, which makes such ids unresolvable.
	Fallback int
}

// NewScheduler copies the duration table.
func NewScheduler(durations map[string]int, fallback int) *Scheduler {
	d := make(map[string]int, len(durations))
	for id, n := range durations {
		d[id] = n
	}
	return &Scheduler{Durations: d, Fallback: fallback}
}

// Resolvable reports whether a duration can be found for id.
func (s *Scheduler) Resolvable(id string) bool {
	if n, ok := s.Durations[id]; ok && n > 0 {
		return true
	}
	return s.Fallback > 0
}

// Duration looks up the duration of id. The second result is false when the
// fallback was used.
func (s *Scheduler) Duration(id string) (int, bool) {
	if n, ok := s.Durations[id]; ok && n > 0 {
		return n, true
	}
	return s.Fallback, false
}

// Schedule emits one cue per sound line, in frame order. Cues are never
// shortened; overlaps are reported by Validate.
func (s *Scheduler) Schedule(tl *timeline.Timeline) ([]Cue, []Warning) {
	var cues []Cue
	var warnings []Warning

	for _, e := range tl.SoundLines() {
		dur, known := s.Duration(e.SoundID)
		if !known {
			warnings = append(warnings, Warning{
				Frame:   e.Frame,
				SoundID: e.SoundID,
				Message: fmt.Sprintf("no duration known, using fallback of %d frames", dur),
			})
		}
		cues = append(cues, Cue{
			SoundID:  e.SoundID,
			Channel:  e.AudioChannel(),
			Start:    e.Frame,
			Duration: dur,
			Label:    e.Label,
		})
	}

	return cues, warnings
}

// Validate reports every pair of consecutive cues on the same channel where the
// earlier one is still playing when the next one starts.
func Validate(cues []Cue) []Warning {
	byChannel := map[string][]Cue{}
	var channels []string
	for _, c := range cues {
		if _, ok := byChannel[c.Channel]; !ok {
			channels = append(channels, c.Channel)
		}
		byChannel[c.Channel] = append(byChannel[c.Channel], c)
	}
	sort.Strings(channels)

	var warnings []Warning
	for _, ch := range channels {
		list := byChannel[ch]
		sort.SliceStable(list, func(i, j int) bool { return list[i].Start < list[j].Start })

		lastEnd := 0
		var last Cue
		for i, c := range list {
			if i > 0 && c.Start < lastEnd {
				warnings = append(warnings, Warning{
					Frame:   c.Start,
					SoundID: c.SoundID,
					Message: fmt.Sprintf("starts while %s is still playing on channel %q (until frame %d)", last.SoundID, ch, lastEnd),
				})
			}
			if c.End() > lastEnd {
				lastEnd = c.End()
				last = c
			}
		}
	}

	return warnings
}

// Check is Validate as an error, for strict loads.
func Check(cues []Cue) error {
	warnings := Validate(cues)
	if len(warnings) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d conflict(s), first at %s", ErrOverlap, len(warnings), warnings[0])
}

// ActiveAt returns the cues sounding at frame.
func ActiveAt(cues []Cue, frame int) []Cue {
	var out []Cue
	for _, c := range cues {
		if c.Active(frame) {
			out = append(out, c)
		}
	}
	return out
}
