package audio

import (
	"errors"
	"testing"

	"github.com/ivlev/scenereel/internal/timeline"
)

func load(t *testing.T, events []timeline.Event) *timeline.Timeline {
	t.Helper()
	tl, err := timeline.Load(events, timeline.Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return tl
}

func TestScheduleNoOverlap(t *testing.T) {
	s := NewScheduler(map[string]int{"a.mp3": 80, "b.mp3": 40}, DefaultFallbackDuration)
	tl := load(t, []timeline.Event{
		{Frame: 240, Kind: timeline.KindSoundLine, SoundID: "b.mp3"},
		{Frame: 120, Kind: timeline.KindSoundLine, SoundID: "a.mp3", Label: "— session started"},
	})

	cues, warnings := s.Schedule(tl)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].Start != 120 || cues[0].Duration != 80 || cues[0].Channel != timeline.DefaultChannel {
		t.Errorf("unexpected first cue: %+v", cues[0])
	}
	if cues[0].Label != "— session started" {
		t.Errorf("label not carried: %q", cues[0].Label)
	}
	if cues[1].Start != 240 || cues[1].Duration != 40 {
		t.Errorf("unexpected second cue: %+v", cues[1])
	}

	if w := Validate(cues); len(w) != 0 {
		t.Errorf("120+80=200 <= 240 must not overlap, got %v", w)
	}
	if err := Check(cues); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func TestScheduleFlagsOverlap(t *testing.T) {
	s := NewScheduler(map[string]int{"a.mp3": 80, "b.mp3": 40}, DefaultFallbackDuration)
	tl := load(t, []timeline.Event{
		{Frame: 120, Kind: timeline.KindSoundLine, SoundID: "a.mp3"},
		{Frame: 150, Kind: timeline.KindSoundLine, SoundID: "b.mp3"},
	})

	cues, _ := s.Schedule(tl)
	warnings := Validate(cues)
	if len(warnings) != 1 {
		t.Fatalf("expected 1 overlap, got %v", warnings)
	}
	if warnings[0].Frame != 150 || warnings[0].SoundID != "b.mp3" {
		t.Errorf("unexpected warning: %v", warnings[0])
	}

	// no truncation: the earlier cue keeps its full length
	if cues[0].Duration != 80 {
		t.Errorf("cue was shortened to %d", cues[0].Duration)
	}

	if err := Check(cues); !errors.Is(err, ErrOverlap) {
		t.Errorf("expected ErrOverlap, got %v", err)
	}
}

func TestOverlapIsPerChannel(t *testing.T) {
	cues := []Cue{
		{SoundID: "a", Channel: "voice", Start: 120, Duration: 80},
		{SoundID: "b", Channel: "sfx", Start: 150, Duration: 40},
	}
	if w := Validate(cues); len(w) != 0 {
		t.Errorf("different channels must not conflict: %v", w)
	}

	// a short cue inside a long one still conflicts with the next cue
	cues = []Cue{
		{SoundID: "long", Channel: "voice", Start: 0, Duration: 100},
		{SoundID: "short", Channel: "voice", Start: 10, Duration: 10},
		{SoundID: "late", Channel: "voice", Start: 50, Duration: 10},
	}
	if w := Validate(cues); len(w) != 2 {
		t.Errorf("expected 2 conflicts, got %v", w)
	}
}

func TestFallbackDuration(t *testing.T) {
	s := NewScheduler(map[string]int{}, 50)
	tl := load(t, []timeline.Event{
		{Frame: 10, Kind: timeline.KindSoundLine, SoundID: "new.mp3"},
	})

	cues, warnings := s.Schedule(tl)
	if cues[0].Duration != 50 {
		t.Errorf("expected fallback 50, got %d", cues[0].Duration)
	}
	if len(warnings) != 1 {
		t.Errorf("expected a fallback warning, got %v", warnings)
	}

	if !s.Resolvable("new.mp3") {
		t.Error("fallback should make unknown ids resolvable")
	}
	strict := NewScheduler(nil, 0)
	if strict.Resolvable("new.mp3") {
		t.Error("without fallback unknown ids are unresolvable")
	}
}

func TestActiveAt(t *testing.T) {
	cues := []Cue{
		{SoundID: "a", Start: 120, Duration: 80},
		{SoundID: "b", Start: 240, Duration: 40},
	}

	tests := []struct {
		frame int
		want  []string
	}{
		{119, nil},
		{120, []string{"a"}},
		{199, []string{"a"}},
		{200, nil},
		{260, []string{"b"}},
		{760, nil},
	}

	for _, tt := range tests {
		got := ActiveAt(cues, tt.frame)
		if len(got) != len(tt.want) {
			t.Errorf("frame %d: expected %v, got %v", tt.frame, tt.want, got)
			continue
		}
		for i := range got {
			if got[i].SoundID != tt.want[i] {
				t.Errorf("frame %d: expected %v, got %v", tt.frame, tt.want, got)
			}
		}
	}
}

func TestDemoScheduleIsClean(t *testing.T) {
	sc := timeline.Demo()
	s := NewScheduler(sc.Sounds, *sc.FallbackDuration)
	tl, err := timeline.Load(sc.Events, timeline.Options{Resolve: s.Resolvable})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cues, warnings := s.Schedule(tl)
	if len(cues) != 6 || len(warnings) != 0 {
		t.Fatalf("expected 6 cues and no warnings, got %d / %v", len(cues), warnings)
	}
	if w := Validate(cues); len(w) != 0 {
		t.Errorf("demo cues overlap: %v", w)
	}
}
