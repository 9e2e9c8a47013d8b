package timeline

import (
	"errors"
	"testing"
)

func TestLoadRejectsMalformed(t *testing.T) {
	known := func(id string) bool { return id == "a.mp3" }

	tests := []struct {
		name   string
		events []Event
		opts   Options
	}{
		{"negative frame", []Event{{Frame: -1, Kind: KindTitle}}, Options{}},
		{"two titles", []Event{{Frame: 0, Kind: KindTitle}, {Frame: 10, Kind: KindTitle}}, Options{}},
		{"two outros", []Event{{Frame: 700, Kind: KindOutro}, {Frame: 740, Kind: KindOutro}}, Options{}},
		{"two terminal starts", []Event{{Frame: 75, Kind: KindTerminalStart}, {Frame: 80, Kind: KindTerminalStart}}, Options{}},
		{"sound line without id", []Event{{Frame: 120, Kind: KindSoundLine, Text: "x"}}, Options{}},
		{"unresolvable sound", []Event{{Frame: 120, Kind: KindSoundLine, SoundID: "b.mp3"}}, Options{Resolve: known}},
		{"unknown kind", []Event{{Frame: 1, Kind: "banner"}}, Options{}},
		{"line without style", []Event{{Frame: 90, Kind: KindLine, Text: "$ ls"}}, Options{}},
		{"unknown style", []Event{{Frame: 90, Kind: KindLine, Text: "$ ls", Style: "bold"}}, Options{}},
		{"outro before last line", []Event{
			{Frame: 90, Kind: KindLine, Text: "$ ls", Style: StyleCmd},
			{Frame: 60, Kind: KindOutro},
		}, Options{}},
		{"outro before terminal start", []Event{
			{Frame: 0, Kind: KindTitle},
			{Frame: 75, Kind: KindTerminalStart},
			{Frame: 50, Kind: KindOutro},
		}, Options{}},
		{"terminal start before title", []Event{
			{Frame: 100, Kind: KindTitle},
			{Frame: 20, Kind: KindTerminalStart},
			{Frame: 40, Kind: KindLine, Text: "$ ls", Style: StyleCmd},
			{Frame: 300, Kind: KindOutro},
		}, Options{}},
		{"outro on the title", []Event{
			{Frame: 0, Kind: KindTitle},
			{Frame: 0, Kind: KindOutro},
		}, Options{}},
		{"line before terminal start", []Event{
			{Frame: 0, Kind: KindTitle},
			{Frame: 40, Kind: KindLine, Text: "$ ls", Style: StyleCmd},
			{Frame: 75, Kind: KindTerminalStart},
		}, Options{}},
		{"sound line before title", []Event{
			{Frame: 10, Kind: KindSoundLine, SoundID: "a.mp3"},
			{Frame: 20, Kind: KindTitle},
		}, Options{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl, err := Load(tt.events, tt.opts)
			if err == nil {
				t.Fatalf("expected error, got timeline with %d events", tl.Len())
			}
			var mErr *MalformedTimelineError
			if !errors.As(err, &mErr) {
				t.Fatalf("expected *MalformedTimelineError, got %T: %v", err, err)
			}
			t.Logf("rejected: %v", err)
		})
	}
}

func TestLoadSortsStable(t *testing.T) {
	events := []Event{
		{Frame: 740, Kind: KindOutro},
		{Frame: 90, Kind: KindLine, Text: "first", Style: StyleCmd},
		{Frame: 0, Kind: KindTitle},
		{Frame: 90, Kind: KindLine, Text: "second", Style: StyleDim},
		{Frame: 75, Kind: KindTerminalStart},
		{Frame: 90, Kind: KindLine, Text: "third", Style: StyleError},
	}

	tl, err := Load(events, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := tl.Events()
	wantFrames := []int{0, 75, 90, 90, 90, 740}
	for i, f := range wantFrames {
		if got[i].Frame != f {
			t.Errorf("event %d: expected frame %d, got %d", i, f, got[i].Frame)
		}
	}

	for i, text := range []string{"first", "second", "third"} {
		if got[2+i].Text != text {
			t.Errorf("co-incident event %d: expected %q, got %q", i, text, got[2+i].Text)
		}
	}

	// the input slice is left untouched
	if events[0].Kind != KindOutro {
		t.Errorf("Load reordered the caller's slice")
	}
}

func TestTimelineIsReadOnly(t *testing.T) {
	tl, err := Load(Demo().Events, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	evs := tl.Events()
	evs[0].Frame = 999
	if again := tl.Events(); again[0].Frame != 0 {
		t.Errorf("mutating Events() leaked into the timeline: frame %d", again[0].Frame)
	}
}

func TestTimelineQueries(t *testing.T) {
	tl, err := Load(Demo().Events, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if e, ok := tl.Find(KindTerminalStart); !ok || e.Frame != 75 {
		t.Errorf("expected terminal-start at 75, got %v (found=%v)", e.Frame, ok)
	}
	if _, ok := tl.Find("missing"); ok {
		t.Errorf("Find returned an event for an unknown kind")
	}
	if n := len(tl.TerminalEvents()); n != 15 {
		t.Errorf("expected 15 terminal events, got %d", n)
	}
	if n := len(tl.SoundLines()); n != 6 {
		t.Errorf("expected 6 sound lines, got %d", n)
	}
	if last, ok := tl.LastTerminalFrame(); !ok || last != 680 {
		t.Errorf("expected last terminal frame 680, got %d", last)
	}
}

func TestAudioChannelDefault(t *testing.T) {
	if ch := (Event{}).AudioChannel(); ch != DefaultChannel {
		t.Errorf("expected %q, got %q", DefaultChannel, ch)
	}
	if ch := (Event{Channel: "sfx"}).AudioChannel(); ch != "sfx" {
		t.Errorf("expected sfx, got %q", ch)
	}
}

func TestLoadAnchorErrorPointsAtEvent(t *testing.T) {
	_, err := Load([]Event{
		{Frame: 100, Kind: KindTitle},
		{Frame: 20, Kind: KindTerminalStart},
	}, Options{})
	var mErr *MalformedTimelineError
	if !errors.As(err, &mErr) {
		t.Fatalf("expected *MalformedTimelineError, got %v", err)
	}
	if mErr.Index != 1 || mErr.Frame != 20 {
		t.Errorf("expected event 1 at frame 20, got event %d at frame %d", mErr.Index, mErr.Frame)
	}
}

func TestLoadAcceptsLineWithoutTerminalStart(t *testing.T) {
	// the terminal opens on demand when no terminal-start is authored
	_, err := Load([]Event{
		{Frame: 0, Kind: KindTitle},
		{Frame: 30, Kind: KindLine, Text: "$ ls", Style: StyleCmd},
		{Frame: 200, Kind: KindOutro},
	}, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
}
