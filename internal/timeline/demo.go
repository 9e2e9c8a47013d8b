package timeline

// Demo returns the built-in sound pack preview: a title card, a scripted
// terminal session with six sound callouts and an outro card, at 30 fps.
func Demo() *Scenario {
	fallback := 50
	return &Scenario{
		Version:          "1.0",
		FPS:              30,
		DurationInFrames: 840,
		FallbackDuration: &fallback,
		Sounds: map[string]int{
			"Greeting_SomethingToSay.mp3":  80,
			"Acknowledge_MakeItHappen.mp3": 40,
			"Greeting_GabagoolOvaHere.mp3": 80,
			"Acknowledge_DulyNoted.mp3":    40,
			"Complete_Oooooh.mp3":          60,
			"Error_OofMarone.mp3":          45,
		},
		Status: StatusTable{
			Default: "my-project: ready",
			Ranges: []StatusRange{
				{From: 170, To: 530, Label: "my-project: working"},
				{From: 330, To: 390, Label: "● my-project: needs approval"},
				{From: 530, To: 620, Label: "● my-project: done"},
				{From: 620, To: 740, Label: "my-project: working"},
				{From: 660, Label: "● my-project: error"},
			},
		},
		Cards: Cards{
			Title: Card{
				Kicker:   "sound pack",
				Heading:  "The Sopranos",
				Subtitle: "HBO",
				Link:     "github.com/PeonPing/peon-ping",
				Handle:   "@PeonPing",
			},
			Outro: Card{
				Kicker:   "peon-ping",
				Heading:  "Stop babysitting your terminal",
				Subtitle: "60+ sound packs available",
				Link:     "github.com/PeonPing/peon-ping",
				Handle:   "@PeonPing",
			},
			Portrait: "peon-portrait.gif",
			Mascot:   "peon-render.png",
		},
		Events: []Event{
			{Frame: 0, Kind: KindTitle},
			{Frame: 75, Kind: KindTerminalStart},
			{Frame: 90, Kind: KindLine, Text: "$ claude", Style: StyleCmd},
			{Frame: 120, Kind: KindSoundLine, Text: `🔊 "Something you wanna say to me?"`, SoundID: "Greeting_SomethingToSay.mp3", Label: "— session started"},
			{Frame: 170, Kind: KindLine, Text: "> Refactor the authentication module", Style: StyleCmd},
			{Frame: 210, Kind: KindLine, Text: "  Claude is working...", Style: StyleDim},
			{Frame: 240, Kind: KindSoundLine, Text: `🔊 "Make it happen"`, SoundID: "Acknowledge_MakeItHappen.mp3", Label: "— reading files"},
			{Frame: 290, Kind: KindLine, Text: "  [you switch to Slack]", Style: StyleDim},
			{Frame: 330, Kind: KindSoundLine, Text: `🔊 "Gabagool? Ova here!"`, SoundID: "Greeting_GabagoolOvaHere.mp3", Label: "— permission needed"},
			{Frame: 390, Kind: KindLine, Text: "  [you hear it, switch back, approve]", Style: StyleDim},
			{Frame: 430, Kind: KindLine, Text: "  Claude continues working...", Style: StyleDim},
			{Frame: 470, Kind: KindSoundLine, Text: `🔊 "Duly noted"`, SoundID: "Acknowledge_DulyNoted.mp3", Label: "— analyzing code"},
			{Frame: 530, Kind: KindSoundLine, Text: `🔊 "Ohhh!"`, SoundID: "Complete_Oooooh.mp3", Label: "— task complete"},
			{Frame: 580, Kind: KindLine, Text: "> ", Style: StyleCursor},
			{Frame: 620, Kind: KindLine, Text: "> Deploy to production --force", Style: StyleCmd},
			{Frame: 660, Kind: KindLine, Text: "  Error: Permission denied", Style: StyleError},
			{Frame: 680, Kind: KindSoundLine, Text: `🔊 "Oof, marone!"`, SoundID: "Error_OofMarone.mp3", Label: "— error"},
			{Frame: 740, Kind: KindOutro},
		},
	}
}
