package timeline

// Kind tags what an event does on the timeline.
type Kind string

const (
	KindTitle         Kind = "title"
	KindTerminalStart Kind = "terminal-start"
	KindLine          Kind = "line"
	KindSoundLine     Kind = "sound-line"
	KindOutro         Kind = "outro"
)

// Style selects how a terminal line is presented.
type Style string

const (
	StyleCmd    Style = "cmd"
	StyleDim    Style = "dim"
	StyleError  Style = "error"
	StyleCursor Style = "cursor"
)

// DefaultChannel is the audio channel used by sound lines that do not name one.
const DefaultChannel = "voice"

// Event is a single authored entry anchored to an absolute frame.
type Event struct {
	Frame   int    `yaml:"frame"`
	Kind    Kind   `yaml:"kind"`
	Text    string `yaml:"text,omitempty"`
	Style   Style  `yaml:"style,omitempty"`
	SoundID string `yaml:"sound,omitempty"`
	Label   string `yaml:"label,omitempty"`
	Channel string `yaml:"channel,omitempty"` // sound lines only; empty means DefaultChannel
}

// AudioChannel returns the channel a sound line plays on.
func (e Event) AudioChannel() string {
	if e.Channel == "" {
		return DefaultChannel
	}
	return e.Channel
}

// Scenario is the on-disk description of one rendered sequence
type Scenario struct {
	Version          string         `yaml:"version"`
	FPS              int            `yaml:"fps"`
	DurationInFrames int            `yaml:"durationInFrames"`
	FallbackDuration *int           `yaml:"fallbackDuration,omitempty"` // nil keeps the configured default
	Sounds           map[string]int `yaml:"sounds"`                     // sound id -> duration in frames
	Status           StatusTable    `yaml:"status"`
	Cards            Cards          `yaml:"cards"`
	Events           []Event        `yaml:"events"`
}

// Cards holds the copy and asset ids shown on the title and outro cards.
// Asset ids are opaque and resolved by the render pipeline.
type Cards struct {
	Title    Card   `yaml:"title"`
	Outro    Card   `yaml:"outro"`
	Portrait string `yaml:"portrait,omitempty"`
	Mascot   string `yaml:"mascot,omitempty"`
}

type Card struct {
	Kicker   string `yaml:"kicker,omitempty"`
	Heading  string `yaml:"heading"`
	Subtitle string `yaml:"subtitle,omitempty"`
	Link     string `yaml:"link,omitempty"`
	Handle   string `yaml:"handle,omitempty"`
}

// StatusTable maps frame ranges to the label shown in the terminal tab.
type StatusTable struct {
	Default string        `yaml:"default"`
	Ranges  []StatusRange `yaml:"ranges"`
}

// StatusRange covers [From, To). To <= From leaves the range open-ended.
type StatusRange struct {
	From  int    `yaml:"from"`
	To    int    `yaml:"to,omitempty"`
	Label string `yaml:"label"`
}
