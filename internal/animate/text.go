package animate

import "math"

const (
	DefaultTypeSpeed   = 1.5 // characters per frame
	DefaultBlinkPeriod = 15  // frames per half cycle
	DefaultPulseRate   = 0.3 // radians per frame
)

// Typed is what a typed-text line shows on one frame.
type Typed struct {
	Shown string
	Count int  // revealed runes
	Caret bool // characters remain hidden
}

// Reveal returns the prefix of text typed at speed characters per frame since
// start. Characters are counted in runes.
func Reveal(text string, start int, speed float64, frame int) Typed {
	if speed <= 0 {
		speed = DefaultTypeSpeed
	}
	runes := []rune(text)

	elapsed := frame - start
	if elapsed < 0 {
		elapsed = 0
	}
	// the epsilon keeps n*speed from landing just under an integer
	count := int(math.Floor(float64(elapsed)*speed + 1e-9))
	if count > len(runes) {
		count = len(runes)
	}

	return Typed{
		Shown: string(runes[:count]),
		Count: count,
		Caret: count < len(runes),
	}
}

// RevealDoneFrame is the first frame at which text is fully typed.
func RevealDoneFrame(text string, start int, speed float64) int {
	if speed <= 0 {
		speed = DefaultTypeSpeed
	}
	n := len([]rune(text))
	return start + int(math.Ceil(float64(n)/speed-1e-9))
}

// CursorVisible is a square wave: on for period frames, off for period frames.
func CursorVisible(frame, period int) bool {
	if period <= 0 {
		period = DefaultBlinkPeriod
	}
	return floorDiv(frame, period)%2 == 0
}

// Pulse maps sin(frame*rate) onto [lo, hi].
func Pulse(frame int, rate, lo, hi float64) float64 {
	if rate == 0 {
		rate = DefaultPulseRate
	}
	return Interpolate(math.Sin(float64(frame)*rate), -1, 1, lo, hi)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
