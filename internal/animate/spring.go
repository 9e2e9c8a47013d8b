package animate

import "math"

// Spring is a damped harmonic oscillator pulled from 0 towards 1. Damping at
// 2*sqrt(Stiffness*Mass) is critical; lower values overshoot a little.
type Spring struct {
	Damping   float64
	Stiffness float64 // 100 when zero
	Mass      float64 // 1 when zero
	Delay     int     // frames added to the appear frame
}

const (
	defaultStiffness = 100
	defaultMass      = 1
	defaultFPS       = 30
)

func (s Spring) params() (k, m, c float64) {
	k, m, c = s.Stiffness, s.Mass, s.Damping
	if k <= 0 {
		k = defaultStiffness
	}
	if m <= 0 {
		m = defaultMass
	}
	if c < 0 {
		c = 0
	}
	return k, m, c
}

// Ratio returns the damping ratio zeta.
func (s Spring) Ratio() float64 {
	k, m, c := s.params()
	return c / (2 * math.Sqrt(k*m))
}

// MaxOvershoot returns how far past 1 the progress can ever go.
func (s Spring) MaxOvershoot() float64 {
	z := s.Ratio()
	if z >= 1 {
		return 0
	}
	if z <= 0 {
		return 1
	}
	return math.Exp(-z * math.Pi / math.Sqrt(1-z*z))
}

// Progress returns the spring position at frame for an element that appears at
// appear. It is 0 before appear+Delay and approaches 1 afterwards.
func (s Spring) Progress(frame, appear, fps int) float64 {
	local := frame - appear - s.Delay
	if local <= 0 {
		return 0
	}
	if fps <= 0 {
		fps = defaultFPS
	}

	k, m, c := s.params()
	t := float64(local) / float64(fps)
	w0 := math.Sqrt(k / m)
	z := c / (2 * math.Sqrt(k*m))

	// y is the displacement from the target, starting at -1 with zero velocity.
	var y float64
	switch {
	case z < 1:
		wd := w0 * math.Sqrt(1-z*z)
		y = math.Exp(-z*w0*t) * (-math.Cos(wd*t) - (z*w0/wd)*math.Sin(wd*t))
	case z == 1:
		y = math.Exp(-w0*t) * (-1 - w0*t)
	default:
		root := math.Sqrt(z*z - 1)
		r1 := -w0 * (z - root)
		r2 := -w0 * (z + root)
		a := r2 / (r1 - r2)
		b := -1 - a
		y = a*math.Exp(r1*t) + b*math.Exp(r2*t)
	}

	p := 1 + y
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 1
	}
	return p
}

// Entrance is the visual state derived from a spring progress value.
type Entrance struct {
	Opacity float64
	OffsetY float64
	Scale   float64
}

// Enter maps progress to opacity, a vertical offset that travels from
// fromOffset to 0, and a scale that travels from fromScale to 1.
func Enter(progress, fromOffset, fromScale float64) Entrance {
	return Entrance{
		Opacity: clamp01(progress),
		OffsetY: lerp(fromOffset, 0, progress),
		Scale:   lerp(fromScale, 1, progress),
	}
}
