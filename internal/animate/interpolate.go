// Package animate holds the frame-pure animators. Every function here maps an
// absolute frame number and static parameters to a value, so any frame can be
// sampled on its own, in any order.
package animate

// Interpolate maps x from [inMin, inMax] onto [outMin, outMax], clamping on
// both sides. A degenerate input window acts as a step at inMin.
func Interpolate(x, inMin, inMax, outMin, outMax float64) float64 {
	if inMax <= inMin {
		if x < inMin {
			return outMin
		}
		return outMax
	}
	if x <= inMin {
		return outMin
	}
	if x >= inMax {
		return outMax
	}
	t := (x - inMin) / (inMax - inMin)
	return lerp(outMin, outMax, t)
}

// Frames is Interpolate over an integer frame window.
func Frames(frame, start, end int, from, to float64) float64 {
	return Interpolate(float64(frame), float64(start), float64(end), from, to)
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
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
