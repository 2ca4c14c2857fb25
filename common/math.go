package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Wrap folds x into [0, width). Non-positive widths return x unchanged.
func Wrap(x, width float64) float64 {
	if width <= 0 {
		return x
	}
	x = math.Mod(x, width)
	if x < 0 {
		x += width
	}
	return x
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
