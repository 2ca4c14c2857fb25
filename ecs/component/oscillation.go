package component

import "time"

// Oscillation moves a platform horizontally around HomeX on a sine wave.
type Oscillation struct {
	HomeX     float64
	Amplitude float64
	Period    time.Duration
	Elapsed   time.Duration
}

var OscillationComponent = NewComponent[Oscillation]()
