// Package scanner classifies keystroke bursts as hardware barcode-scanner
// input versus human typing. Scanners send characters in a rapid uniform
// burst, so an inter-keystroke delta under the threshold combined with an
// all-digit value is treated as scanner input. The guess is advisory: a
// selection still requires an explicit Enter or row pick.
package scanner

import "time"

// DefaultThreshold is the inter-keystroke delta below which input is
// attributed to a scanner. Tunable via config; 50ms matches typical readers.
const DefaultThreshold = 50 * time.Millisecond

// Detector tracks keystroke cadence for one input field
type Detector struct {
	threshold time.Duration
	lastKey   time.Time
	active    bool
}

// New creates a detector with the given threshold; zero means DefaultThreshold
func New(threshold time.Duration) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Detector{threshold: threshold}
}

// Observe records one change event with its wall-clock time and the
// accumulated text value, and returns whether scanner mode is active.
// Once latched, scanner mode persists until Reset.
func (d *Detector) Observe(now time.Time, value string) bool {
	prev := d.lastKey
	d.lastKey = now

	if !d.active && !prev.IsZero() && now.Sub(prev) < d.threshold && allDigits(value) {
		d.active = true
	}
	return d.active
}

// Active reports whether scanner mode is currently latched
func (d *Detector) Active() bool {
	return d.active
}

// Reset clears scanner mode and cadence history. Called when the query is
// cleared or a selection is made.
func (d *Detector) Reset() {
	d.active = false
	d.lastKey = time.Time{}
}

// allDigits reports whether s is non-empty and consists only of ASCII digits
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
