package relay

import "time"

const pulseGap = 100 * time.Millisecond

// Indicator is the on-board liveness LED.
type Indicator struct {
	line  Line
	gap   time.Duration
	sleep func(time.Duration)
}

func NewIndicator(line Line) *Indicator {
	return &Indicator{line: line, gap: pulseGap, sleep: time.Sleep}
}

// Set lights the LED when on is true. Errors are ignored: the LED is cosmetic.
func (i *Indicator) Set(on bool) {
	if i == nil || i.line == nil {
		return
	}
	_ = i.line.Drive(Level(on))
}

// Pulse blinks the LED off and back on.
func (i *Indicator) Pulse() {
	if i == nil || i.line == nil {
		return
	}
	i.Set(false)
	i.sleep(i.gap)
	i.Set(true)
}
