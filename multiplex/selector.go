package multiplex

import (
	"time"

	"dscheirer.com/segcounter/gpio"
)

// Outputs is the part of the platform the display drives
type Outputs interface {
	SetOutput(pin int, level gpio.Level)
	BusyWait(d time.Duration)
}

// Selector makes exactly one digit position live
type Selector struct {
	out       Outputs
	pins      []int
	activeLow bool
}

// NewSelector drives pins, one select line per position
func NewSelector(out Outputs, pins []int, activeLow bool) *Selector {
	return &Selector{out: out, pins: pins, activeLow: activeLow}
}

// Select turns every other position off before turning index on, so two
// positions are never live together. Blanking the segments first is up to
// the caller.
func (s *Selector) Select(index int) {
	for i, pin := range s.pins {
		if i != index {
			s.out.SetOutput(pin, drive(false, s.activeLow))
		}
	}
	if index >= 0 && index < len(s.pins) {
		s.out.SetOutput(s.pins[index], drive(true, s.activeLow))
	}
}

// None deselects every position
func (s *Selector) None() {
	s.Select(-1)
}
