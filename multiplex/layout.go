package multiplex

import (
	"time"

	"dscheirer.com/segcounter/gpio"
	"dscheirer.com/segcounter/sevenseg"
	"github.com/pkg/errors"
)

const (
	// DigitsPerBlock is the number of positions showing one counter
	DigitsPerBlock = 4
	// DisplayedBlocks is the number of counters on the display
	DisplayedBlocks = 3
	// IndicatorCounter is the counter whose parity drives the indicator
	IndicatorCounter = 1
	// MinRefreshRate is the slowest full scan, in Hz, that doesn't flicker
	MinRefreshRate = 50.0

	// NoPin marks an optional line that isn't wired
	NoPin = -1
)

// Layout maps the display onto output pins
type Layout struct {
	// Segments are the shared segment lines A..G
	Segments [sevenseg.Segments]int
	// Dot is the decimal point line, always driven off
	Dot int
	// Selects has one line per position, block by block. Inside a block
	// place 0 is the ones digit, the lowest physical offset.
	Selects []int
	// Indicator is the parity lamp
	Indicator int
}

// Positions is the number of physical digit positions
func (l Layout) Positions() int {
	return len(l.Selects)
}

// Blocks is the number of counters the layout shows
func (l Layout) Blocks() int {
	return len(l.Selects) / DigitsPerBlock
}

// Pins lists every wired pin, for configuring outputs
func (l Layout) Pins() []int {
	pins := make([]int, 0, len(l.Segments)+len(l.Selects)+2)
	pins = append(pins, l.Segments[:]...)
	if l.Dot != NoPin {
		pins = append(pins, l.Dot)
	}
	pins = append(pins, l.Selects...)
	if l.Indicator != NoPin {
		pins = append(pins, l.Indicator)
	}
	return pins
}

// Validate checks the select count and that no pin is wired twice
func (l Layout) Validate() error {
	if len(l.Selects) != DisplayedBlocks*DigitsPerBlock {
		return errors.Errorf("need %d select pins, have %d", DisplayedBlocks*DigitsPerBlock, len(l.Selects))
	}
	seen := make(map[int]bool)
	for _, pin := range l.Pins() {
		if pin < 0 {
			return errors.Errorf("bad pin number %d", pin)
		}
		if seen[pin] {
			return errors.Errorf("pin %d is wired twice", pin)
		}
		seen[pin] = true
	}
	return nil
}

// Polarity says which lines are asserted by driving them low
type Polarity struct {
	SegmentActiveLow   bool
	SelectActiveLow    bool
	IndicatorActiveLow bool
}

// ReferencePolarity is the original board: segments and selects sink
// current, the indicator is driven high
var ReferencePolarity = Polarity{SegmentActiveLow: true, SelectActiveLow: true}

func drive(active bool, activeLow bool) gpio.Level {
	return gpio.Level(active != activeLow)
}

// RefreshRate is how many full passes over positions happen per second
// when every position is held for settle
func RefreshRate(positions int, settle time.Duration) float64 {
	if positions <= 0 || settle <= 0 {
		return 0
	}
	return float64(time.Second) / float64(time.Duration(positions)*settle)
}
