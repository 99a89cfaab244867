// Package multiplex drives a bank of seven segment digits that share
// their segment lines, one position at a time.
package multiplex

import (
	"time"

	"dscheirer.com/segcounter/sevenseg"
)

// Source hands the scanner the latest counter values
type Source interface {
	Value(i int) int
}

// Scanner refreshes the display from a Source. It owns the segment, select
// and indicator lines; nothing else may drive them while it runs.
type Scanner struct {
	out      Outputs
	source   Source
	layout   Layout
	polarity Polarity
	settle   time.Duration
	selector *Selector
}

// NewScanner holds each position lit for settle before moving on
func NewScanner(out Outputs, source Source, layout Layout, polarity Polarity, settle time.Duration) *Scanner {
	return &Scanner{
		out:      out,
		source:   source,
		layout:   layout,
		polarity: polarity,
		settle:   settle,
		selector: NewSelector(out, layout.Selects, polarity.SelectActiveLow),
	}
}

// RenderBlock writes value, 0-9999, to the four positions of block, ones
// digit first. Leading zeros are shown.
func (s *Scanner) RenderBlock(block int, value int) {
	if value < 0 {
		value = 0
	}
	for place := 0; place < DigitsPerBlock; place++ {
		// stale segments would ghost onto the next position
		s.blankSegments()
		s.selector.Select(block*DigitsPerBlock + place)

		digit := value % 10
		value /= 10
		s.drivePattern(sevenseg.Digit(digit))

		s.out.BusyWait(s.settle)
	}
}

// ScanOnce renders every block from the current counters then updates the
// indicator from the parity of IndicatorCounter
func (s *Scanner) ScanOnce() {
	for block := 0; block < s.layout.Blocks(); block++ {
		s.RenderBlock(block, s.source.Value(block))
	}
	if s.layout.Indicator != NoPin {
		odd := s.source.Value(IndicatorCounter)%2 == 1
		s.out.SetOutput(s.layout.Indicator, drive(odd, s.polarity.IndicatorActiveLow))
	}
}

// Run scans until quit is closed, then blanks the display
func (s *Scanner) Run(quit <-chan struct{}) {
	for {
		select {
		case <-quit:
			s.Blank()
			return
		default:
		}
		s.ScanOnce()
	}
}

// Blank turns off every segment, position and the indicator
func (s *Scanner) Blank() {
	s.blankSegments()
	s.selector.None()
	if s.layout.Indicator != NoPin {
		s.out.SetOutput(s.layout.Indicator, drive(false, s.polarity.IndicatorActiveLow))
	}
}

func (s *Scanner) blankSegments() {
	for _, pin := range s.layout.Segments {
		s.out.SetOutput(pin, drive(false, s.polarity.SegmentActiveLow))
	}
}

func (s *Scanner) drivePattern(p sevenseg.Pattern) {
	for seg, on := range p {
		s.out.SetOutput(s.layout.Segments[seg], drive(on, s.polarity.SegmentActiveLow))
	}
	// no decimal point support, keep it dark
	if s.layout.Dot != NoPin {
		s.out.SetOutput(s.layout.Dot, drive(false, s.polarity.SegmentActiveLow))
	}
}
