package main

import (
	"fmt"
	"sync"
	"time"

	"dscheirer.com/segcounter/gpio"
	"dscheirer.com/segcounter/multiplex"
	"dscheirer.com/segcounter/sevenseg"
	"github.com/jonboulle/clockwork"
	"github.com/nsf/termbox-go"
)

// frameLatch watches the output lines and remembers what each position
// showed the last time it was held, the way an eye would
type frameLatch struct {
	layout   multiplex.Layout
	polarity multiplex.Polarity
	levels   map[int]gpio.Level
	frame    []sevenseg.Pattern
}

func newFrameLatch(layout multiplex.Layout, polarity multiplex.Polarity) *frameLatch {
	return &frameLatch{
		layout:   layout,
		polarity: polarity,
		levels:   make(map[int]gpio.Level),
		frame:    make([]sevenseg.Pattern, layout.Positions()),
	}
}

func (fl *frameLatch) SetOutput(pin int, level gpio.Level) {
	fl.levels[pin] = level
}

func (fl *frameLatch) active(pin int, activeLow bool) bool {
	level, ok := fl.levels[pin]
	return ok && bool(level) != activeLow
}

// hold latches the selected position, true when it's the last one
func (fl *frameLatch) hold() bool {
	pos := -1
	for i, pin := range fl.layout.Selects {
		if fl.active(pin, fl.polarity.SelectActiveLow) {
			pos = i
			break
		}
	}
	if pos < 0 {
		return false
	}

	var p sevenseg.Pattern
	for seg, pin := range fl.layout.Segments {
		p[seg] = fl.active(pin, fl.polarity.SegmentActiveLow)
	}
	fl.frame[pos] = p
	return pos == len(fl.frame)-1
}

// BusyWait latches without waiting, for driving a scanner directly
func (fl *frameLatch) BusyWait(d time.Duration) {
	fl.hold()
}

func (fl *frameLatch) indicator() bool {
	if fl.layout.Indicator == multiplex.NoPin {
		return false
	}
	return fl.active(fl.layout.Indicator, fl.polarity.IndicatorActiveLow)
}

// rows draws every block, most significant digit on the left
func (fl *frameLatch) rows() []string {
	var digits []sevenseg.Pattern
	for block := 0; block < fl.layout.Blocks(); block++ {
		for place := multiplex.DigitsPerBlock - 1; place >= 0; place-- {
			digits = append(digits, fl.frame[block*multiplex.DigitsPerBlock+place])
		}
		// gap between blocks
		digits = append(digits, sevenseg.Pattern{})
	}
	rows := sevenseg.Render(digits)

	lamp := "( )"
	if fl.indicator() {
		lamp = "(*)"
	}
	rows = append(rows, "", fmt.Sprintf("indicator %s   ctrl-c or q to quit", lamp))
	return rows
}

// minimum time between screen redraws
const dTermRedraw = 50 * time.Millisecond

// termView passes everything to the real platform and draws what the
// display would look like in the terminal
type termView struct {
	gpio.Platform
	mu       sync.Mutex
	latch    *frameLatch
	clock    clockwork.Clock
	lastDraw time.Time
	logger   flogger
}

func openTermView(platform gpio.Platform, layout multiplex.Layout, polarity multiplex.Polarity, clock clockwork.Clock) (*termView, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	termbox.Flush()

	return &termView{
		Platform: platform,
		latch:    newFrameLatch(layout, polarity),
		clock:    clock,
		logger:   &ThreadLogger{name: "TermView"},
	}, nil
}

func (tv *termView) SetOutput(pin int, level gpio.Level) {
	tv.Platform.SetOutput(pin, level)
	tv.mu.Lock()
	tv.latch.SetOutput(pin, level)
	tv.mu.Unlock()
}

func (tv *termView) BusyWait(d time.Duration) {
	tv.mu.Lock()
	full := tv.latch.hold()
	if full && tv.clock.Now().Sub(tv.lastDraw) >= dTermRedraw {
		tv.lastDraw = tv.clock.Now()
		tv.draw()
	}
	tv.mu.Unlock()

	tv.Platform.BusyWait(d)
}

func (tv *termView) draw() {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	for y, row := range tv.latch.rows() {
		for x, r := range []rune(row) {
			termbox.SetCell(x+1, y+1, r, termbox.ColorRed|termbox.AttrBold, termbox.ColorDefault)
		}
	}
	termbox.Flush()
}

// watchKeys calls stop on ctrl-c or q, and returns when the view closes
func (tv *termView) watchKeys(stop func()) {
	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventKey:
			if ev.Key == termbox.KeyCtrlC || ev.Ch == 'q' {
				tv.logger.Println("Quit from the keyboard")
				stop()
				return
			}
		case termbox.EventInterrupt, termbox.EventError:
			return
		}
	}
}

func (tv *termView) Close() error {
	termbox.Interrupt()
	termbox.Close()
	return tv.Platform.Close()
}
