package gpio

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	pgpio "periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

type periphPlatform struct {
	*timers
	pins    map[int]pgpio.PinIO
	lastErr error
}

func openPeriph(clock clockwork.Clock) (*periphPlatform, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "loading periph drivers")
	}
	return &periphPlatform{
		timers: newTimers(clock),
		pins:   make(map[int]pgpio.PinIO),
	}, nil
}

func (pp *periphPlatform) ConfigureOutput(pin int) error {
	name := fmt.Sprintf("GPIO%d", pin)
	p := gpioreg.ByName(name)
	if p == nil {
		return errors.Errorf("periph: no pin %s", name)
	}
	if err := p.Out(pgpio.Low); err != nil {
		return errors.Wrapf(err, "periph: %s as output", name)
	}
	pp.pins[pin] = p
	return nil
}

// SetOutput can't report a failed write; the last one is kept for Close
func (pp *periphPlatform) SetOutput(pin int, level Level) {
	p, ok := pp.pins[pin]
	if !ok {
		return
	}
	if err := p.Out(pgpio.Level(level)); err != nil {
		pp.lastErr = errors.Wrapf(err, "periph: writing GPIO%d", pin)
	}
}

func (pp *periphPlatform) Close() error {
	pp.stopTimers()
	return pp.lastErr
}
