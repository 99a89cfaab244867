package main

import (
	"dscheirer.com/segcounter/counters"
	"dscheirer.com/segcounter/gpio"
	"dscheirer.com/segcounter/multiplex"
	"github.com/pkg/errors"
)

// tickHandler runs on the timer: re-arm and advance the counters, nothing
// else. No logging in here.
func tickHandler(bank *counters.Bank) gpio.TickHandler {
	return func(t gpio.Timer) {
		t.Rearm()
		bank.Tick()
	}
}

// setupDisplay is the one-time startup: outputs, a dark display, zeroed
// counters, the timer, then interrupts
func setupDisplay(rt runtimeConfig) (*multiplex.Scanner, error) {
	layout := rt.settings.layout()
	for _, pin := range layout.Pins() {
		if err := rt.platform.ConfigureOutput(pin); err != nil {
			return nil, errors.Wrapf(err, "configuring pin %d", pin)
		}
	}

	scanner := multiplex.NewScanner(rt.platform, rt.bank, layout,
		rt.settings.polarity(), rt.settings.GetDuration(sSettleDelay))
	scanner.Blank()

	rt.bank.Reset()

	period := rt.settings.GetDuration(sTickPeriod)
	if err := rt.platform.ConfigurePeriodicTimer(period, tickHandler(rt.bank)); err != nil {
		return nil, errors.Wrap(err, "arming the tick timer")
	}
	rt.platform.EnableInterrupts()

	rt.logger.Printf("Display ready: %d positions, tick %v, %.1fHz refresh",
		layout.Positions(), period,
		multiplex.RefreshRate(layout.Positions(), rt.settings.GetDuration(sSettleDelay)))
	return scanner, nil
}
