// utility functions
package main

import (
	"sync"

	"dscheirer.com/segcounter/counters"
	"dscheirer.com/segcounter/gpio"
	"github.com/jonboulle/clockwork"
)

var wg sync.WaitGroup

type commChannels struct {
	quit     chan struct{}
	quitOnce *sync.Once
}

// stop tells every loop to exit, safe to call more than once
func (c commChannels) stop() {
	c.quitOnce.Do(func() {
		close(c.quit)
	})
}

type runtimeConfig struct {
	settings configSettings
	clock    clockwork.Clock
	comms    commChannels
	platform gpio.Platform
	bank     *counters.Bank
	logger   flogger
}

func initCommChannels() commChannels {
	return commChannels{
		quit:     make(chan struct{}),
		quitOnce: &sync.Once{},
	}
}

func initRuntime(settings configSettings, clock clockwork.Clock, platform gpio.Platform) runtimeConfig {
	return runtimeConfig{
		settings: settings,
		clock:    clock,
		comms:    initCommChannels(),
		platform: platform,
		bank:     counters.NewBank(counters.DefaultSize),
		logger:   &ThreadLogger{name: "Main"},
	}
}
