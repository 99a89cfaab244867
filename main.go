package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"dscheirer.com/segcounter/gpio"
	"github.com/jonboulle/clockwork"
)

// segcounter -config={config file} [-driver=rpio|periph|sim]

func main() {
	// read config information
	settings, err := initSettings(os.Args[1:])
	if err != nil {
		log.Fatal(err.Error())
	}

	// the terminal view owns the console
	useTermView := settings.GetBool(sTermView)
	logFile := setupLogging(settings, !useTermView)
	defer logFile.Close()

	log.Println(">>> Settings <<<")
	settings.Dump()

	if err := settings.validate(); err != nil {
		log.Fatalf("Bad configuration: %s", err.Error())
	}

	clock := clockwork.NewRealClock()
	platform, err := gpio.Open(settings.GetString(sGPIODriver), clock)
	if err != nil {
		log.Fatalf("Could not open gpio: %s", err.Error())
	}
	if settings.GetBool(sDebug) {
		if lp, ok := platform.(*gpio.LogPlatform); ok {
			lp.SetVerbose(true)
		}
	}

	var view *termView
	if useTermView {
		view, err = openTermView(platform, settings.layout(), settings.polarity(), clock)
		if err != nil {
			log.Fatalf("Could not open the terminal view: %s", err.Error())
		}
		platform = view
	}
	defer platform.Close()

	rt := initRuntime(settings, clock, platform)
	rt.logger = &ThreadLogger{name: "Setup"}

	scanner, err := setupDisplay(rt)
	if err != nil {
		platform.Close()
		log.Fatalf("Setup failed: %s", err.Error())
	}

	// the device never stops on its own, signals are for running it by hand
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Printf("Got %v, stopping", sig)
			rt.comms.stop()
		case <-rt.comms.quit:
		}
	}()
	if view != nil {
		go view.watchKeys(rt.comms.stop)
	}

	startScanner(rt, scanner)
	wg.Wait()
}
