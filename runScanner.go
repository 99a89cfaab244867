package main

import "dscheirer.com/segcounter/multiplex"

func startScanner(rt runtimeConfig, scanner *multiplex.Scanner) {
	rt.logger = &ThreadLogger{name: "Scanner"}
	wg.Add(1)
	go runScanner(rt, scanner)
}

// runScanner is the only non-timer loop on the device, it refreshes the
// display until told to quit
func runScanner(rt runtimeConfig, scanner *multiplex.Scanner) {
	defer wg.Done()
	defer func() {
		rt.logger.Println("Exiting runScanner")
	}()

	rt.logger.Println("Starting display scan")
	scanner.Run(rt.comms.quit)
}
