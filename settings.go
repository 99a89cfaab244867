package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"runtime"
	"sort"
	"strings"
	"time"

	"dscheirer.com/segcounter/gpio"
	"dscheirer.com/segcounter/multiplex"
	"dscheirer.com/segcounter/sevenseg"
	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

// setting names
const (
	sGPIODriver         = "gpio_driver"
	sTickPeriod         = "tickPeriod"
	sSettleDelay        = "settleDelay"
	sSegmentPins        = "segmentPins"
	sDotPin             = "dotPin"
	sSelectPins         = "selectPins"
	sIndicatorPin       = "indicatorPin"
	sSegmentActiveLow   = "segmentActiveLow"
	sSelectActiveLow    = "selectActiveLow"
	sIndicatorActiveLow = "indicatorActiveLow"
	sLogFile            = "logFile"
	sDebug              = "debug"
	sTermView           = "termView"
)

const defaultConfigFile = "/etc/default/segcounter/segcounter.conf"

// keep settings generic, type-convert on the fly
type configSettings struct {
	settings map[string]interface{}
}

func defaultSettings() configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	// 125kHz timer clock reloaded every 125 counts
	s[sTickPeriod] = time.Millisecond
	// 5ms is like watching a CRT on a home video, 1ms looks solid
	s[sSettleDelay] = time.Millisecond
	// BCM numbering
	s[sSegmentPins] = []int{2, 3, 4, 5, 6, 7, 8}
	s[sDotPin] = 9
	s[sSelectPins] = []int{
		10, 11, 12, 13,
		14, 15, 16, 17,
		18, 19, 20, 21,
	}
	s[sIndicatorPin] = 22
	s[sSegmentActiveLow] = true
	s[sSelectActiveLow] = true
	s[sIndicatorActiveLow] = false
	s[sLogFile] = "/var/log/segcounter.log"
	s[sDebug] = false

	// off the pi we simulate and draw in the terminal
	onPi := runtime.GOARCH == "arm" || runtime.GOARCH == "arm64"
	if onPi {
		s[sGPIODriver] = gpio.DriverRPIO
	} else {
		s[sGPIODriver] = gpio.DriverSim
	}
	s[sTermView] = !onPi

	return configSettings{settings: s}
}

func parseIntArray(data []byte, key string) ([]int, error) {
	ret := make([]int, 0)
	var itemErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if itemErr != nil {
			return
		}
		if dataType != jsonparser.Number {
			itemErr = errors.Errorf("%s: %q is not a number", key, string(value))
			return
		}
		v, err := jsonparser.ParseInt(value)
		if err != nil {
			itemErr = errors.Wrapf(err, "%s", key)
			return
		}
		ret = append(ret, int(v))
	}, key)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", key)
	}
	return ret, itemErr
}

func (s configSettings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		if _, _, _, err := jsonparser.Get(data, k); err != nil {
			continue
		}

		var err error
		switch initVal.(type) {
		case int:
			var v int64
			v, err = jsonparser.GetInt(data, k)
			if err == nil {
				s.settings[k] = int(v)
			}
		case []int:
			var v []int
			v, err = parseIntArray(data, k)
			if err == nil {
				s.settings[k] = v
			}
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try "true" and "false"
				str, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(str) {
				case "true":
					bVal, err = true, nil
				case "false":
					bVal, err = false, nil
				}
			}
			if err == nil {
				s.settings[k] = bVal
			}
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var d time.Duration
				d, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = d
				}
			}
		case string:
			s.settings[k], err = jsonparser.GetString(data, k)
		default:
			err = fmt.Errorf("bad type: %T", initVal)
		}
		if err != nil {
			return errors.Wrapf(err, "setting %s", k)
		}
	}
	return nil
}

// initSettings parses the command line and reads the config file. A missing
// file at the default path means "use the defaults".
func initSettings(args []string) (configSettings, error) {
	s := defaultSettings()

	flags := flag.NewFlagSet("segcounter", flag.ContinueOnError)
	configFile := flags.String("config", defaultConfigFile, "config file path")
	driver := flags.String("driver", "", "gpio driver: rpio, periph or sim")
	if err := flags.Parse(args); err != nil {
		return s, err
	}

	data, err := ioutil.ReadFile(*configFile)
	switch {
	case err == nil:
		log.Printf("Reading configuration from '%s'", *configFile)
		if err := s.settingsFromJSON(data); err != nil {
			return s, err
		}
	case *configFile == defaultConfigFile:
		log.Printf("No configuration at '%s', using defaults", *configFile)
	default:
		return s, errors.Wrapf(err, "could not load conf file '%s'", *configFile)
	}

	if *driver != "" {
		s.settings[sGPIODriver] = *driver
	}
	return s, nil
}

func (s configSettings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s configSettings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s configSettings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s configSettings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	default:
		return 0
	}
}

func (s configSettings) GetInts(key string) []int {
	switch v := s.settings[key].(type) {
	case []int:
		return v
	default:
		return nil
	}
}

func (s configSettings) layout() multiplex.Layout {
	var segments [sevenseg.Segments]int
	for i := range segments {
		segments[i] = multiplex.NoPin
	}
	copy(segments[:], s.GetInts(sSegmentPins))

	return multiplex.Layout{
		Segments:  segments,
		Dot:       s.GetInt(sDotPin),
		Selects:   s.GetInts(sSelectPins),
		Indicator: s.GetInt(sIndicatorPin),
	}
}

func (s configSettings) polarity() multiplex.Polarity {
	return multiplex.Polarity{
		SegmentActiveLow:   s.GetBool(sSegmentActiveLow),
		SelectActiveLow:    s.GetBool(sSelectActiveLow),
		IndicatorActiveLow: s.GetBool(sIndicatorActiveLow),
	}
}

// validate catches a bad wiring or timing before any pin is touched
func (s configSettings) validate() error {
	if n := len(s.GetInts(sSegmentPins)); n != sevenseg.Segments {
		return errors.Errorf("need %d segment pins, have %d", sevenseg.Segments, n)
	}
	layout := s.layout()
	if err := layout.Validate(); err != nil {
		return err
	}
	if tick := s.GetDuration(sTickPeriod); tick <= 0 {
		return errors.Errorf("bad %s %v", sTickPeriod, tick)
	}
	settle := s.GetDuration(sSettleDelay)
	if settle <= 0 {
		return errors.Errorf("bad %s %v", sSettleDelay, settle)
	}
	if rate := multiplex.RefreshRate(layout.Positions(), settle); rate < multiplex.MinRefreshRate {
		return errors.Errorf("%s %v refreshes at %.1fHz, below %.0fHz", sSettleDelay, settle, rate, multiplex.MinRefreshRate)
	}
	return nil
}

func (s configSettings) Dump() {
	keys := make([]string, 0, len(s.settings))
	for k := range s.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		log.Printf("%s : %T: %v\n", k, s.settings[k], s.settings[k])
	}
}
