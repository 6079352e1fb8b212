//go:build rp2040

package main

import (
	"time"

	"blinkcode-go/services/console"
)

const (
	deviceID  = "pico"
	bootDelay = 2 * time.Second
	baud      = 115_200
)

func consolePort() (console.Port, error) {
	return console.NewUARTPort(baud)
}
