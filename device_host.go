//go:build !rp2040

package main

import (
	"os"

	"blinkcode-go/services/console"
)

const (
	deviceID  = "host"
	bootDelay = 0
)

func consolePort() (console.Port, error) {
	return console.NewStreamPort(os.Stdin, os.Stdout), nil
}
