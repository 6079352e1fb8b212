package main

import (
	"context"
	"time"

	"blinkcode-go/bus"
	"blinkcode-go/services/config"
	"blinkcode-go/services/console"
	"blinkcode-go/services/hal"
	"blinkcode-go/services/heartbeat"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(bootDelay)
	println("[main] boot", deviceID)

	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, deviceID)
	b := bus.NewBus(16)

	go hal.Run(ctx, b.NewConnection("hal"))
	if err := (&heartbeat.Service{}).Start(ctx, b.NewConnection("heartbeat")); err != nil {
		println("[main] heartbeat:", err.Error())
	}
	config.NewConfigService().Start(ctx, b.NewConnection("config"))

	port, err := consolePort()
	if err != nil {
		println("[main] console port:", err.Error())
		select {}
	}
	if err := console.New(b.NewConnection("console"), port).Run(ctx); err != nil {
		println("[main] console stopped:", err.Error())
	}
	select {}
}
