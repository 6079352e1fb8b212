// Command pico-hal-main is a bring-up check for a board: it runs the HAL
// alone, plays SOS on the onboard LED and prints bus traffic and memory.
package main

import (
	"context"
	"runtime"
	"time"

	"blinkcode-go/bus"
	"blinkcode-go/services/hal"
	"blinkcode-go/types"
)

func printTopicWith(prefix string, t bus.Topic) {
	println(prefix, t.String())
}

func main() {
	time.Sleep(3 * time.Second)
	ctx := context.Background()

	println("[main] bootstrapping bus …")
	b := bus.NewBus(8)
	uiConn := b.NewConnection("ui")

	println("[main] subscribing to hal/# for diagnostics …")
	mon := uiConn.Subscribe(bus.T("hal", "#"))
	go func() {
		for m := range mon.Channel() {
			printTopicWith("[monitor] <-", m.Topic)
		}
	}()

	println("[main] starting hal.Run …")
	go hal.Run(ctx, b.NewConnection("hal"))

	cfg := types.HALConfig{
		Devices: []types.HALDevice{{
			ID:     "led0",
			Type:   "gpio_led",
			Params: types.LEDParams{Pin: 25},
		}},
	}
	println("[main] publishing config/hal …")
	uiConn.Publish(uiConn.NewMessage(bus.T("config", "hal"), cfg, true))
	time.Sleep(250 * time.Millisecond)

	rctx, cancel := context.WithTimeout(ctx, time.Second)
	req := uiConn.NewMessage(hal.Control("led0", "blink"), types.LEDBlink{
		Encoding: types.EncodingText,
		Text:     "sos",
		UnitMs:   150,
	}, false)
	if reply, err := uiConn.RequestWait(rctx, req); err != nil {
		println("[main] blink error:", err.Error())
	} else if r, ok := reply.Payload.(types.ErrorReply); ok {
		println("[main] blink rejected:", r.Error)
	}
	cancel()

	for {
		printMem()
		time.Sleep(5 * time.Second)
	}
}

// printMem prints a compact snapshot of TinyGo runtime memory stats.
// Uses builtin println to avoid fmt overhead/allocations.
func printMem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	println(
		"[mem]",
		"alloc:", uint32(ms.Alloc),
		"heapInuse:", uint32(ms.HeapInuse),
		"heapSys:", uint32(ms.HeapSys),
		"mallocs:", uint32(ms.Mallocs),
		"frees:", uint32(ms.Frees),
	)
}
