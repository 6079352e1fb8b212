package core

// ---- GPIO handles ----

type GPIOHandle interface {
	Number() int
	ConfigureOutput(initial bool) error
	Set(bool)
	Get() bool
	Toggle()
}

// ---- Timer slots ----

// TimerSlots is the shared countdown service plus slot ownership.
type TimerSlots interface {
	Set(slot int, ms uint32)
	IsDone(slot int) bool
	Claim(owner string) (int, error)
	Release(owner string, slot int)
}

// ---- Unified registry interface ----

type ResourceRegistry interface {
	// Native GPIO.
	ClaimGPIO(devID string, pin int) (GPIOHandle, error)
	ReleaseGPIO(devID string, pin int)

	// Pins on an MCP23017 expander at addr on the board's expander bus.
	ClaimExpanderPin(devID string, addr uint8, pin int) (GPIOHandle, error)
	ReleaseExpanderPin(devID string, addr uint8, pin int)
}

// ---- HAL-injected resources ----

type Resources struct {
	Reg    ResourceRegistry
	Timers TimerSlots
	Pub    EventEmitter // provided by HAL; devices use it to emit values
}
