package types

// ------------------------
// LED (boolean output with pattern playback)
// ------------------------

// LEDParams configures gpio_led and mcp23017_led devices.
type LEDParams struct {
	Pin       int    `json:"pin"`
	ActiveLow bool   `json:"active_low,omitempty"`
	Initial   bool   `json:"initial,omitempty"`
	Name      string `json:"name,omitempty"` // capability name; defaults to the device ID
	// Expander I2C address for mcp23017_led (0x20..0x27).
	Addr uint8 `json:"addr,omitempty"`
}

type LEDInfo struct {
	Pin       int    `json:"pin"`
	ActiveLow bool   `json:"active_low,omitempty"`
	Backend   string `json:"backend"` // "gpio", "mcp23017"
	TimerSlot int    `json:"timer_slot"`
}

// LEDValue is published retained on .../value after every output change.
type LEDValue struct {
	On       bool   `json:"on"`
	Blinking bool   `json:"blinking"`
	State    string `json:"state"` // "idle", "on", "off"
	Cursor   int    `json:"cursor"`
	Steps    int    `json:"steps"`
}

// LEDSet drives the LED directly, cancelling any pattern.
type LEDSet struct {
	On bool `json:"on"`
}

// Pattern encodings accepted by LEDBlink.
const (
	EncodingSteps = "steps" // Durations: alternating delays before on, before off
	EncodingCode  = "code"  // Code: '.', '-', ' ', '/'
	EncodingText  = "text"  // Text: letters, digits, spaces
)

// LEDBlink starts pattern playback. An empty pattern stops blinking.
type LEDBlink struct {
	Encoding  string   `json:"encoding"`
	Durations []uint32 `json:"durations,omitempty"`
	Code      string   `json:"code,omitempty"`
	Text      string   `json:"text,omitempty"`
	UnitMs    uint32   `json:"unit_ms,omitempty"`
	Once      bool     `json:"once,omitempty"`
}
