package types

// HALConfig is supplied on topic "config/hal".
type HALConfig struct {
	// PollMs is the FSM update interval. 0 selects the HAL default.
	PollMs  uint32      `json:"poll_ms,omitempty"`
	Devices []HALDevice `json:"devices"`
}

type HALDevice struct {
	ID     string `json:"id"`
	Type   string `json:"type"`             // "gpio_led", "mcp23017_led"
	Params any    `json:"params,omitempty"` // typed params or a decoded JSON object
}

// HeartbeatConfig is supplied on topic "config/heartbeat".
type HeartbeatConfig struct {
	// LED names the capability (io/led/<LED>) that shows the heartbeat.
	LED string `json:"led"`
	// IntervalS is the period of the console liveness line; 0 disables it.
	IntervalS uint32 `json:"interval_s"`
	// PeriodMs is the heartbeat pattern period. 0 selects the default.
	PeriodMs uint32 `json:"period_ms,omitempty"`
}
