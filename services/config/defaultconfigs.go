package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw JSON bytes for that device
// -----------------------------------------------------------------------------

// Host build: virtual pins only.
const cfgHost = `{
  "hal": {
    "poll_ms": 5,
    "devices": [
      {"id": "status", "type": "gpio_led", "params": {"pin": 25, "initial": false}},
      {"id": "user", "type": "gpio_led", "params": {"pin": 15}}
    ]
  },
  "heartbeat": {
    "led": "status",
    "interval_s": 10
  }
}`

// Pico: onboard LED on GP25, a second LED on GP15 and one on an MCP23017
// at 0x20 (I2C0, GP4/GP5).
const cfgPico = `{
  "hal": {
    "poll_ms": 2,
    "devices": [
      {"id": "status", "type": "gpio_led", "params": {"pin": 25}},
      {"id": "user", "type": "gpio_led", "params": {"pin": 15, "active_low": true}},
      {"id": "ext0", "type": "mcp23017_led", "params": {"pin": 0, "addr": 32}}
    ]
  },
  "heartbeat": {
    "led": "status",
    "interval_s": 2,
    "period_ms": 1000
  }
}`

var embeddedConfigs = map[string][]byte{
	"host": []byte(cfgHost),
	"pico": []byte(cfgPico),
}
