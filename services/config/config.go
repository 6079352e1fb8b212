package config

import (
	"context"
	"encoding/json"
	"sort"

	"blinkcode-go/bus"
	"blinkcode-go/errcode"
	"blinkcode-go/types"
)

const (
	serviceName  = "config"
	configPrefix = "config"
	CtxDeviceKey = "device" // context key used for device ID
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// decoders turn known sections into the typed payloads their services
// expect. Other sections are published as decoded JSON values.
var decoders = map[string]func(json.RawMessage) (any, error){
	"hal": func(raw json.RawMessage) (any, error) {
		var c types.HALConfig
		err := json.Unmarshal(raw, &c)
		return c, err
	},
	"heartbeat": func(raw json.RawMessage) (any, error) {
		var c types.HeartbeatConfig
		err := json.Unmarshal(raw, &c)
		return c, err
	},
}

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// Decode parses a device config into one payload per top-level key.
func Decode(raw []byte) (map[string]any, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, errcode.Wrap("config.decode", errcode.InvalidPayload, err)
	}
	out := make(map[string]any, len(sections))
	for k, v := range sections {
		dec := decoders[k]
		if dec == nil {
			dec = func(raw json.RawMessage) (any, error) {
				var x any
				err := json.Unmarshal(raw, &x)
				return x, err
			}
		}
		p, err := dec(v)
		if err != nil {
			return nil, &errcode.E{C: errcode.InvalidPayload, Op: "config.decode", Msg: k, Err: err}
		}
		out[k] = p
	}
	return out, nil
}

// publishConfig reads the device config from embedded data and publishes
// each section as a retained config/<key> message.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	device, _ := ctx.Value(CtxDeviceKey).(string)
	if device == "" {
		return &errcode.E{C: errcode.InvalidParams, Op: "config.publish", Msg: "missing device ID in context"}
	}

	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return &errcode.E{C: errcode.InvalidParams, Op: "config.publish", Msg: "no embedded config for device " + device}
	}

	m, err := Decode(raw)
	if err != nil {
		return err
	}

	// Stable order keeps boot logs comparable between runs.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		conn.Publish(conn.NewMessage(bus.T(configPrefix, k), m[k], true))
	}
	return nil
}

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(ctx, conn); err != nil {
			println("[config]", err.Error())
		}
	}()
}
