package types

// ------------------------
// Capability addressing & kinds
// ------------------------

type Kind string

const (
	KindLED Kind = "led"
)

// CapabilityAddress identifies a public capability on the bus.
type CapabilityAddress struct {
	Domain string `json:"domain"` // "io"
	Kind   Kind   `json:"kind"`
	Name   string `json:"name"`
}
