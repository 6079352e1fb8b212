package core

import "blinkcode-go/bus"

func topicConfigHAL() bus.Topic { return bus.T("config", "hal") }

// hal/cap/<domain>/<kind>/<name>/...
func CapBase(domain, kind, name string) bus.Topic { return bus.T("hal", "cap", domain, kind, name) }

func capInfo(a CapAddr) bus.Topic   { return CapBase(a.Domain, a.Kind, a.Name).Append("info") }
func capStatus(a CapAddr) bus.Topic { return CapBase(a.Domain, a.Kind, a.Name).Append("status") }
func capValue(a CapAddr) bus.Topic  { return CapBase(a.Domain, a.Kind, a.Name).Append("value") }
func capEvent(a CapAddr) bus.Topic  { return CapBase(a.Domain, a.Kind, a.Name).Append("event") }

// CapCtrl is hal/cap/<domain>/<kind>/<name>/control/<verb>.
func CapCtrl(domain, kind, name, verb string) bus.Topic {
	return CapBase(domain, kind, name).Append("control", verb)
}

// hal/cap/+/+/+/control/+
func ctrlWildcard() bus.Topic {
	return bus.T("hal", "cap", "+", "+", "+", "control", "+")
}
