package medium

import "slices"

type Capability string

const (
	// CapabilityPersistent marks media whose resources survive Close.
	CapabilityPersistent Capability = "persistent"

	// CapabilityRemote marks media backed by a network service.
	CapabilityRemote Capability = "remote"

	// CapabilityAppend marks media with native append support.
	// Media without it emulate OpenAppend via read-modify-write.
	CapabilityAppend Capability = "append"
)

// Capabilities describes what a medium supports.
type Capabilities struct {
	Capabilities    []Capability `json:"capabilities"`
	MaxResourceSize int64        `json:"max_resource_size"`
}

// Contains checks if a capability is supported.
func (mc *Capabilities) Contains(cap Capability) bool {
	return slices.Contains(mc.Capabilities, cap)
}
