// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package ext

import "github.com/devblok/prism/core"

// NewStaticProvider creates a provider with fixed extension lists.
// Useful for headless embedders that know their requirements up
// front, and as a deterministic provider in tests.
func NewStaticProvider(name string, instanceExt, deviceExt []string) *StaticProvider {
	return &StaticProvider{
		name:        name,
		instanceExt: core.NewNameSet(instanceExt...),
		deviceExt:   core.NewNameSet(deviceExt...),
	}
}

// StaticProvider contributes the same fixed extension lists to every
// bootstrap and every adapter.
type StaticProvider struct {
	name        string
	instanceExt core.NameSet
	deviceExt   core.NameSet
}

// Name implements core.Provider
func (p *StaticProvider) Name() string {
	return p.name
}

// InitInstanceExtensions implements core.Provider
func (p *StaticProvider) InitInstanceExtensions() error {
	return nil
}

// InitDeviceExtensions implements core.Provider
func (p *StaticProvider) InitDeviceExtensions(instance *core.Instance) error {
	return nil
}

// InstanceExtensions implements core.Provider
func (p *StaticProvider) InstanceExtensions() core.NameSet {
	return p.instanceExt
}

// DeviceExtensions implements core.Provider
func (p *StaticProvider) DeviceExtensions(adapter int) core.NameSet {
	return p.deviceExt
}
