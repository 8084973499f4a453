// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	log "github.com/sirupsen/logrus"
)

// Adapter wraps one physical device together with its cached property
// snapshot and the device extensions enabled on it. Adapters are built
// during bootstrap; once the Instance is published they are read-only
// and safe for concurrent use.
type Adapter struct {
	device    PhysicalDevice
	props     DeviceProperties
	available NameSet
	enabled   NameSet
}

func newAdapter(device PhysicalDevice) *Adapter {
	adapter := &Adapter{
		device: device,
		props:  device.Properties(),
	}
	available, err := device.Extensions()
	if err != nil {
		log.Warnf("prism: device extension query failed on %s: %s", adapter.props.Name, err.Error())
		available = NameSet{}
	}
	adapter.available = available
	return adapter
}

// Properties returns the cached property snapshot.
func (a *Adapter) Properties() DeviceProperties {
	return a.props
}

// SupportedExtensions returns the device extensions the driver reports
// as available on this adapter.
func (a *Adapter) SupportedExtensions() NameSet {
	return a.available
}

// EnabledExtensions returns the device extensions enabled on this
// adapter.
func (a *Adapter) EnabledExtensions() NameSet {
	return a.enabled
}

// EnableExtensions merges the requested names into the enabled set.
// Names the device does not support are skipped, different adapters
// may carry different optional capability sets. Applying the same set
// twice has no effect.
func (a *Adapter) EnableExtensions(requested NameSet) {
	for _, name := range requested.Names() {
		if a.available.Contains(name) {
			a.enabled.Add(name)
		}
	}
}

// Inner returns the inner handle of the underlying API
func (a *Adapter) Inner() interface{} {
	return a.device.Inner()
}
