// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"bytes"
	"errors"
	"sort"

	"github.com/gobuffalo/envy"
	log "github.com/sirupsen/logrus"
)

// PerfEventsEnv enables the debug/perf-event instrumentation extension
// when set to "1", overriding the configuration flag.
const PerfEventsEnv = "PRISM_PERF_EVENTS"

// Connection identity declared to the driver.
const engineName = "Prism"

var (
	engineVersion = MakeVersion(2, 0, 0)
	minAPIVersion = MakeVersion(1, 1, 0)
)

// InstanceExtensions records which instance extensions this core
// negotiated for the connection.
type InstanceExtensions struct {
	KhrSurface                 Ext
	KhrGetSurfaceCapabilities2 Ext
	ExtDebugUtils              Ext
}

// Instance owns the driver library binding, the driver connection and
// the ranked adapter collection. Once New returns, the Instance is
// read-only and safe for concurrent use.
type Instance struct {
	config    Configuration
	library   Library
	providers []Provider

	conn       Connection
	extInfo    InstanceExtensions
	extensions NameSet
	adapters   []*Adapter
}

// New runs the bootstrap sequence: load check, provider instance
// setup, extension negotiation, connection creation, adapter
// enumeration and per-adapter device extension application. Any fatal
// step failure aborts with an error and no usable Instance. Providers
// are referenced, never owned; they must outlive the Instance.
func New(library Library, providers []Provider, cfg Configuration) (*Instance, error) {
	if library == nil || !library.Valid() {
		return nil, ErrLibraryUnavailable
	}

	instance := &Instance{
		config:    cfg,
		library:   library,
		providers: providers,
	}

	log.Info("prism: registered extension providers:")
	for _, provider := range providers {
		log.Infof("  %s", provider.Name())
	}

	for _, provider := range providers {
		if err := provider.InitInstanceExtensions(); err != nil {
			return nil, errors.New("provider " + provider.Name() + ": " + err.Error())
		}
	}

	if err := instance.createConnection(); err != nil {
		return nil, err
	}

	adapters, err := instance.queryAdapters()
	if err != nil {
		instance.conn.Destroy()
		return nil, err
	}
	instance.adapters = adapters

	for _, provider := range providers {
		if err := provider.InitDeviceExtensions(instance); err != nil {
			instance.conn.Destroy()
			return nil, errors.New("provider " + provider.Name() + ": " + err.Error())
		}
	}

	for idx, adapter := range instance.adapters {
		for _, provider := range instance.providers {
			adapter.EnableExtensions(provider.DeviceExtensions(idx))
		}
	}

	return instance, nil
}

func (i *Instance) createConnection() error {
	i.extInfo = InstanceExtensions{
		KhrSurface:                 Ext{Name: KhrSurfaceExtensionName, Mode: ExtRequired},
		KhrGetSurfaceCapabilities2: Ext{Name: KhrGetSurfaceCapabilities2ExtensionName, Mode: ExtRequired},
		ExtDebugUtils:              Ext{Name: ExtDebugUtilsExtensionName, Mode: ExtOptional},
	}

	slots := []*Ext{
		&i.extInfo.KhrGetSurfaceCapabilities2,
		&i.extInfo.KhrSurface,
	}

	// Debug utils add measurable overhead, so the extension is only
	// ever requested behind an explicit opt-in.
	if envy.Get(PerfEventsEnv, "0") == "1" || i.config.EnableDebugUtils {
		slots = append(slots, &i.extInfo.ExtDebugUtils)
	}

	available, err := i.library.InstanceExtensions()
	if err != nil {
		return ErrExtensionNegotiationFailed
	}

	enabled, ok := Negotiate(available, slots)
	if !ok {
		return ErrExtensionNegotiationFailed
	}

	if i.extInfo.ExtDebugUtils.Enabled {
		log.Warn("prism: debug utils enabled, perf events are ON. May affect performance!")
	}

	// Provider requirements are merged without re-validation; the
	// driver rejects names it cannot serve at connection creation.
	for _, provider := range i.providers {
		enabled.Merge(provider.InstanceExtensions())
	}

	log.Info("prism: enabled instance extensions:")
	for _, name := range enabled.Names() {
		log.Infof("  %s", name)
	}

	appName := i.config.ApplicationName
	if appName == "" {
		appName = ExecutableName()
	}

	conn, err := i.library.CreateConnection(ConnectionInfo{
		ApplicationName: appName,
		EngineName:      engineName,
		EngineVersion:   engineVersion,
		APIVersion:      minAPIVersion,
		Extensions:      enabled.Names(),
	})
	if err != nil {
		return ErrConnectionCreationFailed
	}

	i.conn = conn
	i.extensions = enabled
	return nil
}

// deviceTypePriority ranks device types by expected rendering
// suitability. Types outside the table share the sentinel rank, so the
// stable sort keeps their enumeration order.
var deviceTypePriority = []DeviceType{
	DeviceTypeDiscreteGPU,
	DeviceTypeIntegratedGPU,
	DeviceTypeVirtualGPU,
}

func deviceTypeRank(deviceType DeviceType) int {
	for rank, ranked := range deviceTypePriority {
		if deviceType == ranked {
			return rank
		}
	}
	return len(deviceTypePriority)
}

func (i *Instance) queryAdapters() ([]*Adapter, error) {
	devices, err := i.conn.Devices()
	if err != nil {
		return nil, ErrEnumerationFailed
	}

	population := make([]DeviceProperties, len(devices))
	for idx, device := range devices {
		population[idx] = device.Properties()
	}

	filter := NewDeviceFilter(ComputeFilterFlags(population))

	var adapters []*Adapter
	for idx, device := range devices {
		if filter.Test(population[idx]) {
			adapters = append(adapters, newAdapter(device))
		}
	}

	sort.SliceStable(adapters, func(a, b int) bool {
		return deviceTypeRank(adapters[a].props.DeviceType) < deviceTypeRank(adapters[b].props.DeviceType)
	})

	if len(adapters) == 0 {
		log.Warn("prism: no adapters found, check your device filter settings and Vulkan setup")
	}

	return adapters, nil
}

// AdapterCount returns the number of usable adapters.
func (i *Instance) AdapterCount() int {
	return len(i.adapters)
}

// EnumAdapter returns the adapter at the given rank index, or nil when
// the index is out of range.
func (i *Instance) EnumAdapter(index int) *Adapter {
	if index < 0 || index >= len(i.adapters) {
		return nil
	}
	return i.adapters[index]
}

// FindAdapterByLUID returns the first adapter, in ranked order, whose
// valid locally-unique identifier matches luid byte for byte, or nil.
func (i *Instance) FindAdapterByLUID(luid []byte) *Adapter {
	for _, adapter := range i.adapters {
		props := adapter.Properties()
		if props.LUIDValid && bytes.Equal(luid, props.LUID[:]) {
			return adapter
		}
	}
	return nil
}

// FindAdapterByDeviceID returns the first adapter, in ranked order,
// matching both the vendor and device identifier, or nil.
func (i *Instance) FindAdapterByDeviceID(vendorID, deviceID uint32) *Adapter {
	for _, adapter := range i.adapters {
		props := adapter.Properties()
		if props.VendorID == vendorID && props.DeviceID == deviceID {
			return adapter
		}
	}
	return nil
}

// Extensions returns the negotiated instance extension record.
func (i *Instance) Extensions() InstanceExtensions {
	return i.extInfo
}

// EnabledExtensions returns the full enabled instance extension set,
// provider contributions included.
func (i *Instance) EnabledExtensions() NameSet {
	return i.extensions
}

// Connection returns the driver connection.
func (i *Instance) Connection() Connection {
	return i.conn
}

// Destroy releases the driver connection. Adapter handles are
// driver-owned and need no teardown of their own.
func (i *Instance) Destroy() {
	if i.conn != nil {
		i.conn.Destroy()
	}
}
