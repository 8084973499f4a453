// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core implements the bootstrap of the Prism runtime. It loads
// the graphics driver library, negotiates instance extensions with the
// registered extension providers, creates the driver connection and
// builds the ranked adapter collection that the rest of the runtime
// selects its rendering device from. Everything reaches the driver
// through the Library interface, so the package itself stays free of
// driver bindings.
package core

// Library is a loaded driver entry-point library. It exposes the few
// global calls needed before a connection exists.
type Library interface {
	// Valid reports whether the entry points were loaded.
	Valid() bool

	// InstanceExtensions returns the set of instance extensions the
	// driver reports as available.
	InstanceExtensions() (NameSet, error)

	// CreateConnection creates the driver connection with the given
	// identity and enabled extensions.
	CreateConnection(info ConnectionInfo) (Connection, error)
}

// Connection is a live driver connection, created once per Instance.
type Connection interface {
	// Devices enumerates the physical devices visible through
	// this connection, in driver order.
	Devices() ([]PhysicalDevice, error)

	// Inner returns the inner handle of the underlying API
	Inner() interface{}

	// Destroy destroys internal members
	Destroy()
}

// PhysicalDevice is one device reported by the driver. Handles are
// driver-owned and stable for the process lifetime.
type PhysicalDevice interface {
	// Properties returns the cached property snapshot.
	Properties() DeviceProperties

	// Extensions returns the device extensions available on this
	// device.
	Extensions() (NameSet, error)

	// Inner returns the inner handle of the underlying API
	Inner() interface{}
}

// ConnectionInfo declares the identity and requirements of a driver
// connection.
type ConnectionInfo struct {
	ApplicationName string
	EngineName      string
	EngineVersion   Version
	APIVersion      Version
	Extensions      []string
}

// Version is a packed driver API version number.
type Version uint32

// MakeVersion packs a version the way the driver expects it.
func MakeVersion(major, minor, patch int) Version {
	return Version(major<<22 | minor<<12 | patch)
}

// Provider contributes extension requirements and receives lifecycle
// hooks during bootstrap. Providers are owned by the surrounding
// system and must outlive any Instance they are registered with.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// InitInstanceExtensions performs provider setup that must happen
	// before the connection is created.
	InitInstanceExtensions() error

	// InitDeviceExtensions performs provider setup that needs the
	// created connection, before device extensions are applied.
	InitDeviceExtensions(instance *Instance) error

	// InstanceExtensions returns instance extensions the provider
	// requires unconditionally.
	InstanceExtensions() NameSet

	// DeviceExtensions returns device extensions the provider
	// requests for the adapter at the given rank index.
	DeviceExtensions(adapter int) NameSet
}

// LUIDSize is the byte length of a locally-unique device identifier.
const LUIDSize = 8

// DeviceType classifies a physical device.
type DeviceType int

// Device types, in the driver's reporting order.
const (
	DeviceTypeOther DeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeIntegratedGPU:
		return "IntegratedGPU"
	case DeviceTypeDiscreteGPU:
		return "DiscreteGPU"
	case DeviceTypeVirtualGPU:
		return "VirtualGPU"
	case DeviceTypeCPU:
		return "CPU"
	default:
		return "Other"
	}
}

// DeviceProperties is the immutable property snapshot of one physical
// device, captured at enumeration time.
type DeviceProperties struct {
	Name          string
	DeviceType    DeviceType
	VendorID      uint32
	DeviceID      uint32
	DriverVersion uint32

	// LUID is a cross-API-stable identifier for the device.
	// Only meaningful when LUIDValid is set.
	LUID      [LUIDSize]byte
	LUIDValid bool
}
