// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package vkl implements the vulkan driver library binding consumed
// by the core bootstrap.
package vkl

import (
	"fmt"
	"unsafe"

	"github.com/devblok/prism/core"
	vk "github.com/devblok/vulkan"
)

// New loads the vulkan entry points through the default loader.
func New() (core.Library, error) {
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return nil, fmt.Errorf("vk.SetDefaultGetInstanceProcAddr(): %s", err.Error())
	}
	return initLibrary()
}

// NewWithProcAddr loads the vulkan entry points through a custom
// loader, e.g. the one SDL provides for its windows.
func NewWithProcAddr(procAddr unsafe.Pointer) (core.Library, error) {
	if procAddr == nil {
		return New()
	}
	vk.SetGetInstanceProcAddr(procAddr)
	return initLibrary()
}

func initLibrary() (core.Library, error) {
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vk.Init(): %s", err.Error())
	}
	return &library{loaded: true}, nil
}

type library struct {
	loaded bool
}

func (l *library) Valid() bool {
	return l.loaded
}

func (l *library) InstanceExtensions() (core.NameSet, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return core.NameSet{}, fmt.Errorf("vk.EnumerateInstanceExtensionProperties(): %s", err.Error())
	}
	properties := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, properties)); err != nil {
		return core.NameSet{}, fmt.Errorf("vk.EnumerateInstanceExtensionProperties(): %s", err.Error())
	}

	var set core.NameSet
	for _, prop := range properties {
		prop.Deref()
		set.Add(vk.ToString(prop.ExtensionName[:]))
	}
	return set, nil
}

func (l *library) CreateConnection(info core.ConnectionInfo) (core.Connection, error) {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   safeString(info.ApplicationName),
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PEngineName:        safeString(info.EngineName),
		EngineVersion:      uint32(info.EngineVersion),
		ApiVersion:         uint32(info.APIVersion),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(info.Extensions)),
		PpEnabledExtensionNames: safeStrings(info.Extensions),
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&createInfo, nil, &instance)); err != nil {
		return nil, fmt.Errorf("vk.CreateInstance(): %s", err.Error())
	}
	vk.InitInstance(instance)

	return &connection{instance: instance}, nil
}

type connection struct {
	instance vk.Instance
}

// Devices enumerates physical devices with the two-call pattern. The
// driver may report a different count between the sizing and the fill
// call when the device population changes; that is transient and the
// sizing call is retried.
func (c *connection) Devices() ([]core.PhysicalDevice, error) {
	var handles []vk.PhysicalDevice
	for {
		var count uint32
		if err := vk.Error(vk.EnumeratePhysicalDevices(c.instance, &count, nil)); err != nil {
			return nil, fmt.Errorf("vk.EnumeratePhysicalDevices(): %s", err.Error())
		}
		if count == 0 {
			return nil, nil
		}

		handles = make([]vk.PhysicalDevice, count)
		result := vk.EnumeratePhysicalDevices(c.instance, &count, handles)
		if result == vk.Incomplete {
			continue
		}
		if err := vk.Error(result); err != nil {
			return nil, fmt.Errorf("vk.EnumeratePhysicalDevices(): %s", err.Error())
		}
		handles = handles[:count]
		break
	}

	devices := make([]core.PhysicalDevice, len(handles))
	for idx, handle := range handles {
		devices[idx] = newPhysicalDevice(handle)
	}
	return devices, nil
}

func (c *connection) Inner() interface{} {
	return c.instance
}

func (c *connection) Destroy() {
	vk.DestroyInstance(c.instance, nil)
}

type physicalDevice struct {
	handle vk.PhysicalDevice
	props  core.DeviceProperties
}

func newPhysicalDevice(handle vk.PhysicalDevice) *physicalDevice {
	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(handle, &properties)
	properties.Deref()

	return &physicalDevice{
		handle: handle,
		props: core.DeviceProperties{
			Name:          vk.ToString(properties.DeviceName[:]),
			DeviceType:    deviceType(properties.DeviceType),
			VendorID:      properties.VendorID,
			DeviceID:      properties.DeviceID,
			DriverVersion: properties.DriverVersion,
			// Core 1.0 properties carry no LUID, so it stays invalid
			// through this binding.
		},
	}
}

func (d *physicalDevice) Properties() core.DeviceProperties {
	return d.props
}

func (d *physicalDevice) Extensions() (core.NameSet, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(d.handle, "", &count, nil)); err != nil {
		return core.NameSet{}, fmt.Errorf("vk.EnumerateDeviceExtensionProperties(): %s", err.Error())
	}
	properties := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(d.handle, "", &count, properties)); err != nil {
		return core.NameSet{}, fmt.Errorf("vk.EnumerateDeviceExtensionProperties(): %s", err.Error())
	}

	var set core.NameSet
	for _, prop := range properties {
		prop.Deref()
		set.Add(vk.ToString(prop.ExtensionName[:]))
	}
	return set, nil
}

func (d *physicalDevice) Inner() interface{} {
	return d.handle
}

func deviceType(t vk.PhysicalDeviceType) core.DeviceType {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return core.DeviceTypeIntegratedGPU
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return core.DeviceTypeDiscreteGPU
	case vk.PhysicalDeviceTypeVirtualGpu:
		return core.DeviceTypeVirtualGPU
	case vk.PhysicalDeviceTypeCpu:
		return core.DeviceTypeCPU
	default:
		return core.DeviceTypeOther
	}
}
