// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package ext provides the extension providers registered with the
// core bootstrap: platform windowing surface support and fixed-list
// providers for headless embedders.
package ext

import (
	"errors"

	"github.com/devblok/prism/core"
	"github.com/veandco/go-sdl2/sdl"
)

// NewSurfaceProvider creates a provider that contributes the
// windowing system's surface extensions for the given window. The
// window must have been created with sdl.WINDOW_VULKAN.
func NewSurfaceProvider(window *sdl.Window) *SurfaceProvider {
	return &SurfaceProvider{window: window}
}

// SurfaceProvider contributes the instance extensions SDL reports as
// required to present to its windows, plus the swapchain device
// extension on every adapter.
type SurfaceProvider struct {
	window      *sdl.Window
	instanceExt core.NameSet
}

// Name implements core.Provider
func (p *SurfaceProvider) Name() string {
	return "SDL2 surface"
}

// InitInstanceExtensions implements core.Provider
func (p *SurfaceProvider) InitInstanceExtensions() error {
	names := p.window.VulkanGetInstanceExtensions()
	if len(names) == 0 {
		return errors.New("ext: window reports no vulkan surface extensions")
	}
	for _, name := range names {
		p.instanceExt.Add(name)
	}
	return nil
}

// InitDeviceExtensions implements core.Provider
func (p *SurfaceProvider) InitDeviceExtensions(instance *core.Instance) error {
	return nil
}

// InstanceExtensions implements core.Provider
func (p *SurfaceProvider) InstanceExtensions() core.NameSet {
	return p.instanceExt
}

// DeviceExtensions implements core.Provider
func (p *SurfaceProvider) DeviceExtensions(adapter int) core.NameSet {
	return core.NewNameSet(core.KhrSwapchainExtensionName)
}
