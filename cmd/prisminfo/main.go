// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command prisminfo boots a Prism instance and dumps the ranked
// adapter list as JSON.
package main

import (
	"encoding/json"
	"os"
	"runtime"

	"github.com/devblok/prism/core"
	"github.com/devblok/prism/ext"
	"github.com/devblok/prism/vkl"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	runtime.LockOSThread()
}

type adapterInfo struct {
	Name       string   `json:"name"`
	DeviceType string   `json:"deviceType"`
	VendorID   uint32   `json:"vendorId"`
	DeviceID   uint32   `json:"deviceId"`
	Extensions []string `json:"extensions"`
}

func main() {
	// Optional .env next to the binary, for PRISM_PERF_EVENTS etc.
	godotenv.Load()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		log.Fatal(err)
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		log.Fatal(err)
	}
	defer sdl.VulkanUnloadLibrary()

	window, err := sdl.CreateWindow("prisminfo",
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		1, 1,
		sdl.WINDOW_VULKAN|sdl.WINDOW_HIDDEN)
	if err != nil {
		log.Fatal(err)
	}
	defer window.Destroy()

	library, err := vkl.NewWithProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		log.Fatal(err)
	}

	providers := []core.Provider{
		ext.NewSurfaceProvider(window),
	}

	instance, err := core.New(library, providers, core.Configuration{})
	if err != nil {
		log.Fatal(err)
	}
	defer instance.Destroy()

	infos := make([]adapterInfo, 0, instance.AdapterCount())
	for idx := 0; idx < instance.AdapterCount(); idx++ {
		adapter := instance.EnumAdapter(idx)
		props := adapter.Properties()
		infos = append(infos, adapterInfo{
			Name:       props.Name,
			DeviceType: props.DeviceType.String(),
			VendorID:   props.VendorID,
			DeviceID:   props.DeviceID,
			Extensions: adapter.EnabledExtensions().Names(),
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(infos); err != nil {
		log.Fatal(err)
	}
}
