// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

// FilterFlags are device filter policy bits, computed once over the
// whole enumerated device population before any single device is
// tested.
type FilterFlags uint32

const (
	// FilterSkipCPUDevices excludes CPU-type devices. Set whenever
	// the population contains at least one non-CPU device, so a
	// CPU-only system still yields a usable list.
	FilterSkipCPUDevices FilterFlags = 1 << iota
)

// Has reports whether flag is set.
func (f FilterFlags) Has(flag FilterFlags) bool {
	return f&flag != 0
}

// ComputeFilterFlags derives the filter policy from the full device
// population.
func ComputeFilterFlags(population []DeviceProperties) FilterFlags {
	var flags FilterFlags
	for _, props := range population {
		if props.DeviceType != DeviceTypeCPU {
			flags |= FilterSkipCPUDevices
		}
	}
	return flags
}

// DeviceFilter tests a single device snapshot against the computed
// policy. The predicate itself is pure, all population knowledge is
// carried in the flags.
type DeviceFilter struct {
	flags FilterFlags
}

// NewDeviceFilter creates a filter with the given policy flags.
func NewDeviceFilter(flags FilterFlags) DeviceFilter {
	return DeviceFilter{flags: flags}
}

// Test reports whether the device should be kept.
func (f DeviceFilter) Test(props DeviceProperties) bool {
	if f.flags.Has(FilterSkipCPUDevices) && props.DeviceType == DeviceTypeCPU {
		return false
	}
	return true
}
