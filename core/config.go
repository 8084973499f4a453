// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

// Configuration defines the resolved bootstrap settings. It is
// produced by the surrounding runtime's configuration layer; this
// package only consumes it.
type Configuration struct {
	// EnableDebugUtils requests the debug/perf-event instrumentation
	// extension on the connection. The PRISM_PERF_EVENTS environment
	// variable overrides it.
	EnableDebugUtils bool

	// ApplicationName is the name declared to the driver. When empty
	// it is derived from the running executable.
	ApplicationName string
}
