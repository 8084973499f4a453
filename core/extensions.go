// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

// Extension names this core negotiates itself. Providers may bring
// their own beyond these.
const (
	KhrSurfaceExtensionName                 = "VK_KHR_surface"
	KhrGetSurfaceCapabilities2ExtensionName = "VK_KHR_get_surface_capabilities2"
	KhrSwapchainExtensionName               = "VK_KHR_swapchain"
	ExtDebugUtilsExtensionName              = "VK_EXT_debug_utils"
)

// NameSet is an ordered set of extension names. Membership is what
// matters; insertion order is retained so that log output stays
// deterministic. The zero value is an empty set ready for use.
type NameSet struct {
	names  []string
	member map[string]struct{}
}

// NewNameSet builds a set from the given names.
func NewNameSet(names ...string) NameSet {
	var set NameSet
	for _, name := range names {
		set.Add(name)
	}
	return set
}

// Add inserts a name. Adding a name twice has no effect.
func (s *NameSet) Add(name string) {
	if s.member == nil {
		s.member = make(map[string]struct{})
	}
	if _, ok := s.member[name]; ok {
		return
	}
	s.member[name] = struct{}{}
	s.names = append(s.names, name)
}

// Contains reports whether name is in the set.
func (s NameSet) Contains(name string) bool {
	_, ok := s.member[name]
	return ok
}

// Merge inserts every name of other, keeping other's order for names
// not already present.
func (s *NameSet) Merge(other NameSet) {
	for _, name := range other.names {
		s.Add(name)
	}
}

// Names returns the member names in insertion order.
func (s NameSet) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Len returns the number of member names.
func (s NameSet) Len() int {
	return len(s.names)
}

// ExtMode tells the negotiation how to treat a missing extension.
type ExtMode int

const (
	// ExtOptional extensions are dropped silently when unavailable.
	ExtOptional ExtMode = iota

	// ExtRequired extensions fail the whole negotiation when
	// unavailable.
	ExtRequired
)

// Ext is one negotiation slot: a desired extension plus the write-back
// flag recording whether it ended up enabled.
type Ext struct {
	Name    string
	Mode    ExtMode
	Enabled bool
}

// Negotiate intersects the requested slots with the available set.
// Every slot's Enabled flag is written back. When a required slot is
// unavailable the negotiation fails as a whole and no enabled set is
// committed.
func Negotiate(available NameSet, slots []*Ext) (NameSet, bool) {
	var enabled NameSet
	ok := true
	for _, ext := range slots {
		ext.Enabled = available.Contains(ext.Name)
		if ext.Enabled {
			enabled.Add(ext.Name)
		} else if ext.Mode == ExtRequired {
			ok = false
		}
	}
	if !ok {
		return NameSet{}, false
	}
	return enabled, true
}
