// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import "errors"

// package errors
var (
	// ErrLibraryUnavailable means the driver entry-point library
	// could not be loaded.
	ErrLibraryUnavailable = errors.New("prism: driver library unavailable")

	// ErrExtensionNegotiationFailed means a mandatory instance
	// extension is not available from the driver.
	ErrExtensionNegotiationFailed = errors.New("prism: instance extension negotiation failed")

	// ErrConnectionCreationFailed means the driver rejected
	// connection creation.
	ErrConnectionCreationFailed = errors.New("prism: connection creation failed")

	// ErrEnumerationFailed means the physical device enumeration
	// reported an error status.
	ErrEnumerationFailed = errors.New("prism: physical device enumeration failed")
)
