// Package domain defines the core business entities for Bookline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CredentialRecord: One user's persisted Google OAuth token set
//   - FederationRecord: Identity-provider metadata that may embed tokens
//   - SlotRequest / BusyInterval: Inputs to the availability engine
//   - Booking: A meeting created on a connected calendar
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
