// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CredentialStore: Persistent token records, keyed by user ID
//   - TokenEndpoint: OAuth code exchange and refresh-token grant
//   - CalendarAPI: Free/busy intervals and event creation
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - FederationStore: Secondary credential source from a federated
//     identity provider. Without it, only the primary store and refresh
//     paths are tried.
//   - SheetsAPI: Spreadsheet sync. Only the sheet commands need it.
//   - BookingStore: Booking log. Without it, bookings are not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
