// Package services implements the core business logic for Bookline.
//
// Services implement the driving port interfaces and depend only on the
// driven ports, never on concrete adapters:
//
//   - TokenService: credential lifecycle (lookup, refresh, federation
//     bootstrap, disconnect)
//   - AvailabilityService: candidate slot generation and busy-interval
//     subtraction
//   - BookingService: composition of the two, plus event creation
//
// # Import Rules
//
//   - Can Import: domain, ports/driven, ports/driving, logger
//   - Cannot Import: Any adapter package
package services
