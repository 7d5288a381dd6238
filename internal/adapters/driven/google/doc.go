// Package google implements the Google API driven ports.
//
// The adapters wrap the official google.golang.org/api clients for
// Calendar and Sheets, bridge Bookline's TokenProvider into an
// oauth2.TokenSource, classify googleapi errors, and rate-limit
// outgoing requests with a token bucket per service.
package google
