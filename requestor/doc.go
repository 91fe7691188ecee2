// Package requestor sends API calls and turns their responses into
// decoded values or *stripe.Error.
//
// Two seams let tests take over without a network:
//
//   - SetFactory replaces how New builds a Requestor, so a test can hand
//     resource code a mock.
//   - Intercept wraps the function every APIRequestor uses to send a
//     request, so a test can answer some calls from a stub table and let the
//     rest through.
package requestor
