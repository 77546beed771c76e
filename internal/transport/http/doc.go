// Package http implements HTTP request handlers for the forecast dashboard.
// It provides a thin layer between HTTP transport and business logic:
// handlers parse and validate requests, delegate to the service layer, and
// transform service errors into RFC 7807 responses.
//
// The country multi-select is bounded to two live choices; the bound is
// enforced here so the filter pipeline is never invoked with an invalid
// selection. The websocket stream handler mirrors the reactive UI of the
// dashboard: one filter message in, one recomputed view out.
package http
