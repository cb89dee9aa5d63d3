// Package api implements the HTTP client for the reading-tracker
// backend.
//
// Every endpoint wraps its payload in a {resultCode, msg, data}
// envelope; list endpoints nest a page object inside data. A non-2xx
// status or a failing resultCode surfaces as *Error carrying the
// service's message. One deliberate quirk is preserved from the
// service: an empty result set is reported through the error channel
// (message containing "데이터가 없습니다"), and IsNoData lets callers
// translate that into a valid empty page.
//
// Filter dimensions set to "all" are omitted from outbound queries
// rather than sent literally; an empty keyword is likewise omitted.
package api
