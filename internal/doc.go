// Package internal holds the HTTP application core behind the root clinic
// package: the App, the request Context, the Router adapter over chi, the
// HTTPError type and the server runtime with graceful shutdown.
//
// Handlers and middleware are written against Context and return errors.
// The App routes every returned error to one ErrorHandler, so response
// shaping for failures lives in a single place.
package internal
