// Package api contains the HTTP handlers for the service. Handlers decode
// and validate requests, call into the store layer, and translate store and
// domain errors into the API's error taxonomy. Access policies are enforced
// by the middleware package before a handler runs.
package api
