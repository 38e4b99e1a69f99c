// Package api contains the HTTP handlers for the marketplace REST API:
// registration and login, third-party sign-in, the user profile endpoints,
// and the ad lifecycle (create, list, surf, deposit, update, delete).
//
// Handlers translate between the JSON wire format and the domain/service
// layers. Every failure path writes an explicit JSON error response; internal
// error details are mapped to sanitized messages and status codes before
// they reach the client.
package api
