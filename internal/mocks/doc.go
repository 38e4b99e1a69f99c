// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized implementations can be shared across test packages. Each mock
// exposes function fields for per-test behavior; when a field is nil the
// mock falls back to a simple in-memory default.
package mocks
