// Package store defines the persistence interfaces for the marketplace
// entities and the shared database abstractions (DBTX, transactions,
// sentinel errors). Concrete implementations live in platform/postgres.
package store
