// Package inmemory provides map-backed implementations of the persistence
// ports. They are used by tests and by local runs without Postgres or
// Redis. The repository stores deep snapshots so aggregates mutated by a
// handler only become visible on Update, mirroring the database adapters.
package inmemory
