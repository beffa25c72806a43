// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. It also provides a no-op history store for
// deployments without a database and a transaction helper shared by
// implementations.
package store
