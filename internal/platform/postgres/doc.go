// Package postgres provides the PostgreSQL implementation of the history
// store defined in the internal/store package, the embedded schema
// migrations, and the mapping of driver errors to store errors.
package postgres
