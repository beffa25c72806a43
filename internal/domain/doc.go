// Package domain contains the core business entities of the application:
// the history entries recorded for signed-in students. It is independent of
// any specific infrastructure or delivery mechanism.
package domain
