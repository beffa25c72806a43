// Package auth verifies bearer tokens issued by the hosted authentication
// provider and carries the verified user ID through request contexts.
// Sign-up, sign-in and password handling stay with the provider.
package auth
