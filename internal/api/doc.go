// Package api handles incoming HTTP requests for the study tools and the
// history feed. It decodes and validates requests, calls the tutor service or
// the history store, and maps service errors to status codes and safe messages.
package api
