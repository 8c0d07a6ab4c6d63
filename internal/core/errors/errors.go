// Package errors provides centralized error definitions for the application.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - Unexported errors (err*): Use for internal package errors
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Log directory and file errors.
var (
	// ErrLogDirMissing indicates the watched chat-log directory is gone.
	// Nothing is left to watch, so this is the one error that stops the watch loop.
	ErrLogDirMissing = errors.New("chat log directory missing")

	// ErrUndecodable indicates a chat-log file is not valid UTF-16 text.
	ErrUndecodable = errors.New("chat log not decodable")

	// ErrFileIgnored indicates a file was put on the ignore list earlier in the run.
	ErrFileIgnored = errors.New("file ignored")
)

// Gazetteer errors.
var (
	// ErrEmptyRegion indicates a region file listed no systems.
	ErrEmptyRegion = errors.New("region has no systems")
)

// KOS roster errors.
var (
	// ErrRosterUnavailable indicates the KOS roster could not be queried.
	// Callers must render this differently from an empty (no hostiles) result.
	ErrRosterUnavailable = errors.New("kos roster unavailable")

	// ErrIdentityUnavailable indicates the character identity service failed.
	ErrIdentityUnavailable = errors.New("identity service unavailable")

	// ErrNoNames indicates a KOS request carried no candidate names.
	ErrNoNames = errors.New("no names to check")
)

// Client and connection errors.
var (
	// ErrClientDisabled indicates a client or feature is disabled.
	ErrClientDisabled = errors.New("client disabled")

	// ErrUnexpectedStatus indicates a remote service answered with a non-2xx code.
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// Queue and throttling errors.
var (
	// ErrQueueFull indicates a bounded work queue rejected an item.
	ErrQueueFull = errors.New("queue full")

	// ErrDuplicateRequest indicates a request was dropped by spam control.
	ErrDuplicateRequest = errors.New("duplicate request")
)

// Cache errors.
var (
	// ErrCacheNotFound indicates a cache entry was not found.
	ErrCacheNotFound = errors.New("cache entry not found")

	// ErrCacheExpired indicates a cache entry has expired.
	ErrCacheExpired = errors.New("cache entry expired")
)

// Validation errors.
var (
	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = errors.New("invalid input")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
