package domain

import "errors"

var (
	// ErrUnauthenticated means no current identity where one is required.
	// Callers redirect to sign-in; nothing local is mutated.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrRemoteUnavailable means the identity check itself failed, not that a
	// row was missing. A missing profile row is valid (defaults apply).
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrPersistenceFailed means the remote store rejected a write. Local
	// state is left unchanged.
	ErrPersistenceFailed = errors.New("persistence failed")

	ErrProfileNotFound  = errors.New("profile not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrInvalidField     = errors.New("invalid field")
)

// SaveStatus is the outcome of a workout write. Degraded means the row was
// persisted only after dropping the optional calorie/weight columns; it is a
// soft success, not an error, but callers must surface it differently.
type SaveStatus string

const (
	StatusSaved    SaveStatus = "saved"
	StatusDegraded SaveStatus = "saved_degraded"
)
