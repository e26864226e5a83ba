package folder

import (
	"errors"
	"fmt"
)

// Error is the typed error for the folder persistence layer.
//
// Error kinds:
//   - Not found: an entity identifier unknown to the tree or store
//   - Duplicate ID: an identifier that would collide with a live entity
//   - Corruption: checksum or sequence-chain mismatch on revision replay
//   - Store unavailable: underlying storage unreachable
//   - Not authenticated: no valid session identity
//   - Protocol violation: editor accessed before login-triggered initialization
//   - Bootstrap exists: default-tree seeding attempted for a user with data
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Kind names the entity kind for not-found and duplicate-id errors.
	Kind string

	// ID is the affected entity, object, or user identifier.
	ID string

	// Err is the underlying cause, if any.
	Err error
}

// Code categorizes folder persistence errors.
type Code string

const (
	// CodeNotFound indicates an entity identifier unknown to the store.
	CodeNotFound Code = "NOT_FOUND"

	// CodeDuplicateID indicates an identifier collision within the tree.
	CodeDuplicateID Code = "DUPLICATE_ID"

	// CodeCorruption indicates a checksum mismatch on revision replay.
	CodeCorruption Code = "CORRUPTION"

	// CodeStoreUnavailable indicates the underlying storage is unreachable.
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"

	// CodeNotAuthenticated indicates no valid session identity.
	CodeNotAuthenticated Code = "NOT_AUTHENTICATED"

	// CodeProtocolViolation indicates editor access before initialization.
	CodeProtocolViolation Code = "PROTOCOL_VIOLATION"

	// CodeBootstrapExists indicates new-user seeding for an existing user.
	CodeBootstrapExists Code = "BOOTSTRAP_EXISTS"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Kind != "" && e.ID != "":
		return fmt.Sprintf("%s: %s (%s=%s)", e.Code, e.Message, e.Kind, e.ID)
	case e.ID != "":
		return fmt.Sprintf("%s: %s (id=%s)", e.Code, e.Message, e.ID)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// NewNotFound creates an Error for a missing entity.
func NewNotFound(kind, id string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: kind + " not found",
		Kind:    kind,
		ID:      id,
	}
}

// NewDuplicateID creates an Error for an identifier collision.
func NewDuplicateID(kind, id string) *Error {
	return &Error{
		Code:    CodeDuplicateID,
		Message: kind + " id already exists",
		Kind:    kind,
		ID:      id,
	}
}

// NewCorruption creates an Error for a failed integrity check on replay.
func NewCorruption(objectID, message string) *Error {
	return &Error{
		Code:    CodeCorruption,
		Message: message,
		ID:      objectID,
	}
}

// NewStoreUnavailable creates an Error for unreachable storage.
func NewStoreUnavailable(err error) *Error {
	return &Error{
		Code:    CodeStoreUnavailable,
		Message: "storage unreachable",
		Err:     err,
	}
}

// NewNotAuthenticated creates an Error for a missing session identity.
func NewNotAuthenticated(err error) *Error {
	return &Error{
		Code:    CodeNotAuthenticated,
		Message: "no authenticated user session",
		Err:     err,
	}
}

// NewProtocolViolation creates an Error for editor access before
// initialization. The facade recovers from this locally; the error value is
// used for logging and diagnostics.
func NewProtocolViolation(message string) *Error {
	return &Error{
		Code:    CodeProtocolViolation,
		Message: message,
	}
}

// NewBootstrapExists creates an Error for new-user seeding attempted against
// a user that already has persisted folder data.
func NewBootstrapExists(userID string) *Error {
	return &Error{
		Code:    CodeBootstrapExists,
		Message: "user already has persisted folder data",
		ID:      userID,
	}
}

// IsNotFound returns true if the error is a not-found error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsDuplicateID returns true if the error is an identifier collision.
func IsDuplicateID(err error) bool { return hasCode(err, CodeDuplicateID) }

// IsCorruption returns true if the error is a replay integrity failure.
func IsCorruption(err error) bool { return hasCode(err, CodeCorruption) }

// IsStoreUnavailable returns true if the error is an unreachable-storage error.
func IsStoreUnavailable(err error) bool { return hasCode(err, CodeStoreUnavailable) }

// IsNotAuthenticated returns true if the error is a missing-session error.
func IsNotAuthenticated(err error) bool { return hasCode(err, CodeNotAuthenticated) }

// IsBootstrapExists returns true if the error is a duplicate-bootstrap guard.
func IsBootstrapExists(err error) bool { return hasCode(err, CodeBootstrapExists) }

func hasCode(err error, code Code) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}
