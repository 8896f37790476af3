package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrRemoteUnavailable = errors.New("remote unavailable")
	ErrVersionConflict   = errors.New("version conflict")
	ErrValidation        = errors.New("validation")
)

type Entity string

const (
	EntityUser Entity = "user"
	EntityBook Entity = "book"
	EntityLoan Entity = "loan"
)

type NotFoundError struct {
	Entity Entity
	ID     string
}

func NotFound(entity Entity, id any) error {
	return &NotFoundError{Entity: entity, ID: fmt.Sprint(id)}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

type Reason string

const (
	ReasonNoCopyAvailable Reason = "no-copy-available"
	ReasonLoanLimit       Reason = "loan-limit"
	ReasonAlreadyBorrowed Reason = "already-borrowed"
	ReasonAlreadyReturned Reason = "already-returned"
	ReasonReserveFailed   Reason = "reserve-failed"
	ReasonReleaseFailed   Reason = "release-failed"
)

type ConflictError struct {
	Reason Reason
	Cause  error
}

func Conflict(reason Reason, cause error) error {
	return &ConflictError{Reason: reason, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("conflict: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("conflict: %s", e.Reason)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func (e *ConflictError) Unwrap() error {
	return e.Cause
}

// IsConflict reports whether err is a conflict with the given reason.
func IsConflict(err error, reason Reason) bool {
	var ce *ConflictError
	return errors.As(err, &ce) && ce.Reason == reason
}

// IsNotFound reports whether err is a not found error for entity.
func IsNotFound(err error, entity Entity) bool {
	var nf *NotFoundError
	return errors.As(err, &nf) && nf.Entity == entity
}
