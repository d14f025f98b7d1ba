package service

import (
	"errors"

	"github.com/Yossy4131/LT/internal/core/validation"
	"github.com/sirupsen/logrus"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindDuplicateUsername
	KindAuthenticationFailure
	KindAuthenticationRequired
	KindCSRFValidation
	KindNotFound
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicateUsername:
		return "duplicate_username"
	case KindAuthenticationFailure:
		return "authentication_failure"
	case KindAuthenticationRequired:
		return "authentication_required"
	case KindCSRFValidation:
		return "csrf_validation"
	case KindNotFound:
		return "not_found"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// ServiceError carries a message that is safe to show to the caller. The
// underlying cause, if any, is only reachable through Unwrap.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is matches any ServiceError of the same kind, so the sentinels below work
// with errors.Is regardless of message or cause.
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	return ok && t.Kind == e.Kind
}

func NewServiceError(kind ErrorKind, message string, err error) *ServiceError {
	return &ServiceError{Kind: kind, Message: message, Err: err}
}

var (
	ErrValidation             = &ServiceError{Kind: KindValidation, Message: "invalid input"}
	ErrDuplicateUsername      = &ServiceError{Kind: KindDuplicateUsername, Message: "username is already taken"}
	ErrAuthenticationFailure  = &ServiceError{Kind: KindAuthenticationFailure, Message: "invalid username or password"}
	ErrAuthenticationRequired = &ServiceError{Kind: KindAuthenticationRequired, Message: "login required"}
	ErrCSRFValidation         = &ServiceError{Kind: KindCSRFValidation, Message: "security error, reload and try again"}
	ErrNotFound               = &ServiceError{Kind: KindNotFound, Message: "not found"}
	ErrPersistence            = &ServiceError{Kind: KindPersistence, Message: "something went wrong"}
)

// NewValidationError reports a rule violation using the reason of a
// validation.FieldError as the caller-facing message.
func NewValidationError(err error) *ServiceError {
	return NewServiceError(KindValidation, reason(err), err)
}

// persistenceError logs the cause and hides it behind the generic message.
func persistenceError(log *logrus.Logger, operation string, err error) *ServiceError {
	log.WithFields(logrus.Fields{
		"operation": operation,
		"error":     err,
	}).Error("storage operation failed")
	return NewServiceError(KindPersistence, ErrPersistence.Message, err)
}

func reason(err error) string {
	var fe *validation.FieldError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return err.Error()
}
