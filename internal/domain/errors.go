package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed input. It is raised before any write.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	switch {
	case e.Msg != "" && e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	default:
		return "validation error"
	}
}

func (e ValidationError) Unwrap() error { return e.Err }

// NotFoundError reports an absent record id or reference.
type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ForbiddenError reports an actor attempting an operation it has no
// permission for (for example a priest responding to someone else's booking).
type ForbiddenError struct {
	Msg string
}

func (e ForbiddenError) Error() string {
	if e.Msg == "" {
		return "forbidden"
	}
	return e.Msg
}

// IllegalTransitionError reports a booking status change the state machine
// does not allow.
type IllegalTransitionError struct {
	From string
	To   string
}

func (e IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.From, e.To)
}

// InvalidServiceError reports a booking request for a service the target
// priest does not offer.
type InvalidServiceError struct {
	Service string
}

func (e InvalidServiceError) Error() string {
	if e.Service == "" {
		return "service not offered by this priest"
	}
	return fmt.Sprintf("service %q not offered by this priest", e.Service)
}

// PersistenceError wraps a backing-store failure. It is the only error kind
// a caller may reasonably retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	if e.Op == "" {
		return "persistence error"
	}
	return fmt.Sprintf("persistence error during %s", e.Op)
}

func (e PersistenceError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

func IsIllegalTransition(err error) bool {
	var target IllegalTransitionError
	return errors.As(err, &target)
}

func IsInvalidService(err error) bool {
	var target InvalidServiceError
	return errors.As(err, &target)
}

func IsPersistence(err error) bool {
	var target PersistenceError
	return errors.As(err, &target)
}
