package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")
)

// Automation rule execution related errors
var (
	ErrAutomationRuleNotFound = errors.Wrap(NotFoundError, "automation rule not found")
	ErrAutomationRuleDisabled = errors.Wrap(BadParameterError, "automation rule is disabled")

	// An action asked for a status update on a table outside of the allow-list.
	// This is a capability violation and aborts the run, unlike a malformed action.
	ErrStatusTableNotAllowed = errors.New("table is not allowed for status updates")

	ErrRunAlreadyFinalized = errors.Wrap(ConflictError, "run is already finalized")
)
