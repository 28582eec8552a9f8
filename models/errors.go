package models

import "errors"

// Error taxonomy shared across services. Controllers map these to HTTP
// statuses with errors.Is; oracle failures never reach this level.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrConflict         = errors.New("already exists")
	ErrNotFound         = errors.New("not found")
	ErrSelfMessage      = errors.New("cannot send direct message to self, use assistant chat")
	ErrInvalidStatus    = errors.New("invalid match status")
)

// ErrConditionFailed reports a DynamoDB conditional write that did not
// apply. Services translate it into their own semantics (conflict on
// create, keep-existing on score raise); it never reaches a controller.
var ErrConditionFailed = errors.New("conditional check failed")
