package services

import "errors"

// Sentinel errors the controllers translate to HTTP statuses: not-found to
// 404, conflicts to 409, validation to 400.
var (
	ErrGuestNotFound    = errors.New("guest not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrTemplateNotFound = errors.New("email template not found")

	ErrInvalidInviteCode = errors.New("invalid invite code format")
	ErrCodeNotFound      = errors.New("invite code not found")

	ErrAlreadyLinked = errors.New("guest is already linked to a different account")
	ErrNotInvited    = errors.New("guest is not invited to this event")

	ErrFirstNameRequired = errors.New("first name is required")
	ErrEventNameRequired = errors.New("event name is required")
)
