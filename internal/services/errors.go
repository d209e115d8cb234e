package services

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPendingApproval    = errors.New("account pending approval")
	ErrRejected           = errors.New("account application rejected")
	ErrSuspended          = errors.New("account suspended")
	ErrEmailTaken         = errors.New("email already registered")
	ErrStudentIDTaken     = errors.New("student ID already registered")

	ErrInvalidToken = errors.New("invalid token")
	ErrForbidden    = errors.New("forbidden")

	ErrEventNotFound        = errors.New("event not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrOrganizationInactive = errors.New("organization inactive")

	ErrEventNotClaimable = errors.New("event not open for claims")
	ErrAlreadyClaimed    = errors.New("ticket already claimed for this event")
	ErrSoldOut           = errors.New("event sold out")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrAlreadyCheckedIn  = errors.New("ticket already checked in")
	ErrPaymentNotPending = errors.New("payment not pending")
)
