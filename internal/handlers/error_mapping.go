package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campustix/campustix/internal/helpers"
	"github.com/campustix/campustix/internal/services"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses and
// machine-checkable codes. Anything unrecognized is an internal failure and
// stays opaque to the client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, helpers.CodeNotFound, "Account not found.")
	case errors.Is(err, services.ErrInvalidCredentials):
		helpers.RespondWithError(c, http.StatusUnauthorized, helpers.CodeInvalidCredentials, "Invalid credentials.")
	case errors.Is(err, services.ErrPendingApproval):
		helpers.RespondWithError(c, http.StatusForbidden, helpers.CodePendingApproval, "Your organizer application is still awaiting review.")
	case errors.Is(err, services.ErrRejected):
		helpers.RespondWithError(c, http.StatusForbidden, helpers.CodeRejected, "Your organizer application was rejected.")
	case errors.Is(err, services.ErrSuspended):
		helpers.RespondWithError(c, http.StatusForbidden, helpers.CodeSuspended, "Your account is suspended.")
	case errors.Is(err, services.ErrEmailTaken):
		helpers.RespondWithError(c, http.StatusConflict, helpers.CodeConflict, "Email already registered.")
	case errors.Is(err, services.ErrStudentIDTaken):
		helpers.RespondWithError(c, http.StatusConflict, helpers.CodeConflict, "Student ID already registered.")
	case errors.Is(err, services.ErrInvalidToken):
		helpers.RespondWithError(c, http.StatusForbidden, helpers.CodeInvalidToken, "Invalid or expired token. Please log in again.")
	case errors.Is(err, services.ErrForbidden):
		helpers.RespondWithError(c, http.StatusForbidden, helpers.CodeForbidden, "You don't have permission to perform this action.")
	case errors.Is(err, services.ErrEventNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, helpers.CodeNotFound, "Event not found.")
	case errors.Is(err, services.ErrOrganizationNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, helpers.CodeNotFound, "Organization not found.")
	case errors.Is(err, services.ErrOrganizationInactive):
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Organization is inactive.")
	case errors.Is(err, services.ErrInvalidTransition):
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeInvalidTransition, err.Error())
	case errors.Is(err, services.ErrEventNotClaimable):
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeEventNotClaimable, "Event is not open for ticket claims.")
	case errors.Is(err, services.ErrAlreadyClaimed):
		helpers.RespondWithError(c, http.StatusConflict, helpers.CodeAlreadyClaimed, "You already hold a ticket for this event.")
	case errors.Is(err, services.ErrSoldOut):
		helpers.RespondWithError(c, http.StatusConflict, helpers.CodeSoldOut, "Sold out.")
	case errors.Is(err, services.ErrTicketNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, helpers.CodeNotFound, "Ticket not found.")
	case errors.Is(err, services.ErrAlreadyCheckedIn):
		helpers.RespondWithError(c, http.StatusConflict, helpers.CodeAlreadyCheckedIn, "Ticket already checked in.")
	case errors.Is(err, services.ErrPaymentNotPending):
		helpers.RespondWithError(c, http.StatusConflict, helpers.CodeConflict, "Payment is not pending for this ticket.")
	default:
		helpers.RespondWithError(c, http.StatusInternalServerError, helpers.CodeInternal, "Something went wrong.")
	}
}
