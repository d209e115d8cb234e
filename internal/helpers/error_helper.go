package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Machine-checkable error codes returned alongside the HTTP status so clients
// can route users ("log in again" vs "access denied" vs "sold out") without
// parsing messages.
const (
	CodeValidation         = "VALIDATION"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodePendingApproval    = "PENDING_APPROVAL"
	CodeRejected           = "REJECTED"
	CodeSuspended          = "SUSPENDED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeEventNotClaimable  = "EVENT_NOT_CLAIMABLE"
	CodeAlreadyClaimed     = "ALREADY_CLAIMED"
	CodeSoldOut            = "SOLD_OUT"
	CodeAlreadyCheckedIn   = "ALREADY_CHECKED_IN"
	CodeConflict           = "CONFLICT"
	CodeInternal           = "INTERNAL"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, errCode, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Code:    errCode,
		Message: customMessage,
	})
}
