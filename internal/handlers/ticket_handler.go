package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/campustix/campustix/internal/helpers"
	"github.com/campustix/campustix/internal/middleware"
	"github.com/campustix/campustix/internal/models"
	"github.com/campustix/campustix/internal/services"
)

type TicketHandler struct {
	tickets *services.TicketService
	events  *services.EventService
}

func NewTicketHandler(tickets *services.TicketService, events *services.EventService) *TicketHandler {
	return &TicketHandler{tickets: tickets, events: events}
}

func (h *TicketHandler) ClaimTicket(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid event ID.")
		return
	}

	claims, ok := middleware.GetClaims(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, helpers.CodeUnauthenticated, "Missing token claims.")
		return
	}

	ticket, err := h.tickets.Claim(eventID, claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ticket claimed successfully.",
		"ticket":  ticket,
	})
}

type ValidateTicketRequest struct {
	QRData string `json:"qr_data" binding:"required"`
}

// ValidateTicket is the door scan: one-time check-in keyed on the redemption
// code. Organizer/admin only (route-gated).
func (h *TicketHandler) ValidateTicket(c *gin.Context) {
	var req ValidateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid request payload.")
		return
	}

	ticket, err := h.tickets.CheckIn(req.QRData)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket checked in successfully.",
		"ticket": gin.H{
			"id":            ticket.ID,
			"event_id":      ticket.EventID,
			"user_id":       ticket.UserID,
			"checked_in_at": ticket.CheckedInAt,
		},
	})
}

// GenerateTicketQR renders the signed payload as a PNG for the ticket owner.
func (h *TicketHandler) GenerateTicketQR(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid ticket ID.")
		return
	}

	claims, ok := middleware.GetClaims(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, helpers.CodeUnauthenticated, "Missing token claims.")
		return
	}

	ticket, err := h.tickets.GetOwned(ticketID, claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	qrImage, err := qrcode.Encode(h.tickets.QRPayload(ticket), qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, helpers.CodeInternal, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

// PayTicket completes the mocked payment flow for a paid ticket.
func (h *TicketHandler) PayTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid ticket ID.")
		return
	}

	claims, ok := middleware.GetClaims(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, helpers.CodeUnauthenticated, "Missing token claims.")
		return
	}

	ticket, err := h.tickets.CompletePayment(ticketID, claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment completed.",
		"ticket":  ticket,
	})
}

// requireEventAccess loads the event and checks the caller is its creator or
// an admin. Shared by the read-side projections below.
func (h *TicketHandler) requireEventAccess(c *gin.Context) (uuid.UUID, bool) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid event ID.")
		return uuid.Nil, false
	}

	claims, ok := middleware.GetClaims(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, helpers.CodeUnauthenticated, "Missing token claims.")
		return uuid.Nil, false
	}

	event, err := h.events.Get(eventID)
	if err != nil {
		respondServiceError(c, err)
		return uuid.Nil, false
	}
	if event.CreatedByID != claims.UserID && claims.Role != models.RoleAdmin {
		helpers.RespondWithError(c, http.StatusForbidden, helpers.CodeForbidden, "You don't have permission to view this event's attendance.")
		return uuid.Nil, false
	}
	return event.ID, true
}

func (h *TicketHandler) GetAnalytics(c *gin.Context) {
	eventID, ok := h.requireEventAccess(c)
	if !ok {
		return
	}

	analytics, err := h.tickets.ComputeAnalytics(eventID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

func (h *TicketHandler) ExportAttendance(c *gin.Context) {
	eventID, ok := h.requireEventAccess(c)
	if !ok {
		return
	}

	data, err := h.tickets.ExportAttendance(eventID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=attendance-%s.csv", eventID))
	c.Data(http.StatusOK, "text/csv", data)
}
