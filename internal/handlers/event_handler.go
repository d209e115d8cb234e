package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campustix/campustix/internal/helpers"
	"github.com/campustix/campustix/internal/middleware"
	"github.com/campustix/campustix/internal/services"
)

type EventHandler struct {
	events *services.EventService
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

type EventRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Location       string `json:"location" binding:"required"`
	Category       string `json:"category" binding:"required"`
	Capacity       int    `json:"capacity" binding:"required"`
	TicketType     string `json:"ticket_type" binding:"required,oneof=FREE PAID"`
	Price          *int   `json:"price"`
	OrganizationID string `json:"organization_id" binding:"required"`
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid input. Please check your fields.")
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid date format.")
		return
	}

	orgID, err := uuid.Parse(req.OrganizationID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid organization ID.")
		return
	}

	claims, ok := middleware.GetClaims(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, helpers.CodeUnauthenticated, "Missing token claims.")
		return
	}

	event, err := h.events.Create(services.CreateEventInput{
		Title:          req.Title,
		Description:    req.Description,
		Date:           date,
		Location:       req.Location,
		Category:       req.Category,
		Capacity:       req.Capacity,
		TicketType:     req.TicketType,
		Price:          req.Price,
		OrganizationID: orgID,
	}, claims)
	if err != nil {
		switch err {
		case services.ErrUserNotFound, services.ErrOrganizationNotFound, services.ErrOrganizationInactive:
			respondServiceError(c, err)
		default:
			helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully.",
		"event":   event,
	})
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid event ID.")
		return
	}

	event, err := h.events.Get(eventID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	page, err := helpers.StringToInt(c.DefaultQuery("page", "1"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid page number.")
		return
	}
	limit, err := helpers.StringToInt(c.DefaultQuery("limit", "10"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid limit.")
		return
	}

	events, total, err := h.events.List(services.EventFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":      events,
		"total":       total,
		"page":        page,
		"limit":       limit,
		"total_pages": (total + int64(limit) - 1) / int64(limit),
	})
}

type UpdateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Category    string `json:"category" binding:"required"`
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid event ID.")
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid input. Please check your fields.")
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid date format.")
		return
	}

	claims, ok := middleware.GetClaims(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, helpers.CodeUnauthenticated, "Missing token claims.")
		return
	}

	event, err := h.events.Update(eventID, services.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		Category:    req.Category,
	}, claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
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

	if err := h.events.Delete(eventID, claims); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully."})
}

type OrganizationRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

func (h *EventHandler) CreateOrganization(c *gin.Context) {
	var req OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid input. Please check your fields.")
		return
	}

	claims, ok := middleware.GetClaims(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, helpers.CodeUnauthenticated, "Missing token claims.")
		return
	}

	org, err := h.events.CreateOrganization(req.Name, claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Organization created successfully.",
		"organization": org,
	})
}

type EventStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED CANCELLED"`
}

// UpdateEventStatus is the admin approve/reject/cancel transition. COMPLETED
// is not accepted; it is derived from the event date.
func (h *EventHandler) UpdateEventStatus(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid event ID.")
		return
	}

	var req EventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid input. Status must be APPROVED, REJECTED or CANCELLED.")
		return
	}

	claims, ok := middleware.GetClaims(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, helpers.CodeUnauthenticated, "Missing token claims.")
		return
	}

	event, err := h.events.Transition(eventID, req.Status, claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event status updated.",
		"event":   event,
	})
}
