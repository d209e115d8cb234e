package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/campustix/campustix/internal/helpers"
	"github.com/campustix/campustix/internal/models"
)

// TicketStore is the persistence contract for tickets. ClaimTicket and
// CheckIn carry the two race-sensitive invariants: capacity is enforced by a
// single conditional increment-and-insert, and check-in flips exactly once
// keyed on the code's uniqueness. Both must be atomic at the store, not here,
// because multiple server instances share the database.
type TicketStore interface {
	FindByID(id uuid.UUID) (*models.Ticket, error)
	FindByCode(code string) (*models.Ticket, error)
	FindByEventAndUser(eventID, userID uuid.UUID) (*models.Ticket, error)
	ListByEvent(eventID uuid.UUID) ([]models.Ticket, error)
	// ClaimTicket increments the event's issued counter subject to
	// tickets_issued < capacity and inserts the ticket in one transaction.
	// Returns ErrSoldOut or ErrAlreadyClaimed on a violated precondition.
	ClaimTicket(eventID uuid.UUID, ticket *models.Ticket) error
	// CheckIn sets checked_in where it is still false. Returns false when
	// the ticket was already checked in.
	CheckIn(code string, at time.Time) (bool, error)
	UpdatePaymentStatus(id uuid.UUID, from, to string) (bool, error)
}

type TicketService struct {
	store  TicketStore
	events *EventService
	secret string
	now    func() time.Time
}

func NewTicketService(store TicketStore, events *EventService, secret string) *TicketService {
	return &TicketService{store: store, events: events, secret: secret, now: time.Now}
}

func (s *TicketService) WithClock(now func() time.Time) *TicketService {
	s.now = now
	return s
}

// Claim reserves one ticket for the user against the event's capacity. The
// pre-checks give precise errors; the store's conditional write is what
// actually holds the capacity and one-per-user invariants under concurrency.
func (s *TicketService) Claim(eventID uuid.UUID, user *Claims) (*models.Ticket, error) {
	event, err := s.events.Get(eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != models.EventApproved || !event.Date.After(s.now()) {
		return nil, ErrEventNotClaimable
	}
	if _, err := s.store.FindByEventAndUser(event.ID, user.UserID); err == nil {
		return nil, ErrAlreadyClaimed
	}

	code, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate redemption code: %w", err)
	}

	paymentStatus := models.PaymentFree
	if event.TicketType == models.TicketTypePaid {
		paymentStatus = models.PaymentPending
	}

	ticket := &models.Ticket{
		ID:            uuid.New(),
		EventID:       event.ID,
		UserID:        user.UserID,
		Code:          code,
		Claimed:       true,
		CheckedIn:     false,
		PaymentStatus: paymentStatus,
	}
	if err := s.store.ClaimTicket(event.ID, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// CheckIn redeems a scanned code exactly once. qrData may be the signed QR
// payload or a bare redemption code typed in at the door.
func (s *TicketService) CheckIn(qrData string) (*models.Ticket, error) {
	code, err := helpers.ExtractRedemptionCode(qrData, s.secret)
	if err != nil {
		return nil, ErrTicketNotFound
	}

	ticket, err := s.store.FindByCode(code)
	if err != nil {
		return nil, ErrTicketNotFound
	}

	at := s.now()
	ok, err := s.store.CheckIn(code, at)
	if err != nil {
		return nil, fmt.Errorf("check in: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyCheckedIn
	}
	ticket.CheckedIn = true
	ticket.CheckedInAt = &at
	return ticket, nil
}

// QRPayload is the string the client renders as a QR image for a ticket.
func (s *TicketService) QRPayload(ticket *models.Ticket) string {
	return helpers.GenerateQRPayload(ticket.Code, ticket.EventID, s.secret)
}

// GetOwned returns a ticket only to its owner.
func (s *TicketService) GetOwned(ticketID uuid.UUID, actor *Claims) (*models.Ticket, error) {
	ticket, err := s.store.FindByID(ticketID)
	if err != nil {
		return nil, ErrTicketNotFound
	}
	if ticket.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	return ticket, nil
}

// CompletePayment is the mocked payment capture for a paid ticket: a single
// PENDING -> COMPLETED flip, owner-only, no gateway involved.
func (s *TicketService) CompletePayment(ticketID uuid.UUID, actor *Claims) (*models.Ticket, error) {
	ticket, err := s.GetOwned(ticketID, actor)
	if err != nil {
		return nil, err
	}
	ok, err := s.store.UpdatePaymentStatus(ticket.ID, models.PaymentPending, models.PaymentCompleted)
	if err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}
	if !ok {
		return nil, ErrPaymentNotPending
	}
	ticket.PaymentStatus = models.PaymentCompleted
	return ticket, nil
}

type EventAnalytics struct {
	TicketsIssued     int     `json:"tickets_issued"`
	Attended          int     `json:"attended"`
	AttendanceRate    float64 `json:"attendance_rate"`
	RemainingCapacity int     `json:"remaining_capacity"`
}

// ComputeAnalytics reads the claim/check-in counters from one ticket listing
// so the numbers are a consistent snapshot rather than separate counts.
func (s *TicketService) ComputeAnalytics(eventID uuid.UUID) (*EventAnalytics, error) {
	event, err := s.events.Get(eventID)
	if err != nil {
		return nil, err
	}
	tickets, err := s.store.ListByEvent(event.ID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	issued := len(tickets)
	attended := 0
	for _, t := range tickets {
		if t.CheckedIn {
			attended++
		}
	}

	rate := 0.0
	if issued > 0 {
		rate = float64(attended) / float64(issued)
	}
	return &EventAnalytics{
		TicketsIssued:     issued,
		Attended:          attended,
		AttendanceRate:    rate,
		RemainingCapacity: event.Capacity - issued,
	}, nil
}

// ExportAttendance renders the event's tickets as CSV for the organizer.
func (s *TicketService) ExportAttendance(eventID uuid.UUID) ([]byte, error) {
	event, err := s.events.Get(eventID)
	if err != nil {
		return nil, err
	}
	tickets, err := s.store.ListByEvent(event.ID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"ticket_id", "user_id", "code", "payment_status", "checked_in", "checked_in_at"}); err != nil {
		return nil, err
	}
	for _, t := range tickets {
		checkedInAt := ""
		if t.CheckedInAt != nil {
			checkedInAt = t.CheckedInAt.UTC().Format(time.RFC3339)
		}
		row := []string{
			t.ID.String(),
			t.UserID.String(),
			t.Code,
			t.PaymentStatus,
			strconv.FormatBool(t.CheckedIn),
			checkedInAt,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
