package services

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/campustix/campustix/internal/models"
)

// EventStore is the slice of event persistence the lifecycle needs. Status
// writes are guarded by the expected current status so two racing admins
// cannot both move the same event.
type EventStore interface {
	FindByID(id uuid.UUID) (*models.Event, error)
	Create(event *models.Event) error
	Save(event *models.Event) error
	// UpdateStatus transitions id from one status to another in a single
	// conditional write. Returns false when the event was no longer in the
	// expected status.
	UpdateStatus(id uuid.UUID, from, to string) (bool, error)
	Delete(id uuid.UUID) error
	List(filter EventFilter) ([]models.Event, int64, error)
}

type OrganizationStore interface {
	FindOrganizationByID(id uuid.UUID) (*models.Organization, error)
	CreateOrganization(org *models.Organization) error
}

type EventFilter struct {
	Status   string
	Category string
	Page     int
	Limit    int
}

// transitions is the full admin-driven state machine. REJECTED, CANCELLED and
// COMPLETED are absorbing; COMPLETED is never an admin target, it is derived
// from the event date.
var transitions = map[string]map[string]bool{
	models.EventPending: {
		models.EventApproved: true,
		models.EventRejected: true,
	},
	models.EventApproved: {
		models.EventCancelled: true,
	},
}

type EventService struct {
	store EventStore
	orgs  OrganizationStore
	users UserStore
	now   func() time.Time
}

func NewEventService(store EventStore, orgs OrganizationStore, users UserStore) *EventService {
	return &EventService{store: store, orgs: orgs, users: users, now: time.Now}
}

func (s *EventService) WithClock(now func() time.Time) *EventService {
	s.now = now
	return s
}

// EffectiveStatus derives the status an event should present at a given
// instant: an approved event whose date has passed reads as COMPLETED. Pure
// function of (status, date, now) so no background timer is needed.
func EffectiveStatus(event *models.Event, now time.Time) string {
	if event.Status == models.EventApproved && event.Date.Before(now) {
		return models.EventCompleted
	}
	return event.Status
}

// settle applies the lazy APPROVED->COMPLETED transition on read, persisting
// it opportunistically. A lost race just means another reader settled first.
func (s *EventService) settle(event *models.Event) {
	eff := EffectiveStatus(event, s.now())
	if eff != event.Status {
		if _, err := s.store.UpdateStatus(event.ID, event.Status, eff); err != nil {
			log.Printf("settle event %s: %v", event.ID, err)
		}
		event.Status = eff
	}
}

// CreateOrganization registers an organization that events can be published
// under. Admin-only; organizations have no further CRUD surface here.
func (s *EventService) CreateOrganization(name string, actor *Claims) (*models.Organization, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	org := &models.Organization{ID: uuid.New(), Name: name, Active: true}
	if err := s.orgs.CreateOrganization(org); err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}
	return org, nil
}

type CreateEventInput struct {
	Title          string
	Description    string
	Date           time.Time
	Location       string
	Category       string
	Capacity       int
	TicketType     string
	Price          *int
	OrganizationID uuid.UUID
}

// Create validates and persists a new event. Events start PENDING; events
// created by an admin are auto-approved, which is deliberate and logged.
func (s *EventService) Create(input CreateEventInput, actor *Claims) (*models.Event, error) {
	if input.Capacity <= 0 {
		return nil, fmt.Errorf("capacity must be a positive integer")
	}
	if !input.Date.After(s.now()) {
		return nil, fmt.Errorf("event date must be in the future")
	}
	switch input.TicketType {
	case models.TicketTypeFree:
		if input.Price != nil {
			return nil, fmt.Errorf("price not allowed for free events")
		}
	case models.TicketTypePaid:
		if input.Price == nil || *input.Price <= 0 {
			return nil, fmt.Errorf("price required for paid events")
		}
	default:
		return nil, fmt.Errorf("ticket type must be FREE or PAID")
	}

	creator, err := s.users.FindByID(actor.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	org, err := s.orgs.FindOrganizationByID(input.OrganizationID)
	if err != nil {
		return nil, ErrOrganizationNotFound
	}
	if !org.Active {
		return nil, ErrOrganizationInactive
	}

	event := &models.Event{
		ID:             uuid.New(),
		Title:          input.Title,
		Description:    input.Description,
		Date:           input.Date,
		Location:       input.Location,
		Category:       input.Category,
		Capacity:       input.Capacity,
		TicketType:     input.TicketType,
		Price:          input.Price,
		Status:         models.EventPending,
		OrganizationID: org.ID,
		CreatedByID:    creator.ID,
	}
	if creator.Role == models.RoleAdmin {
		event.Status = models.EventApproved
		log.Printf("event %s auto-approved: created by admin %s", event.ID, creator.ID)
	}

	if err := s.store.Create(event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// Transition moves an event through the admin state machine. Only admins may
// call it; any edge not in the table fails with ErrInvalidTransition,
// including every edge out of an absorbing state.
func (s *EventService) Transition(eventID uuid.UUID, target string, actor *Claims) (*models.Event, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	event, err := s.store.FindByID(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	s.settle(event)

	if !transitions[event.Status][target] {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, event.Status, target)
	}

	ok, err := s.store.UpdateStatus(event.ID, event.Status, target)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if !ok {
		// Someone else moved the event between our read and write.
		return nil, fmt.Errorf("%w: event status changed concurrently", ErrInvalidTransition)
	}
	event.Status = target
	return event, nil
}

// Get returns an event with the lazy completion applied.
func (s *EventService) Get(eventID uuid.UUID) (*models.Event, error) {
	event, err := s.store.FindByID(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	s.settle(event)
	return event, nil
}

func (s *EventService) List(filter EventFilter) ([]models.Event, int64, error) {
	events, total, err := s.store.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	now := s.now()
	for i := range events {
		events[i].Status = EffectiveStatus(&events[i], now)
	}
	return events, total, nil
}

type UpdateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	Category    string
}

// Update lets the creating organizer edit details while the event is still
// awaiting review. Approved events are immutable apart from the state machine.
func (s *EventService) Update(eventID uuid.UUID, input UpdateEventInput, actor *Claims) (*models.Event, error) {
	event, err := s.store.FindByID(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	if event.CreatedByID != actor.UserID && actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	if event.Status != models.EventPending {
		return nil, fmt.Errorf("%w: only pending events can be edited", ErrInvalidTransition)
	}
	if !input.Date.After(s.now()) {
		return nil, fmt.Errorf("event date must be in the future")
	}

	event.Title = input.Title
	event.Description = input.Description
	event.Date = input.Date
	event.Location = input.Location
	event.Category = input.Category

	if err := s.store.Save(event); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	return event, nil
}

// Delete removes an event and, by the cascade on the tickets FK, its tickets.
// Only the creator or an admin may delete.
func (s *EventService) Delete(eventID uuid.UUID, actor *Claims) error {
	event, err := s.store.FindByID(eventID)
	if err != nil {
		return ErrEventNotFound
	}
	if event.CreatedByID != actor.UserID && actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	if err := s.store.Delete(event.ID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
