package services

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campustix/campustix/internal/models"
)

// fakeEventStore implements EventStore in memory. Status writes go through
// the same conditional-update contract the postgres store provides.
type fakeEventStore struct {
	mu     sync.Mutex
	events map[uuid.UUID]*models.Event
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[uuid.UUID]*models.Event)}
}

func (f *fakeEventStore) FindByID(id uuid.UUID) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.events[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, errNotFound
}

func (f *fakeEventStore) Create(event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *event
	f.events[event.ID] = &copied
	return nil
}

func (f *fakeEventStore) Save(event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[event.ID]; !ok {
		return errNotFound
	}
	copied := *event
	f.events[event.ID] = &copied
	return nil
}

func (f *fakeEventStore) UpdateStatus(id uuid.UUID, from, to string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok || e.Status != from {
		return false, nil
	}
	e.Status = to
	return true, nil
}

func (f *fakeEventStore) Delete(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.events, id)
	return nil
}

func (f *fakeEventStore) List(filter EventFilter) ([]models.Event, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Event
	for _, e := range f.events {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

type fakeOrgStore struct {
	orgs map[uuid.UUID]*models.Organization
}

func newFakeOrgStore() *fakeOrgStore {
	return &fakeOrgStore{orgs: make(map[uuid.UUID]*models.Organization)}
}

func (f *fakeOrgStore) CreateOrganization(org *models.Organization) error {
	f.orgs[org.ID] = org
	return nil
}

func (f *fakeOrgStore) FindOrganizationByID(id uuid.UUID) (*models.Organization, error) {
	if o, ok := f.orgs[id]; ok {
		return o, nil
	}
	return nil, errNotFound
}

func (f *fakeOrgStore) seed(active bool) *models.Organization {
	org := &models.Organization{ID: uuid.New(), Name: "Chess Club", Active: active}
	f.orgs[org.ID] = org
	return org
}

func adminClaims(id uuid.UUID) *Claims {
	return &Claims{UserID: id, Role: models.RoleAdmin}
}

func organizerClaims(id uuid.UUID) *Claims {
	return &Claims{UserID: id, Role: models.RoleOrganizer}
}

type eventFixture struct {
	svc       *EventService
	store     *fakeEventStore
	users     *fakeUserStore
	orgs      *fakeOrgStore
	now       time.Time
	admin     *models.User
	organizer *models.User
	org       *models.Organization
}

func newEventFixture(t *testing.T) *eventFixture {
	t.Helper()
	store := newFakeEventStore()
	users := newFakeUserStore()
	orgs := newFakeOrgStore()
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	fx := &eventFixture{
		svc:       NewEventService(store, orgs, users).WithClock(func() time.Time { return now }),
		store:     store,
		users:     users,
		orgs:      orgs,
		now:       now,
		admin:     users.seed(t, "admin@campus.edu", "hunter22", models.RoleAdmin, models.AccountActive, nil),
		organizer: users.seed(t, "lead@campus.edu", "hunter22", models.RoleOrganizer, models.AccountActive, nil),
		org:       orgs.seed(true),
	}
	return fx
}

func (fx *eventFixture) seedEvent(status string, date time.Time) *models.Event {
	event := &models.Event{
		ID:             uuid.New(),
		Title:          "Spring Concert",
		Description:    "Open air concert",
		Date:           date,
		Location:       "Main Quad",
		Category:       "music",
		Capacity:       100,
		TicketType:     models.TicketTypeFree,
		Status:         status,
		OrganizationID: fx.org.ID,
		CreatedByID:    fx.organizer.ID,
	}
	fx.store.Create(event)
	return event
}

func TestTransitionTableExhaustive(t *testing.T) {
	statuses := []string{
		models.EventPending, models.EventApproved, models.EventRejected,
		models.EventCancelled, models.EventCompleted,
	}
	targets := []string{
		models.EventPending, models.EventApproved, models.EventRejected,
		models.EventCancelled, models.EventCompleted,
	}
	allowed := map[[2]string]bool{
		{models.EventPending, models.EventApproved}:   true,
		{models.EventPending, models.EventRejected}:   true,
		{models.EventApproved, models.EventCancelled}: true,
	}

	for _, current := range statuses {
		for _, target := range targets {
			t.Run(current+"_to_"+target, func(t *testing.T) {
				fx := newEventFixture(t)
				event := fx.seedEvent(current, fx.now.Add(48*time.Hour))

				updated, err := fx.svc.Transition(event.ID, target, adminClaims(fx.admin.ID))
				if allowed[[2]string{current, target}] {
					require.NoError(t, err)
					assert.Equal(t, target, updated.Status)
				} else {
					assert.ErrorIs(t, err, ErrInvalidTransition)
				}
			})
		}
	}
}

func TestTransitionRequiresAdmin(t *testing.T) {
	fx := newEventFixture(t)
	event := fx.seedEvent(models.EventPending, fx.now.Add(48*time.Hour))

	_, err := fx.svc.Transition(event.ID, models.EventApproved, organizerClaims(fx.organizer.ID))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = fx.svc.Transition(event.ID, models.EventApproved, &Claims{UserID: uuid.New(), Role: models.RoleStudent})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestApproveThenReapproveFails(t *testing.T) {
	fx := newEventFixture(t)
	event := fx.seedEvent(models.EventPending, fx.now.Add(48*time.Hour))

	_, err := fx.svc.Transition(event.ID, models.EventApproved, adminClaims(fx.admin.ID))
	require.NoError(t, err)

	// A second admin trying to move it back is a state-machine violation.
	_, err = fx.svc.Transition(event.ID, models.EventPending, adminClaims(fx.admin.ID))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestLazyCompletion(t *testing.T) {
	fx := newEventFixture(t)
	event := fx.seedEvent(models.EventApproved, fx.now.Add(-time.Hour))

	got, err := fx.svc.Get(event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EventCompleted, got.Status)

	// The settled status is persisted, not just presented.
	stored, err := fx.store.FindByID(event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EventCompleted, stored.Status)

	// COMPLETED is absorbing: no cancel after the fact.
	_, err = fx.svc.Transition(event.ID, models.EventCancelled, adminClaims(fx.admin.ID))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestEffectiveStatusIsPure(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	past := &models.Event{Status: models.EventApproved, Date: now.Add(-time.Minute)}
	future := &models.Event{Status: models.EventApproved, Date: now.Add(time.Minute)}
	pending := &models.Event{Status: models.EventPending, Date: now.Add(-time.Minute)}

	assert.Equal(t, models.EventCompleted, EffectiveStatus(past, now))
	assert.Equal(t, models.EventApproved, EffectiveStatus(future, now))
	// Only APPROVED events complete; a pending event past its date stays pending.
	assert.Equal(t, models.EventPending, EffectiveStatus(pending, now))
}

func TestCreateEventValidation(t *testing.T) {
	fx := newEventFixture(t)
	price := 1500

	base := CreateEventInput{
		Title:          "Hack Night",
		Description:    "Monthly hack night",
		Date:           fx.now.Add(72 * time.Hour),
		Location:       "Lab 3",
		Category:       "tech",
		Capacity:       50,
		TicketType:     models.TicketTypeFree,
		OrganizationID: fx.org.ID,
	}

	t.Run("organizer event starts pending", func(t *testing.T) {
		event, err := fx.svc.Create(base, organizerClaims(fx.organizer.ID))
		require.NoError(t, err)
		assert.Equal(t, models.EventPending, event.Status)
	})

	t.Run("admin event auto-approved", func(t *testing.T) {
		event, err := fx.svc.Create(base, adminClaims(fx.admin.ID))
		require.NoError(t, err)
		assert.Equal(t, models.EventApproved, event.Status)
	})

	t.Run("zero capacity", func(t *testing.T) {
		input := base
		input.Capacity = 0
		_, err := fx.svc.Create(input, organizerClaims(fx.organizer.ID))
		assert.Error(t, err)
	})

	t.Run("past date", func(t *testing.T) {
		input := base
		input.Date = fx.now.Add(-time.Hour)
		_, err := fx.svc.Create(input, organizerClaims(fx.organizer.ID))
		assert.Error(t, err)
	})

	t.Run("paid without price", func(t *testing.T) {
		input := base
		input.TicketType = models.TicketTypePaid
		_, err := fx.svc.Create(input, organizerClaims(fx.organizer.ID))
		assert.Error(t, err)
	})

	t.Run("paid with price", func(t *testing.T) {
		input := base
		input.TicketType = models.TicketTypePaid
		input.Price = &price
		_, err := fx.svc.Create(input, organizerClaims(fx.organizer.ID))
		assert.NoError(t, err)
	})

	t.Run("free with price", func(t *testing.T) {
		input := base
		input.Price = &price
		_, err := fx.svc.Create(input, organizerClaims(fx.organizer.ID))
		assert.Error(t, err)
	})

	t.Run("unknown creator", func(t *testing.T) {
		_, err := fx.svc.Create(base, organizerClaims(uuid.New()))
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("unknown organization", func(t *testing.T) {
		input := base
		input.OrganizationID = uuid.New()
		_, err := fx.svc.Create(input, organizerClaims(fx.organizer.ID))
		assert.ErrorIs(t, err, ErrOrganizationNotFound)
	})

	t.Run("inactive organization", func(t *testing.T) {
		inactive := fx.orgs.seed(false)
		input := base
		input.OrganizationID = inactive.ID
		_, err := fx.svc.Create(input, organizerClaims(fx.organizer.ID))
		assert.ErrorIs(t, err, ErrOrganizationInactive)
	})
}

func TestUpdateEventPermissions(t *testing.T) {
	fx := newEventFixture(t)
	event := fx.seedEvent(models.EventPending, fx.now.Add(48*time.Hour))

	input := UpdateEventInput{
		Title:       "Renamed",
		Description: "Updated description",
		Date:        fx.now.Add(96 * time.Hour),
		Location:    "New Hall",
		Category:    "music",
	}

	_, err := fx.svc.Update(event.ID, input, organizerClaims(uuid.New()))
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := fx.svc.Update(event.ID, input, organizerClaims(fx.organizer.ID))
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	approved := fx.seedEvent(models.EventApproved, fx.now.Add(48*time.Hour))
	_, err = fx.svc.Update(approved.ID, input, organizerClaims(fx.organizer.ID))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDeleteEventPermissions(t *testing.T) {
	fx := newEventFixture(t)
	event := fx.seedEvent(models.EventPending, fx.now.Add(48*time.Hour))

	err := fx.svc.Delete(event.ID, organizerClaims(uuid.New()))
	assert.ErrorIs(t, err, ErrForbidden)

	err = fx.svc.Delete(event.ID, adminClaims(fx.admin.ID))
	require.NoError(t, err)

	_, err = fx.svc.Get(event.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
