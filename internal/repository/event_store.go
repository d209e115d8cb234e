package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campustix/campustix/internal/models"
	"github.com/campustix/campustix/internal/services"
)

type EventStore struct {
	db *gorm.DB
}

func NewEventStore(db *gorm.DB) *EventStore {
	return &EventStore{db: db}
}

func (s *EventStore) FindByID(id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := s.db.Preload("Organization").Preload("CreatedBy").Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventStore) Create(event *models.Event) error {
	return s.db.Create(event).Error
}

func (s *EventStore) Save(event *models.Event) error {
	return s.db.Save(event).Error
}

// UpdateStatus is a conditional write: the row only moves if it is still in
// the expected status, so two racing transitions resolve to one winner.
func (s *EventStore) UpdateStatus(id uuid.UUID, from, to string) (bool, error) {
	res := s.db.Model(&models.Event{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *EventStore) Delete(id uuid.UUID) error {
	return s.db.Select("Tickets").Delete(&models.Event{ID: id}).Error
}

func (s *EventStore) List(filter services.EventFilter) ([]models.Event, int64, error) {
	query := s.db.Model(&models.Event{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	var events []models.Event
	err := query.Preload("Organization").
		Offset((page - 1) * limit).
		Limit(limit).
		Order("date ASC").
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

type OrganizationStore struct {
	db *gorm.DB
}

func NewOrganizationStore(db *gorm.DB) *OrganizationStore {
	return &OrganizationStore{db: db}
}

func (s *OrganizationStore) CreateOrganization(org *models.Organization) error {
	return s.db.Create(org).Error
}

func (s *OrganizationStore) FindOrganizationByID(id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	if err := s.db.Where("id = ?", id).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}
