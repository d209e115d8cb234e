package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campustix/campustix/internal/models"
	"github.com/campustix/campustix/internal/services"
)

type TicketStore struct {
	db *gorm.DB
}

func NewTicketStore(db *gorm.DB) *TicketStore {
	return &TicketStore{db: db}
}

func (s *TicketStore) FindByID(id uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.Preload("Event").Where("id = ?", id).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *TicketStore) FindByCode(code string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.Preload("Event").Preload("User").Where("code = ?", code).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *TicketStore) FindByEventAndUser(eventID, userID uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *TicketStore) ListByEvent(eventID uuid.UUID) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := s.db.Preload("User").Where("event_id = ?", eventID).Order("created_at ASC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// ClaimTicket holds the capacity invariant. The counter bump is a single
// conditional UPDATE (tickets_issued < capacity evaluated and applied in one
// statement, never read-then-write), and the insert rides the same
// transaction so a failed insert rolls the counter back. Overselling under
// concurrent claims is impossible regardless of how many server instances
// are running.
func (s *TicketStore) ClaimTicket(eventID uuid.UUID, ticket *models.Ticket) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			`UPDATE events
			 SET tickets_issued = tickets_issued + 1, updated_at = ?
			 WHERE id = ? AND deleted_at IS NULL
			   AND status = ? AND date > ?
			   AND tickets_issued < capacity`,
			time.Now(), eventID, models.EventApproved, time.Now(),
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return s.classifyClaimFailure(tx, eventID)
		}

		if err := tx.Create(ticket).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return services.ErrAlreadyClaimed
			}
			return err
		}
		return nil
	})
}

// classifyClaimFailure decides which precondition the conditional update lost
// to, in the same post-check style Event.io uses after its no-match update.
func (s *TicketStore) classifyClaimFailure(tx *gorm.DB, eventID uuid.UUID) error {
	var event models.Event
	if err := tx.Where("id = ?", eventID).First(&event).Error; err != nil {
		return services.ErrEventNotFound
	}
	if event.Status != models.EventApproved || !event.Date.After(time.Now()) {
		return services.ErrEventNotClaimable
	}
	return services.ErrSoldOut
}

// CheckIn flips checked_in exactly once, keyed on the code's uniqueness. Two
// concurrent scans of the same code produce one affected row and one miss.
func (s *TicketStore) CheckIn(code string, at time.Time) (bool, error) {
	res := s.db.Model(&models.Ticket{}).
		Where("code = ? AND checked_in = ?", code, false).
		Updates(map[string]interface{}{"checked_in": true, "checked_in_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *TicketStore) UpdatePaymentStatus(id uuid.UUID, from, to string) (bool, error) {
	res := s.db.Model(&models.Ticket{}).
		Where("id = ? AND payment_status = ?", id, from).
		Update("payment_status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
