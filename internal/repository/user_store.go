package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campustix/campustix/internal/models"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByStudentID(studentID string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("student_id = ?", studentID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailOrStudentID is the login lookup: either identifier matches.
func (s *UserStore) FindByEmailOrStudentID(identifier string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ? OR student_id = ?", identifier, identifier).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Create(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *UserStore) UpdateAccountStatus(id uuid.UUID, status string) error {
	return s.db.Model(&models.User{}).Where("id = ?", id).Update("account_status", status).Error
}
