package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campustix/campustix/internal/models"
)

// UserStore is the slice of user persistence the auth flow needs.
type UserStore interface {
	// FindByEmailOrStudentID matches either identifier and errors when
	// neither matches.
	FindByEmailOrStudentID(identifier string) (*models.User, error)
	FindByID(id uuid.UUID) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByStudentID(studentID string) (*models.User, error)
	Create(user *models.User) error
	UpdateAccountStatus(id uuid.UUID, status string) error
}

type AuthService struct {
	store  UserStore
	tokens *TokenService
}

func NewAuthService(store UserStore, tokens *TokenService) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Role           string
	StudentID      *string
	OrganizationID *uuid.UUID
}

// Register creates an account. Students are active immediately; organizer
// applications start PENDING and stay locked out of login until an admin
// reviews them.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	// Admin accounts are seeded, never registered.
	if input.Role != models.RoleStudent && input.Role != models.RoleOrganizer {
		return nil, fmt.Errorf("role must be STUDENT or ORGANIZER")
	}

	if _, err := s.store.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	}
	if input.StudentID != nil {
		if _, err := s.store.FindByStudentID(*input.StudentID); err == nil {
			return nil, ErrStudentIDTaken
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	status := models.AccountActive
	if input.Role == models.RoleOrganizer {
		status = models.AccountPending
	}

	user := &models.User{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(input.Name),
		Email:          email,
		StudentID:      input.StudentID,
		PasswordHash:   string(hashed),
		Role:           input.Role,
		AccountStatus:  status,
		OrganizationID: input.OrganizationID,
	}
	if err := s.store.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and gates on account status. The password is
// checked before the status so an unauthenticated caller cannot distinguish a
// pending or suspended account from a wrong password without knowing the
// password itself.
func (s *AuthService) Login(identifier, password string) (*models.User, *TokenPair, error) {
	user, err := s.store.FindByEmailOrStudentID(strings.TrimSpace(identifier))
	if err != nil {
		return nil, nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	switch user.AccountStatus {
	case models.AccountPending:
		return nil, nil, ErrPendingApproval
	case models.AccountRejected:
		return nil, nil, ErrRejected
	case models.AccountSuspended:
		return nil, nil, ErrSuspended
	}

	pair, err := s.tokens.IssueTokens(user)
	if err != nil {
		return nil, nil, fmt.Errorf("issue tokens: %w", err)
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a fresh access token. The user
// record is re-read so a suspension or demotion takes effect here instead of
// surviving until the refresh token expires; any non-active account forces
// re-authentication.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}
	user, err := s.store.FindByID(claims.UserID)
	if err != nil {
		return "", ErrInvalidToken
	}
	if user.AccountStatus != models.AccountActive {
		return "", ErrInvalidToken
	}
	return s.tokens.MintAccess(user)
}

// ReviewAccount is the admin action that settles an organizer application or
// suspends/reinstates an account. Accounts never transition themselves to
// ACTIVE; this is the only path there besides registration.
func (s *AuthService) ReviewAccount(userID uuid.UUID, status string) (*models.User, error) {
	if !models.ValidAccountStatus(status) || status == models.AccountPending {
		return nil, fmt.Errorf("%w: cannot set status %q", ErrInvalidTransition, status)
	}
	user, err := s.store.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if err := s.store.UpdateAccountStatus(user.ID, status); err != nil {
		return nil, fmt.Errorf("update account status: %w", err)
	}
	user.AccountStatus = status
	return user, nil
}
