package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campustix/campustix/internal/models"
)

const (
	tokenUseAccess  = "access"
	tokenUseRefresh = "refresh"

	DefaultAccessTTL  = 30 * time.Minute
	DefaultRefreshTTL = 30 * 24 * time.Hour
)

// Claims is the verified identity carried by a token. Authorization decisions
// read the role from here rather than re-querying storage per request; the
// short access TTL bounds the staleness window.
type Claims struct {
	UserID        uuid.UUID `json:"-"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	AccountStatus string    `json:"account_status"`
	TokenUse      string    `json:"token_use"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenService signs and verifies the access/refresh token pair. Access and
// refresh tokens are signed with distinct secrets so leaking one does not make
// the other forgeable. The service holds no state beyond secret material and
// the clock.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// WithClock overrides the time source. Used by tests to pin expiry instants.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

func (s *TokenService) IssueTokens(user *models.User) (*TokenPair, error) {
	access, err := s.sign(user, tokenUseAccess, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user, tokenUseRefresh, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) sign(user *models.User, use string, secret []byte, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		Email:         user.Email,
		Role:          user.Role,
		AccountStatus: user.AccountStatus,
		TokenUse:      use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *TokenService) VerifyAccess(tokenString string) (*Claims, error) {
	return s.verify(tokenString, tokenUseAccess, s.accessSecret)
}

func (s *TokenService) VerifyRefresh(tokenString string) (*Claims, error) {
	return s.verify(tokenString, tokenUseRefresh, s.refreshSecret)
}

func (s *TokenService) verify(tokenString, use string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenUse != use {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims.UserID = userID
	return claims, nil
}

// MintAccess re-derives a fresh access token for a user. The refresh flow
// re-reads the user record first (AuthService.Refresh), so a suspension takes
// effect at the next refresh rather than surviving the full refresh TTL.
func (s *TokenService) MintAccess(user *models.User) (string, error) {
	return s.sign(user, tokenUseAccess, s.accessSecret, s.accessTTL)
}
