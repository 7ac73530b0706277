package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/akau-shop/backend/internal/domain/shared"
	"github.com/akau-shop/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginDisabled      = errors.New("admin login is not configured")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrSessionRevoked     = errors.New("session has been revoked")
)

// Claims represents the admin session JWT claims
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Session is an issued admin session
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionService issues and validates admin session tokens. Each login
// gets its own token whose ID is recorded in the session store; a token is
// only accepted while both its signature and its store entry hold, so one
// logout or revocation never affects other sessions.
type SessionService struct {
	password string
	secret   []byte
	ttl      time.Duration
	issuer   string
	store    shared.SessionStore
}

// NewSessionService creates a new SessionService. When no token secret is
// configured a random per-process secret is generated, which invalidates
// outstanding tokens on restart; production config requires an explicit
// secret.
func NewSessionService(cfg config.AdminConfig, issuer string, store shared.SessionStore) *SessionService {
	secret := []byte(cfg.TokenSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			panic("failed to generate session secret: " + err.Error())
		}
	}

	return &SessionService{
		password: cfg.Password,
		secret:   secret,
		ttl:      cfg.TokenTTL,
		issuer:   issuer,
		store:    store,
	}
}

// Login verifies the admin password and issues a fresh session token
func (s *SessionService) Login(ctx context.Context, password string) (*Session, error) {
	if s.password == "" {
		return nil, ErrLoginDisabled
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.ttl)
	jti := uuid.New().String()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    s.issuer,
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: "admin",
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	if err := s.store.Put(ctx, jti, s.ttl); err != nil {
		return nil, err
	}

	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Validate checks a session token's signature and expiry and confirms the
// session is still recorded in the store.
func (s *SessionService) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	active, err := s.store.Exists(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrSessionRevoked
	}

	return claims, nil
}

// Logout revokes the session carried by the token. An already invalid
// token is not an error; the session is gone either way.
func (s *SessionService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil
	}
	return s.store.Revoke(ctx, claims.ID)
}

func (s *SessionService) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
