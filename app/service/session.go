package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-internship/app/apperr"
	"github.com/vibast-solutions/ms-go-internship/app/entity"
	"github.com/vibast-solutions/ms-go-internship/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidSession = apperr.Authentication("invalid or expired session")

// SessionClaims is the signed cookie payload: the two session fields plus
// the registered expiry claims.
type SessionClaims struct {
	Username string      `json:"username"`
	Role     entity.Role `json:"role"`
	jwt.RegisteredClaims
}

type SessionService interface {
	Issue(principal entity.Principal) (string, time.Time, error)
	Parse(token string) (*entity.Principal, error)
}

type sessionService struct {
	cfg config.SessionConfig
	now func() time.Time
}

func NewSessionService(cfg config.SessionConfig) SessionService {
	return &sessionService{cfg: cfg, now: time.Now}
}

func (s *sessionService) Issue(principal entity.Principal) (string, time.Time, error) {
	if principal.Username == "" {
		return "", time.Time{}, errors.New("session requires a username")
	}

	now := s.now()
	expiresAt := now.Add(s.cfg.TTL)
	claims := &SessionClaims{
		Username: principal.Username,
		Role:     principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   principal.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *sessionService) Parse(tokenString string) (*entity.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Username == "" {
		return nil, ErrInvalidSession
	}

	return &entity.Principal{Username: claims.Username, Role: claims.Role}, nil
}
