package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type sessionServiceImpl struct {
	logger     zerolog.Logger
	issuer     string
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

func NewSessionService(
	logger zerolog.Logger,
	issuer string,
	signingKey []byte,
	ttl time.Duration,
) SessionService {
	return &sessionServiceImpl{
		logger:     logger,
		issuer:     issuer,
		signingKey: signingKey,
		ttl:        ttl,
		now:        time.Now,
	}
}

func (s *sessionServiceImpl) TTL() time.Duration {
	return s.ttl
}

func (s *sessionServiceImpl) Issue(userID string) (*Session, error) {
	tokenUUID, err := uuid.NewRandom()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate token id")
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        tokenUUID.String(),
		Issuer:    s.issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to sign session token")
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	s.logger.Debug().
		Str("user_id", userID).
		Time("expires_at", expiresAt).
		Msg("issued session")

	return &Session{
		Token:     signed,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *sessionServiceImpl) Parse(token string) (string, error) {
	t, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %w", ErrSessionExpired, err)
		}
		return "", fmt.Errorf("%w: %w", ErrSessionInvalid, err)
	}

	claims, ok := t.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrSessionInvalid
	}
	return claims.Subject, nil
}
