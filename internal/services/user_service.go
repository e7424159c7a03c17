package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/agua-vida/internal/models"
	"github.com/adanyl0v/agua-vida/internal/store"
)

type userServiceImpl struct {
	logger zerolog.Logger
	store  *store.Memory
}

func NewUserService(
	logger zerolog.Logger,
	store *store.Memory,
) UserService {
	return &userServiceImpl{
		logger: logger,
		store:  store,
	}
}

func (s *userServiceImpl) FindOrCreate(_ context.Context, profile models.User) (*models.User, error) {
	user, created := s.store.FindOrCreateUser(profile)
	if created {
		s.logger.Info().
			Str("user_id", user.ID).
			Str("email", user.Email).
			Msg("created user")
	} else {
		s.logger.Debug().
			Str("user_id", user.ID).
			Msg("found user")
	}
	return &user, nil
}

func (s *userServiceImpl) GetByID(_ context.Context, userID string) (*models.User, error) {
	user, err := s.store.FindUserByID(userID)
	if err != nil {
		s.logger.Warn().
			Str("user_id", userID).
			Msg("user not found")
		return nil, err
	}
	return &user, nil
}
