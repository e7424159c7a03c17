package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/adanyl0v/agua-vida/internal/models"
)

var googleScopes = []string{
	googleoauth2.OpenIDScope,
	googleoauth2.UserinfoProfileScope,
	googleoauth2.UserinfoEmailScope,
}

type googleIdentityServiceImpl struct {
	logger zerolog.Logger
	oauth  *oauth2.Config
}

func NewGoogleIdentityService(
	logger zerolog.Logger,
	clientID string,
	clientSecret string,
	callbackURL string,
) IdentityService {
	return &googleIdentityServiceImpl{
		logger: logger,
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Endpoint:     google.Endpoint,
			Scopes:       googleScopes,
		},
	}
}

func (s *googleIdentityServiceImpl) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

func (s *googleIdentityServiceImpl) Exchange(ctx context.Context, code string) (*models.User, error) {
	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to exchange authorization code")
		return nil, fmt.Errorf("%w: %w", ErrIdentityExchange, err)
	}

	svc, err := googleoauth2.NewService(ctx, option.WithTokenSource(s.oauth.TokenSource(ctx, tok)))
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to create userinfo service")
		return nil, fmt.Errorf("%w: %w", ErrIdentityExchange, err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to fetch google profile")
		return nil, fmt.Errorf("%w: %w", ErrIdentityExchange, err)
	}
	if info.Id == "" {
		s.logger.Error().Msg("google profile has no id")
		return nil, fmt.Errorf("%w: empty profile id", ErrIdentityExchange)
	}
	s.logger.Debug().
		Str("google_id", info.Id).
		Msg("fetched google profile")

	return &models.User{
		ID:        info.Id,
		Name:      info.Name,
		Email:     info.Email,
		AvatarURL: info.Picture,
	}, nil
}
