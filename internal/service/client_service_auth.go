package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-notes/internal/adapter"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/store"
	"github.com/MKhiriev/go-notes/internal/utils"
	"github.com/MKhiriev/go-notes/models"
)

type clientAuthService struct {
	sessions store.SessionRepository
	adapter  adapter.ServerAdapter
	now      func() time.Time

	logger *logger.Logger
}

func NewClientAuthService(sessions store.SessionRepository, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		sessions: sessions,
		adapter:  serverAdapter,
		now:      time.Now,
		logger:   logger,
	}
}

func (a *clientAuthService) SignIn(ctx context.Context, email, password string) (models.User, error) {
	return a.authenticate(ctx, email, password, a.adapter.Login)
}

func (a *clientAuthService) SignUp(ctx context.Context, email, password string) (models.User, error) {
	return a.authenticate(ctx, email, password, a.adapter.Register)
}

func (a *clientAuthService) authenticate(
	ctx context.Context,
	email, password string,
	call func(context.Context, models.User) (models.User, error),
) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: email and password are required", ErrInvalidDataProvided)
	}

	user, err := call(ctx, models.User{Email: email, Password: password})
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}

	session := models.Session{Email: user.Email, Token: a.adapter.Token(), CreatedAt: a.now()}
	if err = a.sessions.SaveSession(ctx, session); err != nil {
		// the user is signed in for this run anyway
		a.logger.Err(err).Str("func", "*clientAuthService.authenticate").Msg("failed to remember session")
	}

	return user, nil
}

// RestoreSession loads the remembered token and checks it with the server.
// When the server cannot be reached the session is kept so that drafts
// still work offline.
func (a *clientAuthService) RestoreSession(ctx context.Context) (models.Session, error) {
	session, err := a.sessions.GetSession(ctx)
	if err != nil {
		return models.Session{}, err
	}

	if expiresAt, err := utils.TokenExpiresAt(session.Token); err != nil || !expiresAt.After(a.now()) {
		a.forget(ctx)
		return models.Session{}, ErrSessionExpired
	}

	a.adapter.SetToken(session.Token)

	if _, err = a.adapter.CurrentUser(ctx); err != nil {
		mapped := mapAdapterError(err)
		if errors.Is(mapped, ErrTokenIsExpiredOrInvalid) || errors.Is(mapped, store.ErrNoUserWasFound) {
			a.forget(ctx)
			return models.Session{}, ErrSessionExpired
		}
		a.logger.Warn().Err(err).Str("func", "*clientAuthService.RestoreSession").Msg("server unreachable, using remembered session")
	}

	return session, nil
}

func (a *clientAuthService) SignOut(ctx context.Context) error {
	a.adapter.SetToken("")

	if err := a.sessions.DeleteSession(ctx); err != nil && !errors.Is(err, store.ErrLocalSessionNotFound) {
		return fmt.Errorf("delete local session: %w", err)
	}
	return nil
}

func (a *clientAuthService) forget(ctx context.Context) {
	a.adapter.SetToken("")
	if err := a.sessions.DeleteSession(ctx); err != nil && !errors.Is(err, store.ErrLocalSessionNotFound) {
		a.logger.Err(err).Str("func", "*clientAuthService.forget").Msg("failed to delete local session")
	}
}
