package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"corteBack/internal/models"
	"corteBack/utils"
)

// SessionStore persists refresh-token sessions.
type SessionStore interface {
	SetSession(ctx context.Context, session models.Session, ttl time.Duration) error
	GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error)
	DeleteSession(ctx context.Context, refreshToken string) error
}

type UserService struct {
	Provider     IdentityProvider
	Sessions     SessionStore
	TokenManager *utils.Manager
	AccessTTL    time.Duration
	RefreshTTL   time.Duration

	mu        sync.Mutex
	revokeFns []func(userID string)
}

// SignIn verifies the credentials with the identity provider and mints a token
// pair. models.ErrUserNotFound means the account does not exist; the caller is
// expected to offer registration instead of showing a generic error.
func (s *UserService) SignIn(ctx context.Context, email, password string) (models.Tokens, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return models.Tokens{}, models.ErrEmptyField
	}

	userID, err := s.Provider.VerifyPassword(ctx, email, password)
	if err != nil {
		return models.Tokens{}, err
	}

	return s.createSession(ctx, userID)
}

// SignUp registers the account with the identity provider and signs the new
// user in.
func (s *UserService) SignUp(ctx context.Context, email, password string) (models.Tokens, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return models.Tokens{}, models.ErrEmptyField
	}

	userID, err := s.Provider.CreateUser(ctx, email, password)
	if err != nil {
		return models.Tokens{}, err
	}

	return s.createSession(ctx, userID)
}

// SignOut deletes the session and notifies revocation listeners so live
// subscriptions for the user get torn down.
func (s *UserService) SignOut(ctx context.Context, userID, refreshToken string) error {
	if err := s.Sessions.DeleteSession(ctx, refreshToken); err != nil {
		return err
	}

	s.mu.Lock()
	fns := make([]func(string), len(s.revokeFns))
	copy(fns, s.revokeFns)
	s.mu.Unlock()

	for _, fn := range fns {
		fn(userID)
	}
	return nil
}

// CurrentUser resolves an access token to the owner id.
func (s *UserService) CurrentUser(accessToken string) (string, error) {
	return s.TokenManager.Parse(accessToken)
}

// Refresh mints a new access token for a valid refresh-token session.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	session, err := s.Sessions.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return "", "", err
	}

	accessToken, err := s.TokenManager.NewJWT(session.UserID, s.AccessTTL)
	if err != nil {
		return "", "", err
	}
	return session.UserID, accessToken, nil
}

// OnRevoke registers a listener invoked with the user id on sign-out.
func (s *UserService) OnRevoke(fn func(userID string)) {
	s.mu.Lock()
	s.revokeFns = append(s.revokeFns, fn)
	s.mu.Unlock()
}

func (s *UserService) createSession(ctx context.Context, userID string) (models.Tokens, error) {
	var (
		res models.Tokens
		err error
	)

	res.AccessToken, err = s.TokenManager.NewJWT(userID, s.AccessTTL)
	if err != nil {
		return models.Tokens{}, err
	}

	res.RefreshToken = uuid.New().String() // Fallback if token generation fails
	if token, err := s.TokenManager.NewRefreshToken(); err == nil {
		res.RefreshToken = token
	}

	session := models.Session{
		UserID:       userID,
		RefreshToken: res.RefreshToken,
	}
	if err = s.Sessions.SetSession(ctx, session, s.RefreshTTL); err != nil {
		return models.Tokens{}, err
	}

	return res, nil
}
