package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"corteBack/internal/models"
	"corteBack/utils"
)

type fakeProvider struct {
	verifyCalls int
	createCalls int
	verifyErr   error
	createErr   error
	uid         string
}

func (f *fakeProvider) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	f.verifyCalls++
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return f.uid, nil
}

func (f *fakeProvider) CreateUser(ctx context.Context, email, password string) (string, error) {
	f.createCalls++
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.uid, nil
}

type fakeSessions struct {
	sessions map[string]models.Session
	deleted  []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]models.Session)}
}

func (f *fakeSessions) SetSession(ctx context.Context, session models.Session, ttl time.Duration) error {
	f.sessions[session.RefreshToken] = session
	return nil
}

func (f *fakeSessions) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	session, ok := f.sessions[refreshToken]
	if !ok {
		return models.Session{}, models.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeSessions) DeleteSession(ctx context.Context, refreshToken string) error {
	f.deleted = append(f.deleted, refreshToken)
	delete(f.sessions, refreshToken)
	return nil
}

func newUserService(t *testing.T, provider *fakeProvider, sessions *fakeSessions) *UserService {
	t.Helper()
	manager, err := utils.NewManager("test-signing-key")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return &UserService{
		Provider:     provider,
		Sessions:     sessions,
		TokenManager: manager,
		AccessTTL:    time.Hour,
		RefreshTTL:   24 * time.Hour,
	}
}

func TestSignInUnknownAccountOffersRegistration(t *testing.T) {
	provider := &fakeProvider{verifyErr: models.ErrUserNotFound}
	svc := newUserService(t, provider, newFakeSessions())

	_, err := svc.SignIn(context.Background(), "new@corte.dev", "secret123")
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound got %v", err)
	}
	if provider.verifyCalls != 1 {
		t.Fatalf("expected provider to be asked exactly once, got %d", provider.verifyCalls)
	}
}

func TestSignInEmptyFieldsSkipProvider(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "secret123"},
		{"whitespace email", "   ", "secret123"},
		{"empty password", "user@corte.dev", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &fakeProvider{uid: "uid-1"}
			svc := newUserService(t, provider, newFakeSessions())

			_, err := svc.SignIn(context.Background(), tc.email, tc.password)
			if !errors.Is(err, models.ErrEmptyField) {
				t.Fatalf("expected ErrEmptyField got %v", err)
			}
			if provider.verifyCalls != 0 {
				t.Fatalf("expected no provider call, got %d", provider.verifyCalls)
			}
		})
	}
}

func TestSignInCreatesSession(t *testing.T) {
	provider := &fakeProvider{uid: "uid-42"}
	sessions := newFakeSessions()
	svc := newUserService(t, provider, sessions)

	tokens, err := svc.SignIn(context.Background(), "user@corte.dev", "secret123")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", tokens)
	}

	session, ok := sessions.sessions[tokens.RefreshToken]
	if !ok {
		t.Fatalf("session not stored")
	}
	if session.UserID != "uid-42" {
		t.Fatalf("expected session owner uid-42 got %s", session.UserID)
	}

	userID, err := svc.CurrentUser(tokens.AccessToken)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if userID != "uid-42" {
		t.Fatalf("expected uid-42 got %s", userID)
	}
}

func TestSignUpProviderRejection(t *testing.T) {
	provider := &fakeProvider{createErr: models.ErrDuplicateEmail}
	svc := newUserService(t, provider, newFakeSessions())

	_, err := svc.SignUp(context.Background(), "dup@corte.dev", "secret123")
	if !errors.Is(err, models.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail got %v", err)
	}
}

func TestSignOutRevokesAndNotifies(t *testing.T) {
	provider := &fakeProvider{uid: "uid-7"}
	sessions := newFakeSessions()
	svc := newUserService(t, provider, sessions)

	tokens, err := svc.SignIn(context.Background(), "user@corte.dev", "secret123")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	var revoked []string
	svc.OnRevoke(func(userID string) { revoked = append(revoked, userID) })

	if err := svc.SignOut(context.Background(), "uid-7", tokens.RefreshToken); err != nil {
		t.Fatalf("SignOut: %v", err)
	}

	if len(revoked) != 1 || revoked[0] != "uid-7" {
		t.Fatalf("expected one revocation for uid-7, got %v", revoked)
	}
	if _, err := sessions.GetSessionByToken(context.Background(), tokens.RefreshToken); !errors.Is(err, models.ErrSessionNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
}

func TestRefreshMintsAccessToken(t *testing.T) {
	provider := &fakeProvider{uid: "uid-9"}
	sessions := newFakeSessions()
	svc := newUserService(t, provider, sessions)

	tokens, err := svc.SignIn(context.Background(), "user@corte.dev", "secret123")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	userID, accessToken, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if userID != "uid-9" {
		t.Fatalf("expected uid-9 got %s", userID)
	}
	if parsed, err := svc.CurrentUser(accessToken); err != nil || parsed != "uid-9" {
		t.Fatalf("expected valid token for uid-9, got %s (%v)", parsed, err)
	}

	if _, _, err := svc.Refresh(context.Background(), "unknown-token"); !errors.Is(err, models.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound got %v", err)
	}
}
