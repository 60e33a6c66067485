package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"corteBack/internal/models"
	"corteBack/internal/services"
	"corteBack/utils"
)

type stubProvider struct {
	verifyErr error
	uid       string
}

func (s *stubProvider) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	if s.verifyErr != nil {
		return "", s.verifyErr
	}
	return s.uid, nil
}

func (s *stubProvider) CreateUser(ctx context.Context, email, password string) (string, error) {
	return s.uid, nil
}

type stubSessions struct{}

func (s *stubSessions) SetSession(ctx context.Context, session models.Session, ttl time.Duration) error {
	return nil
}

func (s *stubSessions) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	return models.Session{}, models.ErrSessionNotFound
}

func (s *stubSessions) DeleteSession(ctx context.Context, refreshToken string) error {
	return nil
}

func newUserHandler(t *testing.T, provider *stubProvider) *UserHandler {
	t.Helper()
	manager, err := utils.NewManager("test-key")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return &UserHandler{Service: &services.UserService{
		Provider:     provider,
		Sessions:     &stubSessions{},
		TokenManager: manager,
		AccessTTL:    time.Hour,
		RefreshTTL:   time.Hour,
	}}
}

func TestSignInUnknownAccountOffersSignUp(t *testing.T) {
	handler := newUserHandler(t, &stubProvider{verifyErr: models.ErrUserNotFound})

	req := httptest.NewRequest(http.MethodPost, "/user/sign_in",
		strings.NewReader(`{"email":"new@corte.dev","password":"secret123"}`))
	rec := httptest.NewRecorder()

	handler.SignIn(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}

	var body struct {
		Error       string `json:"error"`
		OfferSignUp bool   `json:"offer_sign_up"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "user_not_found" {
		t.Fatalf("expected user_not_found got %q", body.Error)
	}
	if !body.OfferSignUp {
		t.Fatalf("expected offer_sign_up to be set")
	}

	// The registration offer is the whole response, not an extra alert on
	// top of a generic error.
	if rest, err := rec.Body.ReadString(0); err == nil && strings.TrimSpace(rest) != "" {
		t.Fatalf("unexpected trailing response body %q", rest)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	handler := newUserHandler(t, &stubProvider{verifyErr: models.ErrInvalidCredentials})

	req := httptest.NewRequest(http.MethodPost, "/user/sign_in",
		strings.NewReader(`{"email":"user@corte.dev","password":"wrong"}`))
	rec := httptest.NewRecorder()

	handler.SignIn(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestSignInSuccessReturnsTokens(t *testing.T) {
	handler := newUserHandler(t, &stubProvider{uid: "uid-1"})

	req := httptest.NewRequest(http.MethodPost, "/user/sign_in",
		strings.NewReader(`{"email":"user@corte.dev","password":"secret123"}`))
	rec := httptest.NewRecorder()

	handler.SignIn(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var tokens models.Tokens
	if err := json.NewDecoder(rec.Body).Decode(&tokens); err != nil {
		t.Fatalf("decode tokens: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", tokens)
	}
}

func TestSignUpEmptyFields(t *testing.T) {
	handler := newUserHandler(t, &stubProvider{uid: "uid-1"})

	req := httptest.NewRequest(http.MethodPost, "/user/sign_up",
		strings.NewReader(`{"email":"","password":""}`))
	rec := httptest.NewRecorder()

	handler.SignUp(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", rec.Code)
	}
}
