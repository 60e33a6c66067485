package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"firebase.google.com/go/auth"
	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"

	"corteBack/internal/models"
)

// IdentityProvider abstracts the hosted identity provider behind sign-in and
// sign-up. Both return the provider-assigned user id (the owner id every
// record is scoped to).
type IdentityProvider interface {
	VerifyPassword(ctx context.Context, email, password string) (string, error)
	CreateUser(ctx context.Context, email, password string) (string, error)
}

// FirebaseIdentity talks to Firebase Auth: password verification goes through
// the Identity Toolkit REST surface (the admin SDK cannot check passwords),
// account creation through the admin client.
type FirebaseIdentity struct {
	Toolkit *identitytoolkit.Service
	Auth    *auth.Client
}

func (f *FirebaseIdentity) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	req := &identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}
	resp, err := f.Toolkit.Relyingparty.VerifyPassword(req).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			if strings.Contains(gerr.Message, "EMAIL_NOT_FOUND") {
				return "", models.ErrUserNotFound
			}
			if strings.Contains(gerr.Message, "INVALID_PASSWORD") || strings.Contains(gerr.Message, "INVALID_LOGIN_CREDENTIALS") {
				return "", models.ErrInvalidCredentials
			}
		}
		return "", err
	}
	return resp.LocalId, nil
}

func (f *FirebaseIdentity) CreateUser(ctx context.Context, email, password string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password)

	record, err := f.Auth.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", models.ErrDuplicateEmail
		}
		return "", fmt.Errorf("identity provider rejected sign-up: %v", err)
	}
	return record.UID, nil
}
