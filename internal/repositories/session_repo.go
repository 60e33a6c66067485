package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"corteBack/internal/models"
)

const sessionKeyPrefix = "session:"

// SessionRepository keeps refresh-token sessions in Redis. Expiry is handled
// by the key TTL, so a missing key means signed out or expired.
type SessionRepository struct {
	RDB *redis.Client
}

func (r *SessionRepository) SetSession(ctx context.Context, session models.Session, ttl time.Duration) error {
	return r.RDB.Set(ctx, sessionKeyPrefix+session.RefreshToken, session.UserID, ttl).Err()
}

func (r *SessionRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	userID, err := r.RDB.Get(ctx, sessionKeyPrefix+refreshToken).Result()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, models.ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{UserID: userID, RefreshToken: refreshToken}, nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	return r.RDB.Del(ctx, sessionKeyPrefix+refreshToken).Err()
}
