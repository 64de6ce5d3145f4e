package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	redisdb "drone-survey-service/internal/database/redis"
	"drone-survey-service/internal/models"

	"github.com/redis/go-redis/v9"
)

// SessionRepository stores refresh-token sessions in Redis so logout can
// revoke refresh tokens before they expire.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.RefreshSession, ttl time.Duration) error
	GetUserSessions(ctx context.Context, userID string) ([]*models.RefreshSession, error)
	DeleteSession(ctx context.Context, userID, sessionID string) error
	DeleteUserSessions(ctx context.Context, userID string) error
}

type sessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redisdb.Client) SessionRepository {
	return &sessionRepository{
		client: client.GetClient(),
	}
}

func sessionKey(userID, sessionID string) string {
	return fmt.Sprintf("session:%s:%s", userID, sessionID)
}

func userSessionsPattern(userID string) string {
	return fmt.Sprintf("session:%s:*", userID)
}

// HashToken returns the hex SHA-256 of a token. Raw tokens are never
// stored server side.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (r *sessionRepository) CreateSession(ctx context.Context, session *models.RefreshSession, ttl time.Duration) error {
	if session.ID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}
	if session.UserID == "" {
		return fmt.Errorf("user ID cannot be empty")
	}

	session.ExpiresAt = time.Now().Add(ttl)
	session.IsActive = true

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	key := sessionKey(session.UserID, session.ID)
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *sessionRepository) GetUserSessions(ctx context.Context, userID string) ([]*models.RefreshSession, error) {
	keys, err := r.client.Keys(ctx, userSessionsPattern(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*models.RefreshSession, 0, len(keys))
	for _, key := range keys {
		data, err := r.client.Get(ctx, key).Result()
		if err == redis.Nil {
			continue // expired between KEYS and GET
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read session %s: %w", key, err)
		}

		var session models.RefreshSession
		if err := json.Unmarshal([]byte(data), &session); err != nil {
			return nil, fmt.Errorf("failed to decode session %s: %w", key, err)
		}
		sessions = append(sessions, &session)
	}
	return sessions, nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context, userID, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(userID, sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *sessionRepository) DeleteUserSessions(ctx context.Context, userID string) error {
	keys, err := r.client.Keys(ctx, userSessionsPattern(userID)).Result()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}
