package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/shrimpsizemoose/placement-tracker/internal/apperrors"
	"github.com/shrimpsizemoose/placement-tracker/internal/models"
)

const (
	timeFormat    = "2006-01-02 15:04:05"
	sessionKeyTpl = "session:%s" // session:${token}
)

type Session struct {
	Token     string      `json:"token"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// SessionManager keeps login sessions as Redis hashes that expire after ttl.
type SessionManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSessionManager(redis *redis.Client, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionManager{redis: redis, ttl: ttl}
}

func (sm *SessionManager) Create(ctx context.Context, username string, role models.Role) (*Session, error) {
	token := uuid.NewString()
	key := fmt.Sprintf(sessionKeyTpl, token)
	now := time.Now().UTC()

	pipe := sm.redis.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"username":         username,
		"role":             string(role),
		"created_dttm_utc": now.Format(timeFormat),
	})
	pipe.Expire(ctx, key, sm.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &Session{
		Token:     token,
		Username:  username,
		Role:      role,
		CreatedAt: now.Truncate(time.Second),
	}, nil
}

// Fetch loads the session for token. An unknown or expired token is
// ErrUnauthorized.
func (sm *SessionManager) Fetch(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthorized
	}

	values, err := sm.redis.HGetAll(ctx, fmt.Sprintf(sessionKeyTpl, token)).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	if len(values) == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	createdAt, _ := time.Parse(timeFormat, values["created_dttm_utc"])

	return &Session{
		Token:     token,
		Username:  values["username"],
		Role:      models.Role(values["role"]),
		CreatedAt: createdAt,
	}, nil
}

func (sm *SessionManager) Delete(ctx context.Context, token string) error {
	if err := sm.redis.Del(ctx, fmt.Sprintf(sessionKeyTpl, token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (sm *SessionManager) Close() error {
	if sm.redis != nil {
		return sm.redis.Close()
	}
	return nil
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok
}
