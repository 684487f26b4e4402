package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/utils"
)

// ErrSessionNotFound is returned when a session key is absent or expired.
var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	AdminID   string    `json:"admin_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionStore interface {
	Put(ctx context.Context, sessionID string, s Session, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (Session, error)
	Delete(ctx context.Context, sessionID string) error
	Close() error
}

type sessionStore struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

func NewSessionStore(log *logger.Logger) (SessionStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(os.Getenv("REDIS_SESSION_PREFIX"))
	if prefix == "" {
		prefix = "admin_session"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    os.Getenv("REDIS_PASSWORD"),
		DB:          utils.GetEnvAsInt("REDIS_DB", 0, log),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &sessionStore{
		log:    log.With("service", "RedisSessionStore"),
		rdb:    rdb,
		prefix: prefix,
	}, nil
}

func (s *sessionStore) key(sessionID string) string {
	return s.prefix + ":" + sessionID
}

func (s *sessionStore) Put(ctx context.Context, sessionID string, sess Session, ttl time.Duration) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("session store not initialized")
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(sessionID), raw, ttl).Err()
}

func (s *sessionStore) Get(ctx context.Context, sessionID string) (Session, error) {
	if s == nil || s.rdb == nil {
		return Session{}, fmt.Errorf("session store not initialized")
	}
	raw, err := s.rdb.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("redis get session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

func (s *sessionStore) Delete(ctx context.Context, sessionID string) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("session store not initialized")
	}
	return s.rdb.Del(ctx, s.key(sessionID)).Err()
}

func (s *sessionStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
