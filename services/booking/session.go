package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cliniva/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "bookingSession:"

// RedisSessionStore keeps booking sessions in Redis with a TTL. Every save
// refreshes the TTL, so an active workflow stays alive while an abandoned
// one ages out.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func (s *RedisSessionStore) Save(ctx context.Context, session models.BookingSession) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionPrefix+session.SessionID, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save booking session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	data, err := s.Client.Get(ctx, sessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, &models.NotFoundError{Resource: "bookingSession", ID: sessionID}
	}
	if err != nil {
		return nil, err
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, sessionPrefix+sessionID).Err()
}
