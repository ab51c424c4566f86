package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"playercare/internal/model"

	"github.com/redis/go-redis/v9"
)

// SessionCache handles Redis operations for support-session state
type SessionCache interface {
	SetSession(ctx context.Context, session *model.SupportSession) error
	GetSession(ctx context.Context, sessionID string) (*model.SupportSession, error)
	AppendTurn(ctx context.Context, sessionID string, turn model.ChatTurn) error
	Delete(ctx context.Context, sessionID string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a new session cache
func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *sessionCache) sessionKey(sessionID string) string {
	return fmt.Sprintf("support:session:%s", sessionID)
}

func (c *sessionCache) SetSession(ctx context.Context, session *model.SupportSession) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.sessionKey(session.ID), data, c.ttl).Err()
}

func (c *sessionCache) GetSession(ctx context.Context, sessionID string) (*model.SupportSession, error) {
	data, err := c.client.Get(ctx, c.sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.SupportSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) AppendTurn(ctx context.Context, sessionID string, turn model.ChatTurn) error {
	session, err := c.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		session = &model.SupportSession{
			ID:        sessionID,
			CreatedAt: time.Now(),
		}
	}
	session.Turns = append(session.Turns, turn)
	return c.SetSession(ctx, session)
}

func (c *sessionCache) Delete(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, c.sessionKey(sessionID)).Err()
}
