package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Pesokrava/autospares/internal/domain"
)

// Session document kinds
const (
	KindCart       = "cart"
	KindWishlist   = "wishlist"
	KindComparison = "comparison"
)

// SessionStore keeps serialized basket documents per client session.
// Every write refreshes the TTL so active sessions do not expire.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a session store
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) key(sessionID, kind string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, kind)
}

// Load returns the stored document, or domain.ErrNotFound when there is none
func (s *SessionStore) Load(ctx context.Context, sessionID, kind string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(sessionID, kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Save stores a document and refreshes its TTL
func (s *SessionStore) Save(ctx context.Context, sessionID, kind string, data []byte) error {
	return s.client.Set(ctx, s.key(sessionID, kind), data, s.ttl).Err()
}

// SaveAll stores several documents of one session in a single MULTI/EXEC
// transaction. Either every document is written or none is.
func (s *SessionStore) SaveAll(ctx context.Context, sessionID string, docs map[string][]byte) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for kind, data := range docs {
			pipe.Set(ctx, s.key(sessionID, kind), data, s.ttl)
		}
		return nil
	})
	return err
}

// Delete removes a document
func (s *SessionStore) Delete(ctx context.Context, sessionID, kind string) error {
	return s.client.Del(ctx, s.key(sessionID, kind)).Err()
}
