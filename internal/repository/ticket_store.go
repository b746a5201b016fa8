package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"posbuddy/internal/ticket"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TicketStore keeps the in-progress ticket of each cashier between requests.
type TicketStore interface {
	// Get returns an empty ticket when none is stored.
	Get(ctx context.Context, usuarioID uuid.UUID) (*ticket.Ticket, error)
	Save(ctx context.Context, usuarioID uuid.UUID, t *ticket.Ticket) error
	Delete(ctx context.Context, usuarioID uuid.UUID) error
}

type redisTicketStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisTicketStore(rdb *redis.Client, ttl time.Duration) TicketStore {
	return &redisTicketStore{rdb: rdb, ttl: ttl}
}

func ticketKey(usuarioID uuid.UUID) string { return "ticket:" + usuarioID.String() }

func (s *redisTicketStore) Get(ctx context.Context, usuarioID uuid.UUID) (*ticket.Ticket, error) {
	b, err := s.rdb.Get(ctx, ticketKey(usuarioID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ticket.Nuevo(), nil
	}
	if err != nil {
		return nil, err
	}
	t := ticket.Nuevo()
	if err := json.Unmarshal(b, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *redisTicketStore) Save(ctx context.Context, usuarioID uuid.UUID, t *ticket.Ticket) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, ticketKey(usuarioID), b, s.ttl).Err()
}

func (s *redisTicketStore) Delete(ctx context.Context, usuarioID uuid.UUID) error {
	return s.rdb.Del(ctx, ticketKey(usuarioID)).Err()
}
