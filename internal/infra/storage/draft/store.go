package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

const defaultPrefix = "salon"

// Store черновики бронирований в Redis (JSON + TTL)
type Store struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewStore(rdb redis.Cmdable, prefix string, ttl time.Duration) *Store {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	if ttl <= 0 {
		ttl = time.Duration(domain.DefaultDraftTTLMinutes) * time.Minute
	}
	return &Store{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Save перезаписывает черновик и продлевает TTL
func (s *Store) Save(ctx context.Context, d *domain.BookingDraft) error {
	payload, err := encode(d)
	if err != nil {
		return err
	}

	if err := s.rdb.Set(ctx, s.key(d.SessionKey), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrRedis, d.SessionKey, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, sessionKey string) (*domain.BookingDraft, error) {
	payload, err := s.rdb.Get(ctx, s.key(sessionKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrRedis, sessionKey, err)
	}

	return decode(payload)
}

// Delete удаляет черновик; отсутствие ключа ошибкой не считается
func (s *Store) Delete(ctx context.Context, sessionKey string) error {
	if err := s.rdb.Del(ctx, s.key(sessionKey)).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %v", ErrRedis, sessionKey, err)
	}
	return nil
}

// TTL время жизни черновика
func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) key(sessionKey string) string {
	return s.prefix + ":draft:" + sessionKey
}

func encode(d *domain.BookingDraft) ([]byte, error) {
	payload, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return payload, nil
}

func decode(payload []byte) (*domain.BookingDraft, error) {
	var d domain.BookingDraft
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &d, nil
}
