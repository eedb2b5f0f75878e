// cache — кэш проверок сессий в Redis.
// Ключ — хэш токена сессии; значение — Redis Hash с полями uid, exp, rot.
// Для отзыва всех сессий пользователя ведётся индекс: Set со списком ID под ключом user.
// Кэш опционален: источник правды — PostgreSQL, запись удаляется при ротации и выходе.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=cache.go -destination=../../mocks/cache.go -package=mocks

// SessionCache — минимальный контракт кэша сессий.
type SessionCache interface {
	// Get возвращает сессию и признак её наличия в кэше.
	Get(ctx context.Context, id string) (*models.Session, bool, error)
	// Set сохраняет сессию с TTL (не дольше оставшегося срока сессии).
	Set(ctx context.Context, s *models.Session, ttl time.Duration) error
	// Delete удаляет ключи; отсутствие ключа не ошибка.
	Delete(ctx context.Context, ids ...string) error
	// DeleteUser удаляет все закэшированные сессии пользователя.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "rfd:sess:".
func NewRedisCache(ctx context.Context, redisURL, prefix string) (SessionCache, error) {
	if prefix == "" {
		prefix = "rfd:sess:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) key(id string) string { return c.prefix + id }

func (c *redisCache) userKey(userID uuid.UUID) string { return c.prefix + "user:" + userID.String() }

func (c *redisCache) Get(ctx context.Context, id string) (*models.Session, bool, error) {
	m, err := c.rdb.HGetAll(ctx, c.key(id)).Result()
	if err != nil {
		return nil, false, err
	}

	if len(m) == 0 {
		return nil, false, nil
	}

	uid, err := uuid.Parse(m["uid"])
	if err != nil {
		return nil, false, err
	}

	expUnix, err := strconv.ParseInt(m["exp"], 10, 64)
	if err != nil {
		return nil, false, err
	}

	s := &models.Session{
		ID:        id,
		UserID:    uid,
		ExpiresAt: time.Unix(expUnix, 0).UTC(),
	}

	if rot := m["rot"]; rot != "" && rot != "0" {
		rotUnix, err := strconv.ParseInt(rot, 10, 64)
		if err != nil {
			return nil, false, err
		}
		t := time.Unix(rotUnix, 0).UTC()
		s.RotatedAt = &t
	}

	return s, true, nil
}

func (c *redisCache) Set(ctx context.Context, s *models.Session, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	rot := "0"
	if s.RotatedAt != nil {
		rot = strconv.FormatInt(s.RotatedAt.Unix(), 10)
	}

	kv := map[string]string{
		"uid": s.UserID.String(),
		"exp": strconv.FormatInt(s.ExpiresAt.Unix(), 10),
		"rot": rot,
	}

	uk := c.userKey(s.UserID)

	// Индекс живёт не меньше самой долгой сессии в нём.
	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, c.key(s.ID), kv)
	pipe.Expire(ctx, c.key(s.ID), ttl)
	pipe.SAdd(ctx, uk, s.ID)
	pipe.ExpireNX(ctx, uk, ttl)
	pipe.ExpireGT(ctx, uk, ttl)

	_, err := pipe.Exec(ctx)
	return err
}

func (c *redisCache) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, c.key(id))
	}

	return c.rdb.Del(ctx, keys...).Err()
}

func (c *redisCache) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	uk := c.userKey(userID)

	ids, err := c.rdb.SMembers(ctx, uk).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, c.key(id))
	}
	keys = append(keys, uk)

	return c.rdb.Del(ctx, keys...).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }
