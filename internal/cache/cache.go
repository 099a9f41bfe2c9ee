package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/psds-microservice/issue-service/internal/model"
)

// Cache хранит в redis сериализованный снапшот issue по его id с
// фиксированным TTL. Кеш best-effort: любая ошибка redis логируется и
// превращается в промах (Get) или в false (Set), наружу не уходит.
// Источник истины всегда store.
type Cache struct {
	url string
	ttl time.Duration
	rdb *redis.Client
}

func New(url string, ttl time.Duration) *Cache {
	return &Cache{url: url, ttl: ttl}
}

// Open подключается к redis и проверяет соединение.
func (c *Cache) Open(ctx context.Context) error {
	opts, err := redis.ParseURL(c.url)
	if err != nil {
		return err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return err
	}
	c.rdb = rdb
	return nil
}

func (c *Cache) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// Set записывает снапшот issue под ключом issueID с настроенным TTL.
func (c *Cache) Set(ctx context.Context, issueID string, issue *model.Issue) bool {
	if c.rdb == nil {
		return false
	}
	body, err := json.Marshal(issue)
	if err != nil {
		log.Printf("cache: marshal issue %s: %v", issueID, err)
		return false
	}
	if err := c.rdb.Set(ctx, issueID, body, c.ttl).Err(); err != nil {
		log.Printf("cache: set issue %s: %v", issueID, err)
		return false
	}
	return true
}

// Get возвращает снапшот issue из кеша. Промах и любая ошибка чтения
// неразличимы для вызывающего — (nil, false).
func (c *Cache) Get(ctx context.Context, issueID string) (*model.Issue, bool) {
	if c.rdb == nil {
		return nil, false
	}
	body, err := c.rdb.Get(ctx, issueID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("cache: get issue %s: %v", issueID, err)
		}
		return nil, false
	}
	var issue model.Issue
	if err := json.Unmarshal(body, &issue); err != nil {
		log.Printf("cache: unmarshal issue %s: %v", issueID, err)
		return nil, false
	}
	return &issue, true
}
