package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"clientdesk/internal/models"
	"clientdesk/pkg/logger"
)

// ErrCacheMiss is returned when a key is absent. Callers treat it as a
// signal to fall through to the store, never as a failure.
var ErrCacheMiss = errors.New("cache: miss")

// CacheService caches service package lookups for invitation pricing.
type CacheService interface {
	GetServicePackage(ctx context.Context, name string) (*models.ServicePackage, error)
	SetServicePackage(ctx context.Context, pkg *models.ServicePackage, ttl time.Duration) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept both bare host:port and redis:// URLs.
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log := logger.Get()
		log.Warn().Err(err).Str("addr", parsedAddr).Msg("redis ping failed on initialization")
	}

	return &redisCacheService{client: client}
}

func packageKey(name string) string {
	return fmt.Sprintf("clientdesk:package:%s", strings.ToLower(name))
}

func (r *redisCacheService) GetServicePackage(ctx context.Context, name string) (*models.ServicePackage, error) {
	data, err := r.client.Get(ctx, packageKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var pkg models.ServicePackage
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *redisCacheService) SetServicePackage(ctx context.Context, pkg *models.ServicePackage, ttl time.Duration) error {
	data, err := json.Marshal(pkg)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, packageKey(pkg.Name), data, ttl).Err()
}
