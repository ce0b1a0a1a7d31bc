// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/domain/repository"
	"users_backend/internal/feature/users/domain/valueobject"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultNamespace = "users"

	// EnvKeyUserCacheTTL overrides the cache lifetime (time.ParseDuration syntax).
	EnvKeyUserCacheTTL = "USER_CACHE_TTL"
)

// CachingUserRepository decorates a UserRepository with Redis caching.
// GetByID and GetAll are read-through; every write invalidates the affected keys.
// Lookups by email and the existence/count checks always reach the database
// because login and uniqueness decisions must not see stale data.
type CachingUserRepository struct {
	inner     repository.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ repository.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "users".
// A nil rdb disables caching entirely.
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner repository.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// TTLFromEnv reads USER_CACHE_TTL. It returns 0 (the default) when unset or invalid.
func TTLFromEnv() time.Duration {
	d, err := time.ParseDuration(os.Getenv(EnvKeyUserCacheTTL))
	if err != nil {
		return 0
	}
	return d
}

// cachedUser is the JSON snapshot stored in Redis.
type cachedUser struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Profile      string    `json:"profile"`
}

func snapshot(u *entity.User) cachedUser {
	return cachedUser{
		ID:           u.ID(),
		Name:         u.Name(),
		Email:        u.Email().String(),
		PasswordHash: u.PasswordHash().String(),
		Profile:      u.Profile().String(),
	}
}

func (c cachedUser) restore() (*entity.User, error) {
	email, err := valueobject.NewEmail(c.Email)
	if err != nil {
		return nil, err
	}
	hash, err := valueobject.NewPasswordHash(c.PasswordHash)
	if err != nil {
		return nil, err
	}
	return entity.RehydrateUser(c.ID, c.Name, email, hash, valueobject.ParseProfile(c.Profile)), nil
}

// GetByID retrieves a user, checking cache first then falling back to the database.
func (c *CachingUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.GetByID(ctx, id)
	}

	key := c.userKey(id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var cu cachedUser
		if err := json.Unmarshal(b, &cu); err == nil {
			if u, err := cu.restore(); err == nil {
				return u, nil
			}
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	u, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(snapshot(u)); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return u, nil
}

// GetAll returns the name-ordered list, cached as a whole.
func (c *CachingUserRepository) GetAll(ctx context.Context) ([]*entity.User, error) {
	if c.rdb == nil {
		return c.inner.GetAll(ctx)
	}

	key := c.listKey()
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		if users, err := restoreAll(b); err == nil {
			return users, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	users, err := c.inner.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	snaps := make([]cachedUser, 0, len(users))
	for _, u := range users {
		snaps = append(snaps, snapshot(u))
	}
	if b, err := json.Marshal(snaps); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return users, nil
}

func restoreAll(b []byte) ([]*entity.User, error) {
	var snaps []cachedUser
	if err := json.Unmarshal(b, &snaps); err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(snaps))
	for _, s := range snaps {
		u, err := s.restore()
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (c *CachingUserRepository) GetByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error) {
	return c.inner.GetByEmail(ctx, email)
}

func (c *CachingUserRepository) ExistsByEmail(ctx context.Context, email valueobject.Email) (bool, error) {
	return c.inner.ExistsByEmail(ctx, email)
}

func (c *CachingUserRepository) Count(ctx context.Context) (int64, error) {
	return c.inner.Count(ctx)
}

// Add inserts the user and drops the cached list.
func (c *CachingUserRepository) Add(ctx context.Context, u *entity.User) error {
	if err := c.inner.Add(ctx, u); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey())
	return nil
}

// Update writes through and drops the user entry and the cached list.
func (c *CachingUserRepository) Update(ctx context.Context, u *entity.User) error {
	if err := c.inner.Update(ctx, u); err != nil {
		return err
	}
	c.invalidate(ctx, c.userKey(u.ID()), c.listKey())
	return nil
}

// Delete removes the user and drops the user entry and the cached list.
func (c *CachingUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, c.userKey(id), c.listKey())
	return nil
}

// invalidate deletes keys. Failures are logged because the database write already succeeded.
func (c *CachingUserRepository) invalidate(ctx context.Context, keys ...string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("cache invalidation failed", "error", err, "keys", keys)
	}
}

func (c *CachingUserRepository) userKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:id:%s", c.namespace, id)
}

func (c *CachingUserRepository) listKey() string {
	return c.namespace + ":all"
}
