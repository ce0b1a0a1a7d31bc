package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"users_backend/internal/feature/users/domain"
	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/domain/valueobject"
)

// mockUserRepository はテスト用のUserRepositoryモック実装です。
type mockUserRepository struct {
	getByIDFn  func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	getAllFn   func(ctx context.Context) ([]*entity.User, error)
	updateFn   func(ctx context.Context, u *entity.User) error
	getByIDHit int
	getAllHit  int
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	m.getByIDHit++
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) GetAll(ctx context.Context) ([]*entity.User, error) {
	m.getAllHit++
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error) {
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email valueobject.Email) (bool, error) {
	return false, nil
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) { return 0, nil }

func (m *mockUserRepository) Add(ctx context.Context, u *entity.User) error { return nil }

func (m *mockUserRepository) Update(ctx context.Context, u *entity.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func testUser(name, email string) *entity.User {
	e, _ := valueobject.NewEmail(email)
	h, _ := valueobject.NewPasswordHash("$2a$04$cachedhashcachedhash")
	return entity.RehydrateUser(uuid.New(), name, e, h, valueobject.ProfileUser)
}

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return client, mr
}

// TestNewCachingUserRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingUserRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", 5 * time.Minute, "users"},
		{"negative ttl uses default", -time.Minute, "", 5 * time.Minute, "users"},
		{"custom values preserved", 10 * time.Minute, "custom", 10 * time.Minute, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingUserRepository(nil, tt.ttl, &mockUserRepository{}, tt.namespace)

			assert.Equal(t, tt.expectedTTL, repo.ttl)
			assert.Equal(t, tt.expectedNamespace, repo.namespace)
		})
	}
}

func TestTTLFromEnv(t *testing.T) {
	t.Setenv(EnvKeyUserCacheTTL, "90s")
	assert.Equal(t, 90*time.Second, TTLFromEnv())

	t.Setenv(EnvKeyUserCacheTTL, "")
	assert.Zero(t, TTLFromEnv())
}

// TestCachingUserRepository_GetByID_NilRedis はRedisがnilの場合にキャッシュをバイパスすることを検証します。
func TestCachingUserRepository_GetByID_NilRedis(t *testing.T) {
	t.Parallel()

	u := testUser("Alice", "alice@test.com")
	inner := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) { return u, nil },
	}
	repo := NewCachingUserRepository(nil, time.Minute, inner, "users")

	for i := 0; i < 2; i++ {
		got, err := repo.GetByID(context.Background(), u.ID())
		require.NoError(t, err)
		assert.Equal(t, u.ID(), got.ID())
	}
	assert.Equal(t, 2, inner.getByIDHit)
}

// TestCachingUserRepository_GetByID_CacheMiss はキャッシュミス時にDBから取得してキャッシュへ保存することを検証します。
func TestCachingUserRepository_GetByID_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	u := testUser("Alice", "alice@test.com")
	key := "users:id:" + u.ID().String()
	expectedJSON, _ := json.Marshal(snapshot(u))

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) { return u, nil },
	}
	repo := NewCachingUserRepository(rdb, 5*time.Minute, inner, "users")

	got, err := repo.GetByID(context.Background(), u.ID())
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingUserRepository_GetByID_CacheHit はキャッシュヒット時に内部リポジトリを呼ばないことを検証します。
func TestCachingUserRepository_GetByID_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	u := testUser("Alice", "alice@test.com")
	cachedJSON, _ := json.Marshal(snapshot(u))
	mock.ExpectGet("users:id:" + u.ID().String()).SetVal(string(cachedJSON))

	inner := &mockUserRepository{}
	repo := NewCachingUserRepository(rdb, 5*time.Minute, inner, "users")

	got, err := repo.GetByID(context.Background(), u.ID())
	require.NoError(t, err)

	assert.Zero(t, inner.getByIDHit, "inner repository should not be called on cache hit")
	assert.Equal(t, u.ID(), got.ID())
	assert.Equal(t, u.PasswordHash().String(), got.PasswordHash().String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingUserRepository_GetByID_CorruptedCache は破損したキャッシュを削除しDBにフォールバックすることを検証します。
func TestCachingUserRepository_GetByID_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	u := testUser("Alice", "alice@test.com")
	key := "users:id:" + u.ID().String()
	expectedJSON, _ := json.Marshal(snapshot(u))

	mock.ExpectGet(key).SetVal("invalid json")
	mock.ExpectDel(key).SetVal(1)
	mock.ExpectSet(key, expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) { return u, nil },
	}
	repo := NewCachingUserRepository(rdb, 5*time.Minute, inner, "users")

	_, err := repo.GetByID(context.Background(), u.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, inner.getByIDHit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingUserRepository_GetByID_InnerError は内部リポジトリのエラーが伝播されキャッシュされないことを検証します。
func TestCachingUserRepository_GetByID_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	id := uuid.New()
	mock.ExpectGet("users:id:" + id.String()).RedisNil()

	repo := NewCachingUserRepository(rdb, 5*time.Minute, &mockUserRepository{}, "users")

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingUserRepository_Update_InvalidatesKeys は更新時にユーザーと一覧のキーが削除されることを検証します。
func TestCachingUserRepository_Update_InvalidatesKeys(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	u := testUser("Alice", "alice@test.com")
	mock.ExpectDel("users:id:"+u.ID().String(), "users:all").SetVal(2)

	repo := NewCachingUserRepository(rdb, 5*time.Minute, &mockUserRepository{}, "users")

	require.NoError(t, repo.Update(context.Background(), u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingUserRepository_Update_InnerError は更新失敗時にキャッシュを触らないことを検証します。
func TestCachingUserRepository_Update_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	dbErr := errors.New("database error")
	inner := &mockUserRepository{
		updateFn: func(ctx context.Context, u *entity.User) error { return dbErr },
	}
	repo := NewCachingUserRepository(rdb, 5*time.Minute, inner, "users")

	err := repo.Update(context.Background(), testUser("Alice", "alice@test.com"))
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingUserRepository_InvalidationFailureIsIgnored はキャッシュ削除の失敗が書き込み結果に影響しないことを検証します。
func TestCachingUserRepository_InvalidationFailureIsIgnored(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	id := uuid.New()
	mock.ExpectDel("users:id:"+id.String(), "users:all").SetErr(errors.New("redis down"))

	repo := NewCachingUserRepository(rdb, 5*time.Minute, &mockUserRepository{}, "users")

	assert.NoError(t, repo.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingUserRepository_GetAll_ReadThrough は一覧がキャッシュされ、追加時に無効化されることを検証します。
func TestCachingUserRepository_GetAll_ReadThrough(t *testing.T) {
	rdb, mr := setupTestRedis(t)

	alice := testUser("Alice", "alice@test.com")
	bob := testUser("Bob", "bob@test.com")
	inner := &mockUserRepository{
		getAllFn: func(ctx context.Context) ([]*entity.User, error) {
			return []*entity.User{alice, bob}, nil
		},
	}
	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")
	ctx := context.Background()

	first, err := repo.GetAll(ctx)
	require.NoError(t, err)
	second, err := repo.GetAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.getAllHit)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].ID(), second[0].ID())
	assert.Equal(t, "Bob", second[1].Name())
	assert.True(t, mr.Exists("users:all"))

	ttl := mr.TTL("users:all")
	assert.True(t, ttl > 0 && ttl <= time.Minute)

	require.NoError(t, repo.Add(ctx, testUser("Carol", "carol@test.com")))
	assert.False(t, mr.Exists("users:all"), "Add must drop the cached list")

	_, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.getAllHit)
}

// TestCachingUserRepository_GetByID_Expiry はTTL経過後に再度DBから読み込むことを検証します。
func TestCachingUserRepository_GetByID_Expiry(t *testing.T) {
	rdb, mr := setupTestRedis(t)

	u := testUser("Alice", "alice@test.com")
	inner := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) { return u, nil },
	}
	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")
	ctx := context.Background()

	_, err := repo.GetByID(ctx, u.ID())
	require.NoError(t, err)
	_, err = repo.GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, inner.getByIDHit)

	mr.FastForward(2 * time.Minute)

	_, err = repo.GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, inner.getByIDHit)
}
