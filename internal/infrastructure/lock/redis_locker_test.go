package lock_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/infrastructure/lock"
	"github.com/jhoicas/almacen-api/pkg/config"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisLocker_SegundoLockEsConflicto(t *testing.T) {
	_, rdb := newRedis(t)
	l := lock.NewRedisLocker(rdb, 5*time.Second)
	ctx := context.Background()

	release, err := l.Lock(ctx, "delivery:d-1")
	require.NoError(t, err)
	require.NotNil(t, release)

	again, err := l.Lock(ctx, "delivery:d-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Nil(t, again)

	// Claves distintas no se bloquean entre sí.
	other, err := l.Lock(ctx, "delivery:d-2")
	require.NoError(t, err)
	other()

	release()
	release2, err := l.Lock(ctx, "delivery:d-1")
	require.NoError(t, err, "tras liberar el lock se puede tomar de nuevo")
	release2()
}

func TestRedisLocker_ExpiraPorTTL(t *testing.T) {
	mr, rdb := newRedis(t)
	l := lock.NewRedisLocker(rdb, 2*time.Second)
	ctx := context.Background()

	_, err := l.Lock(ctx, "receipt:r-1")
	require.NoError(t, err)

	mr.FastForward(3 * time.Second)

	release, err := l.Lock(ctx, "receipt:r-1")
	require.NoError(t, err)
	release()
}

func TestRedisLocker_RedisCaidoNoEsConflicto(t *testing.T) {
	mr, rdb := newRedis(t)
	l := lock.NewRedisLocker(rdb, time.Second)
	mr.Close()

	_, err := l.Lock(context.Background(), "transfer:t-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := lock.NewRedisClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	_ = rdb.Close()

	mr.Close()
	_, err = lock.NewRedisClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	assert.Error(t, err)
}
