package redislock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cantar-api/internal/application/ports"
	"github.com/jhoicas/Cantar-api/internal/domain"
)

func newTestLockers(t *testing.T) (*miniredis.Miniredis, *RowLocker, *RowLocker) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	// dos instancias sobre el mismo Redis = dos terminales
	return mr, NewRowLocker(rdb, time.Minute, zerolog.Nop()), NewRowLocker(rdb, time.Minute, zerolog.Nop())
}

func holder(id, code string) ports.RowHolder {
	return ports.RowHolder{SessionID: id, Code: code}
}

func TestRowLocker_ExclusionEntreTerminales(t *testing.T) {
	_, a, b := newTestLockers(t)
	ctx := context.Background()

	require.NoError(t, a.Acquire(ctx, "row-1", holder("s-1", "C261016-001")))
	require.NoError(t, a.Acquire(ctx, "row-1", holder("s-1", "C261016-001")), "renovación por la misma sesión")
	assert.ErrorIs(t, b.Acquire(ctx, "row-1", holder("s-2", "C261016-002")), domain.ErrRowLocked)
	assert.ErrorIs(t, a.Acquire(ctx, "row-1", holder("s-3", "C261016-003")), domain.ErrRowLocked)

	h, err := b.Holder(ctx, "row-1")
	require.NoError(t, err)
	assert.Equal(t, holder("s-1", "C261016-001"), h)

	// otra terminal no puede liberar una línea que no tiene
	require.NoError(t, b.Release(ctx, "row-1", "s-2"))
	h, _ = a.Holder(ctx, "row-1")
	assert.Equal(t, "s-1", h.SessionID)

	require.NoError(t, a.Release(ctx, "row-1", "s-1"))
	h, _ = b.Holder(ctx, "row-1")
	assert.True(t, h.Free())
	assert.NoError(t, b.Acquire(ctx, "row-1", holder("s-2", "C261016-002")))
}

// Dos terminales (o un reinicio) pueden generar el mismo código del día; el dueño es la sesión.
func TestRowLocker_MismoCodigoDistintaSesion(t *testing.T) {
	_, a, b := newTestLockers(t)
	ctx := context.Background()

	require.NoError(t, a.Acquire(ctx, "row-1", holder("s-a", "C261016-001")))
	assert.ErrorIs(t, b.Acquire(ctx, "row-1", holder("s-b", "C261016-001")), domain.ErrRowLocked)

	require.NoError(t, b.Release(ctx, "row-1", "C261016-001"), "liberar por código no hace nada")
	require.NoError(t, b.Release(ctx, "row-1", "s-b"))

	h, err := a.Holder(ctx, "row-1")
	require.NoError(t, err)
	assert.Equal(t, holder("s-a", "C261016-001"), h)
	assert.ErrorIs(t, b.Acquire(ctx, "row-1", holder("s-b", "C261016-001")), domain.ErrRowLocked)
}

func TestRowLocker_SinSesionEsInvalido(t *testing.T) {
	_, a, _ := newTestLockers(t)
	assert.ErrorIs(t, a.Acquire(context.Background(), "row-1", holder("", "C261016-001")), domain.ErrInvalidInput)
}

func TestRowLocker_ExpiraConTTL(t *testing.T) {
	mr, a, b := newTestLockers(t)
	ctx := context.Background()

	require.NoError(t, a.Acquire(ctx, "row-9", holder("s-1", "C261016-001")))
	mr.FastForward(2 * time.Minute)

	h, err := b.Holder(ctx, "row-9")
	require.NoError(t, err)
	assert.True(t, h.Free())
	assert.NoError(t, b.Acquire(ctx, "row-9", holder("s-4", "C261016-004")))
}
