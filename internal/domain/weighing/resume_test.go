package weighing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cantar-api/internal/domain/entity"
	"github.com/jhoicas/Cantar-api/internal/domain/weighing"
)

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "B 123 ABC", weighing.NormalizePlate("  b   123\tabc "))
	assert.Equal(t, "CJ 07 ȘTI", weighing.NormalizePlate("cj 07 ști"))
	assert.Equal(t, "", weighing.NormalizePlate("   "))
}

func TestResumeLookup_EncuentraEnAmbasColas(t *testing.T) {
	q := weighing.NewQueueManager()
	t1 := newSession("t1", entity.DirectionInbound)
	t1.VehiclePlate = "B 10 XYZ"
	t2 := newSession("t2", entity.DirectionOutbound)
	t2.VehiclePlate = "IS 22 ABC"
	require.NoError(t, q.EnqueueStep1(t1))
	require.NoError(t, q.EnqueueStep1(t2))
	t2.Step = entity.Step2
	require.NoError(t, q.AdvanceToStep2(t2))

	var r weighing.ResumeLookup
	got := r.Lookup(q, "b10xyz")
	assert.Nil(t, got, "los espacios internos cuentan")

	got = r.Lookup(q, " b  10 xyz")
	require.NotNil(t, got)
	assert.Equal(t, "t1", got.ID)

	got = r.Lookup(q, "is 22 abc")
	require.NotNil(t, got)
	assert.Equal(t, "t2", got.ID)

	assert.Nil(t, r.Lookup(q, ""))
}

func TestResumeLookup_SeRecalculaAlCambiarLasColas(t *testing.T) {
	q := weighing.NewQueueManager()
	var r weighing.ResumeLookup
	assert.Nil(t, r.Lookup(q, "B 1 AAA"))

	s := newSession("t1", entity.DirectionInbound)
	s.VehiclePlate = "B 1 AAA"
	require.NoError(t, q.EnqueueStep1(s))
	got := r.Lookup(q, "B 1 AAA")
	require.NotNil(t, got, "la memoización no debe devolver un resultado obsoleto")

	q.Complete("t1")
	assert.Nil(t, r.Lookup(q, "B 1 AAA"))
}
