package weighing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Cantar-api/internal/domain"
	"github.com/jhoicas/Cantar-api/internal/domain/entity"
	"github.com/jhoicas/Cantar-api/internal/domain/weighing"
)

func sampleRows() []*entity.EligibleRow {
	return []*entity.EligibleRow{
		{ID: "r1", ProductName: "Nisip 0-4", Quantity: kg(25000), Lock: entity.Unlocked()},
		{ID: "r2", ProductName: "Pietriș 4-8", Quantity: kg(30000), Lock: entity.LockedBy("CNT-0007")},
		{ID: "r3", ProductName: "Balast", Quantity: kg(20000), HasTara: true, HasBrut: true},
		{ID: "r4", ProductName: "Criblură", Quantity: kg(15000), HasTara: true},
	}
}

func TestSelectableRows(t *testing.T) {
	got := weighing.SelectableRows(sampleRows())
	var names []string
	for _, r := range got {
		names = append(names, r.ID)
	}
	assert.Equal(t, []string{"r1", "r4"}, names)
}

func TestCheckRowSelectable(t *testing.T) {
	rows := sampleRows()

	r, err := weighing.CheckRowSelectable(rows, "r1")
	assert.NoError(t, err)
	assert.Equal(t, "r1", r.ID)

	r, err = weighing.CheckRowSelectable(rows, "r2")
	assert.ErrorIs(t, err, domain.ErrRowLocked)
	assert.Equal(t, "CNT-0007", r.Lock.Holder())

	_, err = weighing.CheckRowSelectable(rows, "r3")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = weighing.CheckRowSelectable(rows, "zz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
