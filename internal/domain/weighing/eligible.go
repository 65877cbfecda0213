package weighing

import (
	"github.com/jhoicas/Cantar-api/internal/domain"
	"github.com/jhoicas/Cantar-api/internal/domain/entity"
)

// RowSelectable indica si una línea de comanda puede asociarse a una nueva sesión:
// no está en la báscula y todavía le falta alguna masa.
func RowSelectable(r *entity.EligibleRow) bool {
	if r == nil || r.IsOnScale() {
		return false
	}
	return !(r.HasTara && r.HasBrut)
}

// SelectableRows filtra las líneas seleccionables conservando el orden.
func SelectableRows(rows []*entity.EligibleRow) []*entity.EligibleRow {
	out := make([]*entity.EligibleRow, 0, len(rows))
	for _, r := range rows {
		if RowSelectable(r) {
			out = append(out, r)
		}
	}
	return out
}

// CheckRowSelectable valida la línea elegida: ErrNotFound si no pertenece a la comanda,
// ErrRowLocked si otra sesión la tiene en la báscula, ErrConflict si ya tiene ambas masas.
func CheckRowSelectable(rows []*entity.EligibleRow, rowID string) (*entity.EligibleRow, error) {
	for _, r := range rows {
		if r.ID != rowID {
			continue
		}
		if r.IsOnScale() {
			return r, domain.ErrRowLocked
		}
		if r.HasTara && r.HasBrut {
			return r, domain.ErrConflict
		}
		return r, nil
	}
	return nil, domain.ErrNotFound
}
