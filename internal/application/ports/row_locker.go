package ports

import "context"

// RowHolder sesión que retiene una línea. SessionID identifica al dueño; Code solo se muestra,
// puede repetirse entre terminales o tras un reinicio.
type RowHolder struct {
	SessionID string
	Code      string
}

// Free true si nadie retiene la línea.
func (h RowHolder) Free() bool { return h.SessionID == "" }

// RowLocker exclusividad de líneas de comanda entre sesiones (y terminales).
// Acquire devuelve domain.ErrRowLocked si otra sesión ya tiene la línea.
type RowLocker interface {
	Acquire(ctx context.Context, rowID string, holder RowHolder) error
	// Release libera la línea solo si la retiene sessionID.
	Release(ctx context.Context, rowID, sessionID string) error
	// Holder devuelve la sesión que retiene la línea, o el valor cero si está libre.
	Holder(ctx context.Context, rowID string) (RowHolder, error)
}
