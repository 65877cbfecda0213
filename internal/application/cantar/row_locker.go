package cantar

import (
	"context"
	"sync"

	"github.com/jhoicas/Cantar-api/internal/application/ports"
	"github.com/jhoicas/Cantar-api/internal/domain"
)

var _ ports.RowLocker = (*MemoryRowLocker)(nil)

// MemoryRowLocker bloqueo de líneas en memoria, válido para una sola báscula/terminal.
type MemoryRowLocker struct {
	mu      sync.Mutex
	holders map[string]ports.RowHolder // rowID -> sesión
}

// NewMemoryRowLocker construye el locker vacío.
func NewMemoryRowLocker() *MemoryRowLocker {
	return &MemoryRowLocker{holders: make(map[string]ports.RowHolder)}
}

// Acquire toma la línea para holder. Volver a tomarla con la misma sesión no falla.
func (l *MemoryRowLocker) Acquire(_ context.Context, rowID string, holder ports.RowHolder) error {
	if holder.Free() {
		return domain.ErrInvalidInput
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if h, ok := l.holders[rowID]; ok && h.SessionID != holder.SessionID {
		return domain.ErrRowLocked
	}
	l.holders[rowID] = holder
	return nil
}

// Release libera la línea solo si la tiene sessionID.
func (l *MemoryRowLocker) Release(_ context.Context, rowID, sessionID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if h, ok := l.holders[rowID]; ok && h.SessionID == sessionID {
		delete(l.holders, rowID)
	}
	return nil
}

// Holder sesión que retiene la línea.
func (l *MemoryRowLocker) Holder(_ context.Context, rowID string) (ports.RowHolder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holders[rowID], nil
}
