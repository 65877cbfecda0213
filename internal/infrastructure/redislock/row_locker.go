// Package redislock bloqueo de líneas de comanda compartido entre terminales de báscula.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bsmlock "github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Cantar-api/internal/application/ports"
	"github.com/jhoicas/Cantar-api/internal/domain"
)

const (
	lockPrefix   = "cantar:row-lock:"
	holderPrefix = "cantar:row-holder:"
)

// Campos del hash de dueño.
const (
	fieldSessionID = "session_id"
	fieldCode      = "code"
)

// releaseHolder borra el hash de dueño solo si sigue siendo de esa sesión.
var releaseHolder = redis.NewScript(`
if redis.call("HGET", KEYS[1], ARGV[1]) == ARGV[2] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var _ ports.RowLocker = (*RowLocker)(nil)

// RowLocker implementa ports.RowLocker con bsm/redislock. La clave de lock garantiza la
// exclusión y lleva el ID de sesión como metadata; un hash paralelo guarda ID y código
// para que otras terminales puedan mostrar quién tiene la línea.
type RowLocker struct {
	rdb    redis.UniversalClient
	locker *bsmlock.Client
	ttl    time.Duration
	log    zerolog.Logger

	mu    sync.Mutex
	locks map[string]*bsmlock.Lock // rowID -> lock obtenido por esta instancia
}

// NewRowLocker construye el locker. ttl acota cuánto sobrevive un lock si la instancia muere.
func NewRowLocker(rdb redis.UniversalClient, ttl time.Duration, log zerolog.Logger) *RowLocker {
	return &RowLocker{
		rdb:    rdb,
		locker: bsmlock.New(rdb),
		ttl:    ttl,
		log:    log.With().Str("component", "redislock.rows").Logger(),
		locks:  make(map[string]*bsmlock.Lock),
	}
}

// Acquire toma la línea para holder. Si esta instancia ya la tiene para la misma sesión, renueva el TTL.
func (l *RowLocker) Acquire(ctx context.Context, rowID string, holder ports.RowHolder) error {
	if holder.Free() {
		return domain.ErrInvalidInput
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if lock, ok := l.locks[rowID]; ok {
		if lock.Metadata() != holder.SessionID {
			return domain.ErrRowLocked
		}
		if err := lock.Refresh(ctx, l.ttl, nil); err != nil {
			if !errors.Is(err, bsmlock.ErrNotObtained) {
				return fmt.Errorf("renovar lock de línea %s: %w", rowID, err)
			}
			// expiró: se intenta obtener de nuevo
			delete(l.locks, rowID)
		} else {
			return l.writeHolder(ctx, rowID, holder)
		}
	}

	lock, err := l.locker.Obtain(ctx, lockPrefix+rowID, l.ttl, &bsmlock.Options{Metadata: holder.SessionID})
	if errors.Is(err, bsmlock.ErrNotObtained) {
		return domain.ErrRowLocked
	}
	if err != nil {
		return fmt.Errorf("obtener lock de línea %s: %w", rowID, err)
	}
	if err := l.writeHolder(ctx, rowID, holder); err != nil {
		_ = lock.Release(ctx)
		return err
	}
	l.locks[rowID] = lock
	l.log.Debug().
		Str("row_id", rowID).
		Str("session_id", holder.SessionID).
		Str("code", holder.Code).
		Msg("línea bloqueada")
	return nil
}

func (l *RowLocker) writeHolder(ctx context.Context, rowID string, holder ports.RowHolder) error {
	key := holderPrefix + rowID
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fieldSessionID, holder.SessionID, fieldCode, holder.Code)
		pipe.Expire(ctx, key, l.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("guardar dueño de línea %s: %w", rowID, err)
	}
	return nil
}

// Release libera la línea solo si la tiene sessionID.
func (l *RowLocker) Release(ctx context.Context, rowID, sessionID string) error {
	l.mu.Lock()
	lock, ok := l.locks[rowID]
	if ok && lock.Metadata() == sessionID {
		delete(l.locks, rowID)
	} else {
		lock = nil
	}
	l.mu.Unlock()

	if lock != nil {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, bsmlock.ErrLockNotHeld) {
			return fmt.Errorf("liberar lock de línea %s: %w", rowID, err)
		}
	}
	err := releaseHolder.Run(ctx, l.rdb, []string{holderPrefix + rowID}, fieldSessionID, sessionID).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("borrar dueño de línea %s: %w", rowID, err)
	}
	return nil
}

// Holder sesión que retiene la línea, valor cero si está libre.
func (l *RowLocker) Holder(ctx context.Context, rowID string) (ports.RowHolder, error) {
	vals, err := l.rdb.HMGet(ctx, holderPrefix+rowID, fieldSessionID, fieldCode).Result()
	if err != nil {
		return ports.RowHolder{}, fmt.Errorf("consultar dueño de línea %s: %w", rowID, err)
	}
	var h ports.RowHolder
	if len(vals) == 2 {
		h.SessionID, _ = vals[0].(string)
		h.Code, _ = vals[1].(string)
	}
	return h, nil
}
