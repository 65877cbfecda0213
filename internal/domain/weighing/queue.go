package weighing

import (
	"github.com/jhoicas/Cantar-api/internal/domain"
	"github.com/jhoicas/Cantar-api/internal/domain/entity"
)

// Location dónde se encuentra una sesión en curso.
type Location int

const (
	LocationNone   Location = iota // completada o desconocida
	LocationQueue1                 // espera la primera medición
	LocationQueue2                 // espera la segunda medición
	LocationActive                 // llamada con CallNext, fuera de las colas
)

// QueueManager mantiene queue1, queue2 y el slot activo.
// Una sesión aparece como mucho en uno de {queue1, queue2, slot activo}.
// Seleccionar manualmente una sesión de una cola la marca activa sin sacarla de su cola;
// CallNext en cambio la saca de queue1 y el slot activo pasa a ser su único lugar.
type QueueManager struct {
	queue1 []*entity.WeighSession
	queue2 []*entity.WeighSession

	activeID string
	popped   *entity.WeighSession // sesión sacada de queue1 por CallNext

	version uint64
}

// NewQueueManager crea las colas vacías.
func NewQueueManager() *QueueManager {
	return &QueueManager{}
}

// Version cambia en cada mutación; sirve de clave de memoización para vistas derivadas.
func (q *QueueManager) Version() uint64 { return q.version }

// EnqueueStep1 añade la sesión al final de queue1.
func (q *QueueManager) EnqueueStep1(s *entity.WeighSession) error {
	if s == nil || s.ID == "" {
		return domain.ErrInvalidInput
	}
	if _, loc := q.Find(s.ID); loc != LocationNone {
		return domain.ErrDuplicate
	}
	q.queue1 = append(q.queue1, s)
	q.version++
	return nil
}

// CallNext saca la cabeza de queue1 (FIFO) y la deja activa.
// Con queue1 vacía no hace nada y devuelve false.
func (q *QueueManager) CallNext() (*entity.WeighSession, bool) {
	if len(q.queue1) == 0 {
		return nil, false
	}
	q.releaseActive()
	head := q.queue1[0]
	q.queue1 = q.queue1[1:]
	q.popped = head
	q.activeID = head.ID
	q.version++
	return head, true
}

// SelectFromQueue activa cualquier sesión de queue1 o queue2 (override manual del orden FIFO).
// La sesión sigue en su cola hasta completar su paso actual.
func (q *QueueManager) SelectFromQueue(sessionID string) (*entity.WeighSession, error) {
	if q.popped != nil && q.popped.ID == sessionID {
		return q.popped, nil
	}
	if indexOf(q.queue1, sessionID) < 0 && indexOf(q.queue2, sessionID) < 0 {
		return nil, domain.ErrNotFound
	}
	q.releaseActive()
	s, _ := q.Find(sessionID)
	q.activeID = sessionID
	q.version++
	return s, nil
}

// AdvanceToStep2 mueve la sesión (ya en paso 2/2) al final de queue2 y libera el slot activo.
func (q *QueueManager) AdvanceToStep2(s *entity.WeighSession) error {
	if s == nil || s.ID == "" {
		return domain.ErrInvalidInput
	}
	if indexOf(q.queue2, s.ID) >= 0 {
		return domain.ErrDuplicate
	}
	q.queue1 = remove(q.queue1, s.ID)
	if q.popped != nil && q.popped.ID == s.ID {
		q.popped = nil
	}
	if q.activeID == s.ID {
		q.activeID = ""
	}
	q.queue2 = append(q.queue2, s)
	q.version++
	return nil
}

// Complete quita la sesión de queue2 (y del slot activo si era la activa).
// Devuelve false si la sesión no estaba en curso.
func (q *QueueManager) Complete(sessionID string) bool {
	_, loc := q.Find(sessionID)
	if loc == LocationNone {
		return false
	}
	q.queue1 = remove(q.queue1, sessionID)
	q.queue2 = remove(q.queue2, sessionID)
	if q.popped != nil && q.popped.ID == sessionID {
		q.popped = nil
	}
	if q.activeID == sessionID {
		q.activeID = ""
	}
	q.version++
	return true
}

// ClearActive deja el slot activo vacío; una sesión sacada por CallNext vuelve a la cabeza de queue1.
func (q *QueueManager) ClearActive() {
	if q.activeID == "" {
		return
	}
	q.releaseActive()
	q.version++
}

// Find busca la sesión en curso y su ubicación.
func (q *QueueManager) Find(sessionID string) (*entity.WeighSession, Location) {
	if q.popped != nil && q.popped.ID == sessionID {
		return q.popped, LocationActive
	}
	if i := indexOf(q.queue1, sessionID); i >= 0 {
		return q.queue1[i], LocationQueue1
	}
	if i := indexOf(q.queue2, sessionID); i >= 0 {
		return q.queue2[i], LocationQueue2
	}
	return nil, LocationNone
}

// Location ubicación de la sesión.
func (q *QueueManager) Location(sessionID string) Location {
	_, loc := q.Find(sessionID)
	return loc
}

// Replace sustituye la sesión almacenada con el mismo ID, en el lugar donde esté.
func (q *QueueManager) Replace(s *entity.WeighSession) error {
	if s == nil {
		return domain.ErrInvalidInput
	}
	switch _, loc := q.Find(s.ID); loc {
	case LocationActive:
		q.popped = s
	case LocationQueue1:
		q.queue1[indexOf(q.queue1, s.ID)] = s
	case LocationQueue2:
		q.queue2[indexOf(q.queue2, s.ID)] = s
	default:
		return domain.ErrNotFound
	}
	q.version++
	return nil
}

// Active sesión activa o nil.
func (q *QueueManager) Active() *entity.WeighSession {
	if q.activeID == "" {
		return nil
	}
	s, _ := q.Find(q.activeID)
	return s
}

// Queue1 copia de queue1 en orden.
func (q *QueueManager) Queue1() []*entity.WeighSession {
	return append([]*entity.WeighSession(nil), q.queue1...)
}

// Queue2 copia de queue2 en orden.
func (q *QueueManager) Queue2() []*entity.WeighSession {
	return append([]*entity.WeighSession(nil), q.queue2...)
}

// InFlight todas las sesiones en curso: activa sacada, queue1 y queue2.
func (q *QueueManager) InFlight() []*entity.WeighSession {
	out := make([]*entity.WeighSession, 0, len(q.queue1)+len(q.queue2)+1)
	if q.popped != nil {
		out = append(out, q.popped)
	}
	out = append(out, q.queue1...)
	return append(out, q.queue2...)
}

// releaseActive libera el slot; una sesión sacada de queue1 vuelve a su cabeza.
func (q *QueueManager) releaseActive() {
	if q.popped != nil {
		q.queue1 = append([]*entity.WeighSession{q.popped}, q.queue1...)
		q.popped = nil
	}
	q.activeID = ""
}

func indexOf(list []*entity.WeighSession, id string) int {
	for i, s := range list {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func remove(list []*entity.WeighSession, id string) []*entity.WeighSession {
	i := indexOf(list, id)
	if i < 0 {
		return list
	}
	out := make([]*entity.WeighSession, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
