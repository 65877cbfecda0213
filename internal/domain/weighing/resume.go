package weighing

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Cantar-api/internal/domain/entity"
)

// NormalizePlate pasa a mayúsculas, colapsa espacios y recorta: " b  123 abc " -> "B 123 ABC".
// Un Caser no se comparte entre goroutines, por eso se crea en cada llamada.
func NormalizePlate(plate string) string {
	upper := cases.Upper(language.Romanian).String(plate)
	return strings.Join(strings.Fields(upper), " ")
}

// FindInFlightByPlate busca una sesión en curso con la misma matrícula normalizada.
func FindInFlightByPlate(q *QueueManager, plate string) *entity.WeighSession {
	want := NormalizePlate(plate)
	if want == "" {
		return nil
	}
	for _, s := range q.InFlight() {
		if NormalizePlate(s.VehiclePlate) == want {
			return s
		}
	}
	return nil
}

// ResumeLookup vista derivada "¿ya hay un camión en curso con esta matrícula?".
// Se recalcula solo cuando cambia la entrada o el contenido de las colas.
type ResumeLookup struct {
	input   string
	version uint64
	valid   bool
	result  *entity.WeighSession
}

// Lookup devuelve la sesión a reanudar o nil. No modifica las colas.
func (r *ResumeLookup) Lookup(q *QueueManager, input string) *entity.WeighSession {
	key := NormalizePlate(input)
	if r.valid && r.input == key && r.version == q.Version() {
		return r.result
	}
	r.input, r.version, r.valid = key, q.Version(), true
	r.result = FindInFlightByPlate(q, key)
	return r.result
}
