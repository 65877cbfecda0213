// Package weighing contiene la lógica pura del cântar: qué masa se espera en cada paso,
// validación de masas introducidas y las colas de camiones. No hace I/O.
package weighing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cantar-api/internal/domain"
	"github.com/jhoicas/Cantar-api/internal/domain/entity"
)

// NextWeightType devuelve la masa esperada para (dirección, paso).
//
//	INBOUND  1/2 -> BRUT (llega cargado)   2/2 -> TARA
//	OUTBOUND 1/2 -> TARA (llega vacío)     2/2 -> BRUT
func NextWeightType(dir entity.Direction, step entity.Step) entity.WeightType {
	inbound := dir == entity.DirectionInbound
	if step == entity.Step1 {
		if inbound {
			return entity.WeightBrut
		}
		return entity.WeightTara
	}
	if inbound {
		return entity.WeightTara
	}
	return entity.WeightBrut
}

// ApplyWeight escribe value en una copia de trabajo de s y recalcula la masa neta.
// Si value <= 0 devuelve ErrInvalidWeight; si brut < tara devuelve ErrNegativeNet.
// En caso de error s no se modifica y se devuelve nil.
func ApplyWeight(s *entity.WeighSession, t entity.WeightType, value decimal.Decimal, observations string, now time.Time) (*entity.WeighSession, error) {
	if s == nil || !t.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if !value.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidWeight
	}

	w := s.Clone()
	v := value
	switch t {
	case entity.WeightTara:
		w.Tara = &v
	case entity.WeightBrut:
		w.MasaBrut = &v
	}

	w.MasaNet = nil
	if w.Tara != nil && w.MasaBrut != nil {
		net := w.MasaBrut.Sub(*w.Tara)
		if net.IsNegative() {
			return nil, domain.ErrNegativeNet
		}
		w.MasaNet = &net
	}

	if observations != "" {
		w.Observations = observations
	}
	w.UpdatedAt = now
	return w, nil
}

// StepCompleted indica si s ya tiene la masa que espera su paso actual.
func StepCompleted(s *entity.WeighSession) bool {
	switch NextWeightType(s.Direction, s.Step) {
	case entity.WeightTara:
		return s.Tara != nil
	default:
		return s.MasaBrut != nil
	}
}
