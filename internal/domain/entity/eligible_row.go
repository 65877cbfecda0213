package entity

import "github.com/shopspring/decimal"

// RowLock estado de bloqueo de una línea de comanda: libre o tomada por una sesión en curso.
type RowLock struct {
	locked bool
	by     string
}

// Unlocked línea libre.
func Unlocked() RowLock { return RowLock{} }

// LockedBy línea tomada por la sesión con el código dado.
func LockedBy(sessionCode string) RowLock { return RowLock{locked: true, by: sessionCode} }

// IsLocked indica si la línea está en la báscula.
func (l RowLock) IsLocked() bool { return l.locked }

// Holder código de la sesión que retiene la línea ("" si está libre).
func (l RowLock) Holder() string { return l.by }

// EligibleRow línea de comanda candidata a la que se puede asociar una sesión.
type EligibleRow struct {
	ID          string
	OrderID     string
	ProductName string
	Quantity    decimal.Decimal
	HasTara     bool
	HasBrut     bool
	Lock        RowLock
}

// IsOnScale equivale al flag isOnScale de la línea.
func (r *EligibleRow) IsOnScale() bool { return r.Lock.IsLocked() }
