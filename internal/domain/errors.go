package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrMissingSelection = errors.New("falta seleccionar comanda, vehículo o conductor")

	// Cântar
	ErrInvalidWeight  = errors.New("la masa debe ser un número mayor que cero")
	ErrNegativeNet    = errors.New("error lógico de pesaje: la masa bruta debe ser mayor que la tara")
	ErrRowLocked      = errors.New("la línea de la comanda ya está en la báscula")
	ErrSaveInProgress = errors.New("ya hay un guardado en curso para esta sesión")
)
