package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Cantar-api/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// validUUID los ids de las tablas son UUID; cualquier otro texto no puede existir y no se envía a la base.
func validUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// orderTables tablas de cabecera y líneas según la dirección del pesaje.
func orderTables(dir entity.Direction) (orders, lines, fk string, ok bool) {
	switch dir {
	case entity.DirectionInbound:
		return "purchase_orders", "purchase_order_lines", "purchase_order_id", true
	case entity.DirectionOutbound:
		return "sales_orders", "sales_order_lines", "sales_order_id", true
	default:
		return "", "", "", false
	}
}
