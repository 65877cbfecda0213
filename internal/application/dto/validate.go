package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Cantar-api/internal/domain"
)

// validate es seguro para uso concurrente y cachea la metainformación de los structs.
var validate = validator.New(validator.WithRequiredStructEnabled())

// selectionFields campos del formulario cuya ausencia es "falta selección".
var selectionFields = map[string]bool{
	"OrderID":   true,
	"VehicleID": true,
	"DriverID":  true,
}

// Validate valida los tags `validate` de un DTO y traduce el error a errores de dominio.
func Validate(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fields := make([]string, 0, len(verrs))
	missingSelection := false
	for _, fe := range verrs {
		if fe.Tag() == "required" && selectionFields[fe.Field()] {
			missingSelection = true
		}
		fields = append(fields, fe.Field())
	}
	if missingSelection {
		return fmt.Errorf("%w (%s)", domain.ErrMissingSelection, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w (%s)", domain.ErrInvalidInput, strings.Join(fields, ", "))
}
