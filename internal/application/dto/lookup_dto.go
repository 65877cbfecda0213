package dto

// OptionResponse opción de un selector: identificador estable y etiqueta.
type OptionResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// OptionListResponse lista paginada de opciones.
type OptionListResponse struct {
	Items []OptionResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
