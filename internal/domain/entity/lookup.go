package entity

// Order comanda de compra (INBOUND) o de venta (OUTBOUND) seleccionable en el formulario.
type Order struct {
	ID        string
	Code      string
	Partner   string // proveedor o cliente
	Direction Direction
}

// Label texto mostrado en el selector.
func (o *Order) Label() string {
	if o.Partner == "" {
		return o.Code
	}
	return o.Code + " - " + o.Partner
}

// Vehicle vehículo registrado. La capacidad es solo informativa.
type Vehicle struct {
	ID    string
	Plate string
}

// Driver conductor registrado.
type Driver struct {
	ID   string
	Name string
}
