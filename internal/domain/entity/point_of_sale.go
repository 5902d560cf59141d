package entity

// Tipos válidos de punto de venta.
const (
	POSTipoTienda = "tienda"
	POSTipoMetro  = "metro"
	POSTipoOnline = "online"
)

// PointOfSale representa un punto de venta (entidad de referencia, inmutable).
type PointOfSale struct {
	ID       string
	Name     string
	Location string
	Type     string // tienda, metro, online
}

// ValidPOSType indica si el tipo de punto de venta es reconocido.
func ValidPOSType(t string) bool {
	switch t {
	case POSTipoTienda, POSTipoMetro, POSTipoOnline:
		return true
	}
	return false
}
