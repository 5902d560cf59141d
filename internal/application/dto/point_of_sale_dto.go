package dto

// CreatePointOfSaleRequest body para POST /api/puntos_venta.
type CreatePointOfSaleRequest struct {
	Nombre    string `json:"nombre" validate:"required,min=1,max=100"`
	Ubicacion string `json:"ubicacion,omitempty" validate:"omitempty,max=150"`
	Tipo      string `json:"tipo" validate:"required,oneof=tienda metro online"`
}

// PointOfSaleResponse salida para puntos de venta.
type PointOfSaleResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Ubicacion string `json:"ubicacion,omitempty"`
	Tipo      string `json:"tipo"`
}
