package dto

import "time"

// CreateRawMaterialRequest body para POST /api/materias_primas.
type CreateRawMaterialRequest struct {
	Nombre      string `json:"nombre" validate:"required,min=1,max=100"`
	Unidad      string `json:"unidad" validate:"required"`
	StockActual int    `json:"stock_actual" validate:"omitempty,gte=0"`
	StockMinimo int    `json:"stock_minimo" validate:"gte=0"`
}

// UpdateRawMaterialRequest body para PATCH /api/materias_primas/:id.
// El stock actual no es editable por esta vía: solo lo mueve el motor de ajustes.
type UpdateRawMaterialRequest struct {
	Nombre      *string `json:"nombre,omitempty" validate:"omitempty,min=1,max=100"`
	Unidad      *string `json:"unidad,omitempty"`
	StockMinimo *int    `json:"stock_minimo,omitempty" validate:"omitempty,gte=0"`
}

// ReceiveRawMaterialRequest body para POST /api/materias_primas/:id/entrada.
type ReceiveRawMaterialRequest struct {
	Cantidad      int    `json:"cantidad" validate:"required,gt=0"`
	UsuarioID     string `json:"usuario_id" validate:"required"`
	Observaciones string `json:"observaciones,omitempty"`
}

// AdjustRawMaterialRequest body para POST /api/materias_primas/:id/ajustar.
type AdjustRawMaterialRequest struct {
	Delta         int     `json:"delta" validate:"required"`
	UsuarioID     *string `json:"usuario_id,omitempty"`
	Observaciones string  `json:"observaciones,omitempty"`
}

// RawMaterialResponse salida para materias primas.
type RawMaterialResponse struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Unidad      string `json:"unidad"`
	StockActual int    `json:"stock_actual"`
	StockMinimo int    `json:"stock_minimo"`
}

// RawMaterialMovementResponse salida para movimientos de materia prima.
type RawMaterialMovementResponse struct {
	ID            string    `json:"id"`
	IDMateria     string    `json:"id_mp"`
	Tipo          string    `json:"tipo"`
	Cantidad      int       `json:"cantidad"`
	UsuarioID     *string   `json:"usuario_id,omitempty"`
	Observaciones string    `json:"observaciones,omitempty"`
	Fecha         time.Time `json:"fecha_movimiento"`
}
