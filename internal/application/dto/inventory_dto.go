package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/inventario/:id/ajustar y /api/inventario-pv/:id/ajustar.
// Delta se suma al stock (puede ser negativo). Tipo opcional etiqueta el movimiento
// como venta o ajuste; vacío infiere entrada/salida según el signo.
type AdjustStockRequest struct {
	Delta         int     `json:"delta" validate:"required"`
	Tipo          string  `json:"tipo,omitempty" validate:"omitempty,oneof=venta ajuste"`
	UsuarioID     *string `json:"usuario_id,omitempty"`
	Observaciones string  `json:"observaciones,omitempty"`
}

// SetStockRequest body para POST /api/inventario/:id/fijar. Fija el stock a un valor absoluto.
type SetStockRequest struct {
	Stock         int     `json:"stock" validate:"gte=0"`
	UsuarioID     *string `json:"usuario_id,omitempty"`
	Observaciones string  `json:"observaciones,omitempty"`
}

// CreateLocationStockRequest body para POST /api/inventario-pv.
// Si ya existe la entrada (libro, punto de venta) el stock se acumula.
type CreateLocationStockRequest struct {
	IDLibro      string  `json:"id_libro" validate:"required"`
	IDPuntoVenta string  `json:"id_punto_venta" validate:"required"`
	Stock        int     `json:"stock" validate:"gte=0"`
	StockMinimo  *int    `json:"stock_minimo,omitempty" validate:"omitempty,gte=0"`
	UsuarioID    *string `json:"usuario_id,omitempty"`
}

// LedgerEntryResponse salida para una entrada del libro mayor de stock.
// PuntoVenta en nil indica la bodega central.
type LedgerEntryResponse struct {
	ID            string           `json:"id"`
	IDLibro       string           `json:"id_libro"`
	Libro         string           `json:"libro,omitempty"`
	Precio        *decimal.Decimal `json:"precio,omitempty"`
	IDPuntoVenta  *string          `json:"id_punto_venta,omitempty"`
	PuntoVenta    *string          `json:"punto_venta,omitempty"`
	Stock         int              `json:"stock"`
	StockMinimo   *int             `json:"stock_minimo,omitempty"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// MovementResponse salida para un movimiento del log de auditoría.
type MovementResponse struct {
	ID            string    `json:"id"`
	InventarioID  string    `json:"inventario_id"`
	Tipo          string    `json:"tipo"`
	Cantidad      int       `json:"cantidad"`
	UsuarioID     *string   `json:"usuario_id,omitempty"`
	Observaciones string    `json:"observaciones,omitempty"`
	Fecha         time.Time `json:"fecha_movimiento"`
}
