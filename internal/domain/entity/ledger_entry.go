package entity

import "time"

// LedgerEntry representa el stock actual de un libro en una ubicación.
// PointOfSaleID en nil significa la bodega central; con valor, un punto de venta.
// Invariantes: Stock >= 0 siempre, y existe a lo sumo una entrada por par
// (libro, ubicación) — la creación es find-or-create dentro de la transacción de ajuste.
type LedgerEntry struct {
	ID            string
	BookID        string
	PointOfSaleID *string
	Stock         int
	MinStock      *int // umbral de reposición, solo entradas por punto de venta
	UpdatedAt     time.Time
}

// IsGlobal indica si la entrada corresponde a la bodega central.
func (e *LedgerEntry) IsGlobal() bool {
	return e.PointOfSaleID == nil
}
