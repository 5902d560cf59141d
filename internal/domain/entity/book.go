package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book representa un libro del catálogo. El stock NO vive aquí: se maneja por
// entradas del libro mayor de inventario (LedgerEntry), global o por punto de venta.
type Book struct {
	ID          string
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal // precio unitario de venta
	Pages       int             // páginas por libro (consumo de papel)
	CreatedAt   time.Time
}

// BookUpdate campos mutables de un libro (actualización parcial explícita).
// Solo nombre y precio son editables después de creado.
type BookUpdate struct {
	Name  *string
	Price *decimal.Decimal
}
