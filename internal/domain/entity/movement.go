package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementEntrada = "entrada" // reposición
	MovementSalida  = "salida"  // retiro
	MovementVenta   = "venta"   // venta en punto de venta (solo libros)
	MovementAjuste  = "ajuste"  // corrección manual, delta con signo
)

// ValidBookMovementKind indica si el tipo aplica a movimientos de libros.
func ValidBookMovementKind(kind string) bool {
	switch kind {
	case MovementEntrada, MovementSalida, MovementVenta, MovementAjuste:
		return true
	}
	return false
}

// ValidRawMaterialMovementKind indica si el tipo aplica a movimientos de materia prima.
// Las materias primas no se venden: no existe el tipo venta.
func ValidRawMaterialMovementKind(kind string) bool {
	switch kind {
	case MovementEntrada, MovementSalida, MovementAjuste:
		return true
	}
	return false
}

// BookMovement es el registro inmutable de un evento que cambió el stock de un libro.
// Quantity es magnitud positiva para entrada/salida/venta y delta con signo para ajuste.
// Una vez creado nunca se modifica ni se borra.
type BookMovement struct {
	ID            string
	LedgerEntryID string
	Kind          string
	Quantity      int
	UserID        *string // actor (opcional)
	Note          string
	CreatedAt     time.Time
}

// RawMaterialMovement es el registro inmutable de un evento sobre el stock de materia prima.
type RawMaterialMovement struct {
	ID            string
	RawMaterialID string
	Kind          string
	Quantity      int
	UserID        *string
	Note          string
	CreatedAt     time.Time
}
