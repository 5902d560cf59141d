package entity

// RawMaterial representa una materia prima (papel, tinta, etc.).
// CurrentStock se muta únicamente a través del motor de ajustes, nunca por CRUD directo.
type RawMaterial struct {
	ID           string
	Name         string
	Unit         string // unidad de medida: resmas, litros, unidades
	CurrentStock int
	MinStock     int // umbral de reposición
}

// RawMaterialUpdate campos mutables de una materia prima (actualización parcial explícita).
// El stock actual queda fuera a propósito: solo lo escribe el motor de ajustes.
type RawMaterialUpdate struct {
	Name     *string
	Unit     *string
	MinStock *int
}
