package dto

import "github.com/go-playground/validator/v10"

// validate instancia compartida del validador de structs (tags `validate`).
var validate = validator.New()

// Validate valida un DTO según sus tags. Devuelve validator.ValidationErrors
// cuando hay campos inválidos; los handlers lo traducen a 400.
func Validate(s any) error {
	return validate.Struct(s)
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
