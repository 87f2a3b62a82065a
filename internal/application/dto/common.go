package dto

// PageRequest paginación por número de página (1-indexada) para listados.
type PageRequest struct {
	Page    int `query:"page" validate:"min=0"`
	PerPage int `query:"per_page" validate:"min=0,max=100"`
}

// DefaultPage aplica valores por defecto si Page/PerPage vienen en cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = 20
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
}

// Offset devuelve el desplazamiento SQL equivalente.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
