package dto

// DefaultPageLimit tamaño de página cuando no se indica limit.
const DefaultPageLimit = 20

// PageRequest paginación de listados (?limit=&offset=).
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage completa limit/offset vacíos o fuera de rango.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Response metadatos de la página para un total de elementos.
func (p PageRequest) Response(total int) PageResponse {
	return PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total}
}

// Paginate recorta items a la ventana pedida; nil si offset queda fuera.
func Paginate[T any](items []T, p PageRequest) []T {
	if p.Offset >= len(items) {
		return nil
	}
	end := min(p.Offset+p.Limit, len(items))
	return items[p.Offset:end]
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP: code estable para el cliente, message legible.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
