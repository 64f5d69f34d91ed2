package dto

// PageRequest paginación opcional de listados. Limit 0 devuelve todo desde Offset.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// MaxPageLimit tope de elementos por página.
const MaxPageLimit = 100

// Normalize corrige valores negativos y aplica el tope.
func (p *PageRequest) Normalize() {
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Paginate recorta items según la página pedida.
func Paginate[T any](items []T, p PageRequest) []T {
	p.Normalize()
	if p.Offset >= len(items) {
		return items[:0]
	}
	items = items[p.Offset:]
	if p.Limit > 0 && p.Limit < len(items) {
		items = items[:p.Limit]
	}
	return items
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
