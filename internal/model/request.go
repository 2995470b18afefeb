package model

const (
	DefaultPagina = 1
	DefaultLimite = 5
)

// PageRequest binds the query string of GET /api/:tabla.
type PageRequest struct {
	Pagina int    `form:"pagina,default=1" binding:"min=1"`
	Limite int    `form:"limite,default=5" binding:"min=1"`
	Filtro string `form:"filtro"`
}
