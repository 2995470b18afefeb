package model

import "math"

// PageQuery is a validated page request against one table.
type PageQuery struct {
	Table  Table
	Pagina int
	Limite int
	Filtro string
}

// Offset is the number of rows skipped before the page starts. ok is false
// when the offset does not fit in an int; no table holds that many rows, so
// such a page is always past the end.
func (q PageQuery) Offset() (offset int, ok bool) {
	if q.Pagina < 1 || q.Limite < 1 {
		return 0, false
	}
	if q.Pagina-1 > math.MaxInt/q.Limite {
		return 0, false
	}
	return (q.Pagina - 1) * q.Limite, true
}

// HasFilter reports whether the query is restricted to one identificador.
func (q PageQuery) HasFilter() bool {
	return q.Filtro != ""
}
