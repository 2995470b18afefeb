package model

// Row is a single record as returned by storage, keyed by column name.
type Row = map[string]any

// Page is the envelope returned by every table-read endpoint.
type Page struct {
	Data     []Row    `json:"data"`
	Total    int64    `json:"total"`
	Pagina   int      `json:"pagina"`
	Limite   int      `json:"limite"`
	Columnas []string `json:"columnas"`
}

// TablesResponse is the body of /api/tablas and /api/test-db.
type TablesResponse struct {
	Tablas []string `json:"tablas"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
