package model

// Table is one of the fixed procurement tables the service may read.
// Values outside AllowedTables never reach a query.
type Table string

const (
	Adjudicaciones         Table = "adjudicaciones"
	CriteriosAdjudicacion  Table = "criterios_adjudicacion"
	Modificados            Table = "modificados"
	ResultadosLicitaciones Table = "resultados_licitaciones"
)

// IdentifierColumn is present in every allowed table. It is the sort key
// and the only filterable column.
const IdentifierColumn = "identificador"

var allowedTables = [...]Table{
	Adjudicaciones,
	CriteriosAdjudicacion,
	Modificados,
	ResultadosLicitaciones,
}

// AllowedTables returns the allow-list in its canonical order.
func AllowedTables() []Table {
	out := make([]Table, len(allowedTables))
	copy(out, allowedTables[:])
	return out
}

// ParseTable maps a requested name to a Table. The second result is false
// when the name is not allow-listed.
func ParseTable(name string) (Table, bool) {
	for _, t := range allowedTables {
		if string(t) == name {
			return t, true
		}
	}
	return "", false
}

func (t Table) String() string {
	return string(t)
}
