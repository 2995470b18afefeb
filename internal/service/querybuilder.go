package service

import (
	"strings"

	"licitaciones/backend/helper"
	"licitaciones/backend/internal/model"
)

// BuildPageQuery renders the SELECT for one page of q.Table. The table is
// the only interpolated identifier; the filter, limit and offset are bound.
func BuildPageQuery(d Dialect, q model.PageQuery) (string, []any, error) {
	from, err := fromClause(q.Table)
	if err != nil {
		return "", nil, err
	}
	offset, ok := q.Offset()
	if !ok {
		return "", nil, InvalidParameter("pagina fuera de rango")
	}

	var sb strings.Builder
	args := make([]any, 0, 3)

	sb.WriteString("SELECT * ")
	sb.WriteString(from)
	if q.HasFilter() {
		args = append(args, q.Filtro)
		sb.WriteString(" WHERE " + helper.QuoteIdentifier(model.IdentifierColumn) + " = " + d.Placeholder(len(args)))
	}
	sb.WriteString(" ORDER BY " + helper.QuoteIdentifier(model.IdentifierColumn) + " DESC")

	args = append(args, q.Limite)
	sb.WriteString(" LIMIT " + d.Placeholder(len(args)))
	args = append(args, offset)
	sb.WriteString(" OFFSET " + d.Placeholder(len(args)))

	return sb.String(), args, nil
}

// BuildCountQuery renders the COUNT matching BuildPageQuery's filter,
// independent of the requested page.
func BuildCountQuery(d Dialect, q model.PageQuery) (string, []any, error) {
	from, err := fromClause(q.Table)
	if err != nil {
		return "", nil, err
	}

	query := "SELECT COUNT(*) AS total " + from
	if !q.HasFilter() {
		return query, nil, nil
	}
	return query + " WHERE " + helper.QuoteIdentifier(model.IdentifierColumn) + " = " + d.Placeholder(1),
		[]any{q.Filtro}, nil
}

// fromClause re-checks the allow-list: a model.Table can be converted from
// any string.
func fromClause(t model.Table) (string, error) {
	table, ok := model.ParseTable(string(t))
	if !ok {
		return "", InvalidTable()
	}
	return "FROM " + helper.QuoteIdentifier(table.String()), nil
}
