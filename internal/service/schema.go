package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"licitaciones/backend/helper"
	"licitaciones/backend/internal/model"
)

// Index is a supporting index created at startup.
type Index struct {
	Name   string
	Table  model.Table
	Column string
}

// DDL renders an idempotent CREATE INDEX statement.
func (i Index) DDL() (string, error) {
	if !helper.IsValidIdentifier(i.Name) || !helper.IsValidIdentifier(i.Column) {
		return "", fmt.Errorf("invalid index definition %s(%s)", i.Name, i.Column)
	}
	if _, ok := model.ParseTable(string(i.Table)); !ok {
		return "", InvalidTable()
	}
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
		helper.QuoteIdentifier(i.Name),
		helper.QuoteIdentifier(i.Table.String()),
		helper.QuoteIdentifier(i.Column)), nil
}

// Indexes lists the identificador index of every table plus the date
// columns used for filtering and sorting.
var Indexes = []Index{
	{Name: "idx_adjudicaciones_identificador", Table: model.Adjudicaciones, Column: model.IdentifierColumn},
	{Name: "idx_criterios_adjudicacion_identificador", Table: model.CriteriosAdjudicacion, Column: model.IdentifierColumn},
	{Name: "idx_modificados_identificador", Table: model.Modificados, Column: model.IdentifierColumn},
	{Name: "idx_resultados_licitaciones_identificador", Table: model.ResultadosLicitaciones, Column: model.IdentifierColumn},
	{Name: "idx_resultados_licitaciones_fecha_adjudicacion", Table: model.ResultadosLicitaciones, Column: "fecha_adjudicacion"},
	{Name: "idx_modificados_fecha_modificacion", Table: model.Modificados, Column: "fecha_de_modificacion"},
}

// baseColumns is the minimal layout init-db creates. Imported data may add
// any number of further columns.
var baseColumns = map[model.Table][]string{
	model.ResultadosLicitaciones: {"identificador TEXT NOT NULL UNIQUE", "link_licitacion TEXT NOT NULL", "fecha_adjudicacion TEXT"},
	model.Modificados:            {"identificador TEXT NOT NULL", "link_licitacion TEXT NOT NULL", "fecha_de_modificacion TEXT"},
	model.Adjudicaciones:         {"identificador TEXT NOT NULL", "link_licitacion TEXT NOT NULL"},
	model.CriteriosAdjudicacion:  {"identificador TEXT NOT NULL", "link_licitacion TEXT NOT NULL"},
}

// EnsureIndexes creates every missing index. Each failure is logged and the
// joined error is returned; indexes that could be created stay created.
func EnsureIndexes(ctx context.Context, db DBClient, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var errs []error
	for _, idx := range Indexes {
		ddl, err := idx.DDL()
		if err == nil {
			err = db.Exec(ctx, ddl)
		}
		if err != nil {
			logger.Warn("no se pudo crear el índice", "index", idx.Name, "table", idx.Table, "error", err)
			errs = append(errs, fmt.Errorf("index %s: %w", idx.Name, err))
			continue
		}
	}
	if len(errs) == 0 {
		logger.Info("índices creados o verificados", "count", len(Indexes))
	}
	return errors.Join(errs...)
}

// InitSchema creates the four tables when absent, then their indexes.
func InitSchema(ctx context.Context, db DBClient, logger *slog.Logger) error {
	for _, table := range model.AllowedTables() {
		ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
			helper.QuoteIdentifier(table.String()),
			strings.Join(baseColumns[table], ", "))
		if err := db.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}
	return EnsureIndexes(ctx, db, logger)
}
