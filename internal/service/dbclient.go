package service

import (
	"context"

	"licitaciones/backend/internal/model"
)

// DBClient is the storage handle the query service reads through.
type DBClient interface {
	Connect(ctx context.Context, dsn string) error
	Disconnect() error
	Dialect() Dialect
	ListTables(ctx context.Context) ([]string, error)
	ListColumns(ctx context.Context, table model.Table) ([]model.Column, error)
	QueryRows(ctx context.Context, query string, args ...any) ([]model.Row, error)
	QueryCount(ctx context.Context, query string, args ...any) (int64, error)
	Exec(ctx context.Context, query string, args ...any) error
}
