package service

import (
	"context"
	"database/sql"
	"fmt"

	"licitaciones/backend/internal/model"
)

// SQLClient implements DBClient on database/sql for any supported Dialect.
type SQLClient struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLClient wraps an already opened handle. Tests use it with sqlmock.
func NewSQLClient(db *sql.DB, dialect Dialect) *SQLClient {
	return &SQLClient{db: db, dialect: dialect}
}

// Open builds the client for driver and connects it to dsn.
func Open(ctx context.Context, driver, dsn string) (*SQLClient, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	client := &SQLClient{dialect: dialect}
	if err := client.Connect(ctx, dsn); err != nil {
		return nil, Unavailable("error al conectar a la base de datos", err)
	}
	return client, nil
}

func (c *SQLClient) Connect(ctx context.Context, dsn string) error {
	db, err := sql.Open(c.dialect.DriverName, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", c.dialect.Name, err)
	}

	// SQLite serializes access; one connection also keeps :memory: databases
	// shared between queries.
	if c.dialect.Name == DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping %s database: %w", c.dialect.Name, err)
	}

	c.db = db
	return nil
}

func (c *SQLClient) Disconnect() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *SQLClient) Dialect() Dialect {
	return c.dialect
}

// DB returns the underlying handle for direct queries.
func (c *SQLClient) DB() *sql.DB {
	return c.db
}

func (c *SQLClient) ListTables(ctx context.Context) ([]string, error) {
	if c.db == nil {
		return nil, errNotConnected
	}

	rows, err := c.db.QueryContext(ctx, c.dialect.ListTablesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (c *SQLClient) ListColumns(ctx context.Context, table model.Table) ([]model.Column, error) {
	if c.db == nil {
		return nil, errNotConnected
	}

	rows, err := c.db.QueryContext(ctx, c.dialect.ListColumnsSQL, string(table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := []model.Column{}
	for rows.Next() {
		var col model.Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable); err != nil {
			return nil, err
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

// QueryRows runs query and returns every row as a column-name keyed map.
func (c *SQLClient) QueryRows(ctx context.Context, query string, args ...any) ([]model.Row, error) {
	if c.db == nil {
		return nil, errNotConnected
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	results := []model.Row{}
	for rows.Next() {
		columns := make([]any, len(cols))
		columnPointers := make([]any, len(cols))
		for i := range columns {
			columnPointers[i] = &columns[i]
		}

		if err := rows.Scan(columnPointers...); err != nil {
			return nil, err
		}

		rowMap := model.Row{}
		for i, colName := range cols {
			val := *(columnPointers[i].(*any))
			// lib/pq hands back text and numeric values as raw bytes.
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			rowMap[colName] = val
		}
		results = append(results, rowMap)
	}

	return results, rows.Err()
}

// QueryCount runs a single-value COUNT query.
func (c *SQLClient) QueryCount(ctx context.Context, query string, args ...any) (int64, error) {
	if c.db == nil {
		return 0, errNotConnected
	}

	var total int64
	if err := c.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (c *SQLClient) Exec(ctx context.Context, query string, args ...any) error {
	if c.db == nil {
		return errNotConnected
	}
	_, err := c.db.ExecContext(ctx, query, args...)
	return err
}
