package service

import (
	_ "github.com/lib/pq"
)

var PostgresDialect = Dialect{
	Name:       DriverPostgres,
	DriverName: "postgres",
	ListTablesSQL: `SELECT table_name FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
		ORDER BY table_name`,
	ListColumnsSQL: `SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
		ORDER BY ordinal_position`,
	numbered: true,
}
