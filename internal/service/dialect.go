package service

import (
	"fmt"
	"strconv"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Dialect holds the few SQL differences between the supported stores.
type Dialect struct {
	Name       string
	DriverName string

	// ListTablesSQL returns one column with every physical table name.
	ListTablesSQL string
	// ListColumnsSQL takes the table name as its only argument and returns
	// name, type and a YES/NO nullable flag in ordinal order.
	ListColumnsSQL string

	numbered bool
}

// Placeholder returns the bind marker for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	if d.numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// DialectFor resolves a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverSQLite:
		return SQLiteDialect, nil
	case DriverPostgres:
		return PostgresDialect, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported driver %q", driver)
	}
}
