package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	_ "modernc.org/sqlite"
)

var SQLiteDialect = Dialect{
	Name:          DriverSQLite,
	DriverName:    "sqlite",
	ListTablesSQL: `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`,
	ListColumnsSQL: `SELECT name, type, CASE WHEN "notnull" = 0 THEN 'YES' ELSE 'NO' END
		FROM pragma_table_info(?)
		ORDER BY cid`,
}

// RequireDatabaseFile fails when the SQLite file at path does not exist.
// Opening a missing file would silently create an empty database.
func RequireDatabaseFile(path string) error {
	if path == ":memory:" {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Unavailable(fmt.Sprintf("el archivo de la base de datos no se encuentra en: %s", path), err)
	}
	if err != nil {
		return Unavailable("no se pudo acceder a la base de datos", err)
	}
	if info.IsDir() {
		return Unavailable(fmt.Sprintf("%s es un directorio", path), nil)
	}
	return nil
}
