package cli

import (
	"context"

	"licitaciones/backend/internal/config"
	"licitaciones/backend/internal/service"
)

// openDatabase connects to the configured storage. SQLite files must already
// exist unless create is set.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, create bool) (*service.SQLClient, error) {
	if cfg.Driver == service.DriverSQLite && !create {
		if err := service.RequireDatabaseFile(cfg.Path); err != nil {
			return nil, err
		}
	}
	return service.Open(ctx, cfg.Driver, cfg.ConnectionString())
}
