package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"licitaciones/backend/internal/config"
	"licitaciones/backend/internal/handler"
	"licitaciones/backend/internal/service"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func NewServeCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().Int("port", config.DefaultPort, "HTTP port")
	cmd.Flags().String("mode", config.DefaultMode, "gin mode (release|debug|test)")
	cmd.Flags().String("results", config.DefaultResultsPath, "path to the model results JSON document")
	addDatabaseFlags(cmd)

	return cmd
}

func runServe(ctx context.Context, opts *RootOptions) error {
	cfg, logger := opts.Config, opts.Logger

	db, err := openDatabase(ctx, cfg.Database, false)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Disconnect(); err != nil {
			logger.Warn("error al cerrar la base de datos", "error", err)
		}
		logger.Info("conexión a la base de datos cerrada")
	}()
	logger.Info("conectado a la base de datos", "driver", cfg.Database.Driver)

	svc := service.NewQueryService(db, logger)
	reportTables(ctx, db, svc, logger)

	if err := service.EnsureIndexes(ctx, db, logger); err != nil {
		logger.Warn("no se pudieron crear todos los índices", "error", err)
	}

	h := handler.NewHandler(svc, cfg.Results.Path, logger)
	router := handler.NewRouter(h, logger, handler.RouterConfig{
		Mode:        cfg.Server.Mode,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", cfg.Server.Port, err)
	}
	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serveUntilDone(ctx, srv, ln, logger)
}

// serveUntilDone serves on ln until ctx is cancelled, then shuts srv down.
func serveUntilDone(ctx context.Context, srv *http.Server, ln net.Listener, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("servidor escuchando", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("cerrando servidor")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// reportTables logs the physical tables and warns about allow-listed ones
// that are missing. Failures are logged only.
func reportTables(ctx context.Context, db service.DBClient, svc *service.QueryService, logger *slog.Logger) {
	all, err := db.ListTables(ctx)
	if err != nil {
		logger.Warn("no se pudieron listar las tablas", "error", err)
		return
	}
	logger.Info("tablas en la base de datos", "tablas", all)

	missing, err := svc.MissingTables(ctx)
	if err != nil {
		logger.Warn("no se pudieron verificar las tablas", "error", err)
		return
	}
	for _, name := range missing {
		logger.Warn("tabla no encontrada", "table", name)
	}
}
