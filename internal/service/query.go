package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"licitaciones/backend/internal/model"
)

// QueryService answers paginated, filtered reads over the allow-listed
// tables.
type QueryService struct {
	db     DBClient
	logger *slog.Logger
}

func NewQueryService(db DBClient, logger *slog.Logger) *QueryService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &QueryService{db: db, logger: logger}
}

// FetchPage returns page pagina of tabla, limite rows long, optionally
// restricted to identificador = filtro. Unknown tables fail before any
// storage access.
func (s *QueryService) FetchPage(ctx context.Context, tabla string, pagina, limite int, filtro string) (*model.Page, error) {
	table, ok := model.ParseTable(tabla)
	if !ok {
		return nil, InvalidTable()
	}
	if pagina < 1 {
		return nil, InvalidParameter("pagina debe ser un entero positivo")
	}
	if limite < 1 {
		return nil, InvalidParameter("limite debe ser un entero positivo")
	}

	q := model.PageQuery{Table: table, Pagina: pagina, Limite: limite, Filtro: filtro}
	d := s.db.Dialect()

	// A page whose offset overflows is past the end of any table: only the
	// count is queried.
	_, reachable := q.Offset()
	var (
		pageSQL  string
		pageArgs []any
		err      error
	)
	if reachable {
		pageSQL, pageArgs, err = BuildPageQuery(d, q)
		if err != nil {
			return nil, err
		}
	}
	countSQL, countArgs, err := BuildCountQuery(d, q)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var (
		rows    []model.Row
		total   int64
		columns []model.Column
	)

	g, gctx := errgroup.WithContext(ctx)
	if reachable {
		g.Go(func() error {
			var err error
			rows, err = s.db.QueryRows(gctx, pageSQL, pageArgs...)
			return err
		})
	}
	g.Go(func() error {
		var err error
		total, err = s.db.QueryCount(gctx, countSQL, countArgs...)
		return err
	})
	g.Go(func() error {
		var err error
		columns, err = s.db.ListColumns(gctx, table)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("error en consulta", "table", table, "error", err)
		return nil, QueryFailed("", err)
	}

	s.logger.Debug("consulta completada",
		"table", table,
		"pagina", pagina,
		"limite", limite,
		"filtered", q.HasFilter(),
		"rows", len(rows),
		"total", total,
		"duration", time.Since(start))

	page := &model.Page{
		Data:     rows,
		Total:    total,
		Pagina:   pagina,
		Limite:   limite,
		Columnas: []string{},
	}
	if page.Data == nil {
		page.Data = []model.Row{}
	}
	if len(page.Data) > 0 {
		page.Columnas = model.ColumnNames(columns)
	}
	return page, nil
}

// ListTables returns the allow-listed tables that physically exist, in
// allow-list order.
func (s *QueryService) ListTables(ctx context.Context) ([]string, error) {
	physical, err := s.db.ListTables(ctx)
	if err != nil {
		return nil, QueryFailed("Error al consultar la base de datos", err)
	}

	present := make(map[string]struct{}, len(physical))
	for _, name := range physical {
		present[name] = struct{}{}
	}

	tables := []string{}
	for _, t := range model.AllowedTables() {
		if _, ok := present[t.String()]; ok {
			tables = append(tables, t.String())
		}
	}
	return tables, nil
}

// ListAllTables returns every physical table. Diagnostic only.
func (s *QueryService) ListAllTables(ctx context.Context) ([]string, error) {
	tables, err := s.db.ListTables(ctx)
	if err != nil {
		return nil, QueryFailed("Error al consultar la base de datos", err)
	}
	if tables == nil {
		tables = []string{}
	}
	return tables, nil
}

// MissingTables reports allow-listed tables absent from storage.
func (s *QueryService) MissingTables(ctx context.Context) ([]string, error) {
	present, err := s.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	found := make(map[string]struct{}, len(present))
	for _, name := range present {
		found[name] = struct{}{}
	}

	var missing []string
	for _, t := range model.AllowedTables() {
		if _, ok := found[t.String()]; !ok {
			missing = append(missing, t.String())
		}
	}
	return missing, nil
}
