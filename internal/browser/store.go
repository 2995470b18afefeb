// Package browser holds the client-side view state of a table browser:
// the table listing, the current page and the pagination parameters used to
// fetch it.
package browser

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sort"
	"sync"

	"licitaciones/backend/internal/client"
	"licitaciones/backend/internal/model"
)

// ErrSuperseded is returned by a load whose response arrived after a newer
// load for the same slot had started. Its result is discarded.
var ErrSuperseded = errors.New("superseded by a newer request")

// API is the subset of the HTTP client the store drives.
type API interface {
	Tables(ctx context.Context) ([]string, error)
	Page(ctx context.Context, table string, p client.PageParams) (*model.Page, error)
	ModelResults(ctx context.Context) (json.RawMessage, error)
}

// State is a point-in-time copy of the store.
type State struct {
	Tablas       []string
	Datos        []model.Row
	Columnas     []string
	Pagina       int
	Limite       int
	Total        int64
	Filtro       string
	ModelResults json.RawMessage
}

type slot struct {
	gen    uint64
	cancel context.CancelFunc
}

type Store struct {
	api    API
	logger *slog.Logger

	mu    sync.Mutex
	state State

	tablas  slot
	datos   slot
	results slot
}

func NewStore(api API, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		api:    api,
		logger: logger,
		state: State{
			Tablas:   []string{},
			Datos:    []model.Row{},
			Columnas: []string{},
			Pagina:   model.DefaultPagina,
			Limite:   model.DefaultLimite,
		},
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Tablas = slices.Clone(s.state.Tablas)
	st.Datos = slices.Clone(s.state.Datos)
	st.Columnas = slices.Clone(s.state.Columnas)
	st.ModelResults = slices.Clone(s.state.ModelResults)
	return st
}

// SetPage changes the page used by the next LoadData. It does not fetch.
func (s *Store) SetPage(n int) {
	s.mu.Lock()
	s.state.Pagina = n
	s.mu.Unlock()
}

// SetLimit changes the page size used by the next LoadData. It does not fetch.
func (s *Store) SetLimit(n int) {
	s.mu.Lock()
	s.state.Limite = n
	s.mu.Unlock()
}

// SetFilter sets the identifier filter and goes back to the first page.
func (s *Store) SetFilter(v string) {
	s.mu.Lock()
	s.state.Filtro = v
	s.state.Pagina = model.DefaultPagina
	s.mu.Unlock()
}

func (s *Store) LoadTables(ctx context.Context) error {
	ctx, gen := s.begin(ctx, &s.tablas)

	tables, err := s.api.Tables(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.finish(&s.tablas, gen); err != nil {
		return err
	}
	if err != nil {
		s.logger.Error("error al cargar tablas", "error", err)
		return err
	}

	if tables == nil {
		tables = []string{}
	}
	s.state.Tablas = tables
	return nil
}

// LoadData fetches table with the current pagina, limite and filtro.
func (s *Store) LoadData(ctx context.Context, table string) error {
	s.mu.Lock()
	params := client.PageParams{Pagina: s.state.Pagina, Limite: s.state.Limite, Filtro: s.state.Filtro}
	s.mu.Unlock()

	ctx, gen := s.begin(ctx, &s.datos)

	page, err := s.api.Page(ctx, table, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.finish(&s.datos, gen); err != nil {
		return err
	}
	if err != nil {
		s.logger.Error("error al cargar datos", "table", table, "pagina", params.Pagina, "error", err)
		return err
	}

	datos := page.Data
	if datos == nil {
		datos = []model.Row{}
	}
	s.state.Datos = datos
	s.state.Total = page.Total
	s.state.Columnas = columnsOf(page)
	s.logger.Debug("datos cargados", "table", table, "rows", len(datos), "total", page.Total)
	return nil
}

func (s *Store) LoadModelResults(ctx context.Context) error {
	ctx, gen := s.begin(ctx, &s.results)

	raw, err := s.api.ModelResults(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.finish(&s.results, gen); err != nil {
		return err
	}
	if err != nil {
		s.logger.Error("error al cargar resultados del modelo", "error", err)
		return err
	}

	s.state.ModelResults = raw
	return nil
}

// begin cancels the in-flight request of sl, if any, and starts a new
// generation for it.
func (s *Store) begin(parent context.Context, sl *slot) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	defer s.mu.Unlock()
	if sl.cancel != nil {
		sl.cancel()
	}
	sl.gen++
	sl.cancel = cancel
	return ctx, sl.gen
}

// finish must be called with s.mu held.
func (s *Store) finish(sl *slot, gen uint64) error {
	if sl.gen != gen {
		return ErrSuperseded
	}
	sl.cancel()
	sl.cancel = nil
	return nil
}

// columnsOf prefers the column list sent by the server and falls back to the
// sorted keys of the first row. A page without rows has no columns.
func columnsOf(page *model.Page) []string {
	if len(page.Data) == 0 {
		return []string{}
	}
	if len(page.Columnas) > 0 {
		return slices.Clone(page.Columnas)
	}

	cols := make([]string, 0, len(page.Data[0]))
	for k := range page.Data[0] {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}
