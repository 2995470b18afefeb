package browser

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"licitaciones/backend/internal/client"
	"licitaciones/backend/internal/model"
	"licitaciones/backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAPI struct {
	TablesFunc       func(ctx context.Context) ([]string, error)
	PageFunc         func(ctx context.Context, table string, p client.PageParams) (*model.Page, error)
	ModelResultsFunc func(ctx context.Context) (json.RawMessage, error)
}

func (m *mockAPI) Tables(ctx context.Context) ([]string, error) {
	return m.TablesFunc(ctx)
}

func (m *mockAPI) Page(ctx context.Context, table string, p client.PageParams) (*model.Page, error) {
	return m.PageFunc(ctx, table, p)
}

func (m *mockAPI) ModelResults(ctx context.Context) (json.RawMessage, error) {
	return m.ModelResultsFunc(ctx)
}

func TestNewStoreDefaults(t *testing.T) {
	st := NewStore(&mockAPI{}, nil).Snapshot()

	assert.Equal(t, 1, st.Pagina)
	assert.Equal(t, 5, st.Limite)
	assert.Equal(t, int64(0), st.Total)
	assert.Equal(t, "", st.Filtro)
	assert.NotNil(t, st.Datos)
	assert.Empty(t, st.Datos)
	assert.NotNil(t, st.Columnas)
	assert.Empty(t, st.Columnas)
}

func TestSetFilterResetsPage(t *testing.T) {
	s := NewStore(&mockAPI{}, nil)
	s.SetPage(4)
	s.SetLimit(20)
	require.Equal(t, 4, s.Snapshot().Pagina)

	s.SetFilter("EXP-7")

	st := s.Snapshot()
	assert.Equal(t, 1, st.Pagina)
	assert.Equal(t, 20, st.Limite)
	assert.Equal(t, "EXP-7", st.Filtro)
}

func TestLoadData(t *testing.T) {
	tests := []struct {
		name         string
		page         *model.Page
		wantColumnas []string
		wantRows     int
	}{
		{
			name: "server columns",
			page: &model.Page{
				Data:     []model.Row{{"identificador": "EXP-12", "link_licitacion": "x"}},
				Total:    12,
				Columnas: []string{"identificador", "link_licitacion"},
			},
			wantColumnas: []string{"identificador", "link_licitacion"},
			wantRows:     1,
		},
		{
			name: "first row keys when server sends none",
			page: &model.Page{
				Data:  []model.Row{{"link_licitacion": "x", "identificador": "EXP-1"}},
				Total: 1,
			},
			wantColumnas: []string{"identificador", "link_licitacion"},
			wantRows:     1,
		},
		{
			name:         "empty page",
			page:         &model.Page{Data: nil, Total: 0, Columnas: []string{"identificador"}},
			wantColumnas: []string{},
			wantRows:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got client.PageParams
			api := &mockAPI{
				PageFunc: func(ctx context.Context, table string, p client.PageParams) (*model.Page, error) {
					assert.Equal(t, "adjudicaciones", table)
					got = p
					return tt.page, nil
				},
			}
			s := NewStore(api, testutil.NewTestLogger(t))
			s.SetFilter("EXP-1")
			s.SetPage(3)

			require.NoError(t, s.LoadData(context.Background(), "adjudicaciones"))

			assert.Equal(t, client.PageParams{Pagina: 3, Limite: 5, Filtro: "EXP-1"}, got)
			st := s.Snapshot()
			assert.Len(t, st.Datos, tt.wantRows)
			assert.NotNil(t, st.Datos)
			assert.Equal(t, tt.wantColumnas, st.Columnas)
			assert.Equal(t, tt.page.Total, st.Total)
		})
	}
}

func TestLoadFailureKeepsState(t *testing.T) {
	fail := false
	api := &mockAPI{
		TablesFunc: func(ctx context.Context) ([]string, error) {
			if fail {
				return nil, errors.New("connection refused")
			}
			return []string{"adjudicaciones"}, nil
		},
		PageFunc: func(ctx context.Context, table string, p client.PageParams) (*model.Page, error) {
			if fail {
				return nil, &client.APIError{StatusCode: 500, Message: "no such table"}
			}
			return &model.Page{Data: []model.Row{{"identificador": "EXP-1"}}, Total: 1, Columnas: []string{"identificador"}}, nil
		},
		ModelResultsFunc: func(ctx context.Context) (json.RawMessage, error) {
			if fail {
				return nil, errors.New("timeout")
			}
			return json.RawMessage(`{"f1":0.8}`), nil
		},
	}
	s := NewStore(api, testutil.NewTestLogger(t))
	ctx := context.Background()
	require.NoError(t, s.LoadTables(ctx))
	require.NoError(t, s.LoadData(ctx, "adjudicaciones"))
	require.NoError(t, s.LoadModelResults(ctx))
	before := s.Snapshot()

	fail = true
	assert.Error(t, s.LoadTables(ctx))
	assert.Error(t, s.LoadData(ctx, "adjudicaciones"))
	assert.Error(t, s.LoadModelResults(ctx))

	assert.Equal(t, before, s.Snapshot())
}

func TestLoadDataSupersedesInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var (
		mu    sync.Mutex
		calls int
	)
	api := &mockAPI{
		PageFunc: func(ctx context.Context, table string, p client.PageParams) (*model.Page, error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()

			if n == 1 {
				close(entered)
				<-release
				return &model.Page{Data: []model.Row{{"identificador": "stale"}}, Total: 99}, nil
			}
			return &model.Page{Data: []model.Row{{"identificador": "fresh"}}, Total: 1}, nil
		},
	}
	s := NewStore(api, testutil.NewTestLogger(t))

	firstErr := make(chan error, 1)
	go func() {
		firstErr <- s.LoadData(context.Background(), "adjudicaciones")
	}()
	<-entered

	require.NoError(t, s.LoadData(context.Background(), "modificados"))
	close(release)

	assert.ErrorIs(t, <-firstErr, ErrSuperseded)
	st := s.Snapshot()
	assert.Equal(t, "fresh", st.Datos[0]["identificador"])
	assert.Equal(t, int64(1), st.Total)
}

func TestLoadDataCancelsPreviousContext(t *testing.T) {
	entered := make(chan struct{})
	var once sync.Once
	api := &mockAPI{
		PageFunc: func(ctx context.Context, table string, p client.PageParams) (*model.Page, error) {
			first := false
			once.Do(func() { first = true })
			if first {
				close(entered)
				<-ctx.Done()
				return nil, ctx.Err()
			}
			return &model.Page{Data: []model.Row{}, Total: 0}, nil
		},
	}
	s := NewStore(api, nil)

	firstErr := make(chan error, 1)
	go func() {
		firstErr <- s.LoadData(context.Background(), "adjudicaciones")
	}()
	<-entered

	require.NoError(t, s.LoadData(context.Background(), "adjudicaciones"))
	assert.ErrorIs(t, <-firstErr, ErrSuperseded)
}
