package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTable(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Table
		wantOK bool
	}{
		{name: "adjudicaciones", input: "adjudicaciones", want: Adjudicaciones, wantOK: true},
		{name: "criterios", input: "criterios_adjudicacion", want: CriteriosAdjudicacion, wantOK: true},
		{name: "modificados", input: "modificados", want: Modificados, wantOK: true},
		{name: "resultados", input: "resultados_licitaciones", want: ResultadosLicitaciones, wantOK: true},
		{name: "unknown", input: "unknown_table", wantOK: false},
		{name: "case sensitive", input: "Adjudicaciones", wantOK: false},
		{name: "injection attempt", input: "adjudicaciones; DROP TABLE modificados", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseTable(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAllowedTablesReturnsCopy(t *testing.T) {
	tables := AllowedTables()
	assert.Len(t, tables, 4)

	tables[0] = "tampered"
	assert.Equal(t, Adjudicaciones, AllowedTables()[0])
}

func TestPageQueryOffset(t *testing.T) {
	tests := []struct {
		name       string
		pagina     int
		limite     int
		wantOffset int
		wantOK     bool
	}{
		{name: "first page", pagina: 1, limite: 5, wantOffset: 0, wantOK: true},
		{name: "third page", pagina: 3, limite: 5, wantOffset: 10, wantOK: true},
		{name: "huge limit on first page", pagina: 1, limite: math.MaxInt, wantOffset: 0, wantOK: true},
		{name: "largest exact offset", pagina: math.MaxInt/5 + 1, limite: 5, wantOffset: math.MaxInt / 5 * 5, wantOK: true},
		{name: "page overflows", pagina: math.MaxInt/5 + 2, limite: 5, wantOK: false},
		{name: "limit overflows", pagina: 3, limite: math.MaxInt, wantOK: false},
		{name: "both huge", pagina: math.MaxInt, limite: 2, wantOK: false},
		{name: "zero page", pagina: 0, limite: 5, wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			offset, ok := PageQuery{Pagina: tc.pagina, Limite: tc.limite}.Offset()
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantOffset, offset)
			assert.GreaterOrEqual(t, offset, 0)
		})
	}
}

func TestPageQueryHasFilter(t *testing.T) {
	assert.True(t, PageQuery{Filtro: "x"}.HasFilter())
	assert.False(t, PageQuery{}.HasFilter())
}
