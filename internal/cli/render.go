package cli

import (
	"fmt"
	"io"

	"licitaciones/backend/internal/browser"

	"github.com/jedib0t/go-pretty/v6/table"
)

func renderTables(w io.Writer, tables []string) {
	if len(tables) == 0 {
		_, _ = fmt.Fprintln(w, "(sin tablas)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"tabla"})
	for _, name := range tables {
		t.AppendRow(table.Row{name})
	}
	t.Render()
}

func renderPage(w io.Writer, tabla string, st browser.State) {
	if len(st.Datos) == 0 {
		_, _ = fmt.Fprintf(w, "%s: (0 filas)\n", tabla)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(tabla)

	header := make(table.Row, len(st.Columnas))
	for i, col := range st.Columnas {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, row := range st.Datos {
		r := make(table.Row, len(st.Columnas))
		for i, col := range st.Columnas {
			r[i] = formatCell(row[col])
		}
		t.AppendRow(r)
	}

	t.Render()

	_, _ = fmt.Fprintf(w, "página %d de %d (%d registros)\n", st.Pagina, pageCount(st.Total, st.Limite), st.Total)
}

func formatCell(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprint(v)
}

func pageCount(total int64, limite int) int64 {
	if limite <= 0 || total <= 0 {
		return 1
	}
	return (total + int64(limite) - 1) / int64(limite)
}
