package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"licitaciones/backend/internal/browser"
	"licitaciones/backend/internal/client"
	"licitaciones/backend/internal/model"

	"github.com/spf13/cobra"
)

// NewBrowseCommand fetches one page of a table from a running server. Without
// a table it lists the tables the server offers.
func NewBrowseCommand(opts *RootOptions) *cobra.Command {
	var (
		pagina int
		limite int
		filtro string
	)

	cmd := &cobra.Command{
		Use:   "browse [tabla]",
		Short: "Browse a table through the HTTP API",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			api := client.New(opts.Config.Client.BaseURL, opts.Config.Client.Timeout)
			store := browser.NewStore(api, opts.Logger)

			if len(args) == 0 {
				if err := store.LoadTables(ctx); err != nil {
					return err
				}
				renderTables(cmd.OutOrStdout(), store.Snapshot().Tablas)
				return nil
			}

			store.SetLimit(limite)
			store.SetFilter(filtro)
			store.SetPage(pagina)
			if err := store.LoadData(ctx, args[0]); err != nil {
				return err
			}

			renderPage(cmd.OutOrStdout(), args[0], store.Snapshot())
			return nil
		},
	}

	cmd.Flags().IntVar(&pagina, "pagina", model.DefaultPagina, "page number (1-based)")
	cmd.Flags().IntVar(&limite, "limite", model.DefaultLimite, "rows per page")
	cmd.Flags().StringVar(&filtro, "filtro", "", "exact identificador to filter by")
	addClientFlags(cmd)
	return cmd
}

func NewModelResultsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model-results",
		Short: "Print the model results document served by the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api := client.New(opts.Config.Client.BaseURL, opts.Config.Client.Timeout)
			store := browser.NewStore(api, opts.Logger)
			if err := store.LoadModelResults(cmd.Context()); err != nil {
				return err
			}

			var out bytes.Buffer
			if err := json.Indent(&out, store.Snapshot().ModelResults, "", "  "); err != nil {
				return fmt.Errorf("format model results: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return nil
		},
	}

	addClientFlags(cmd)
	return cmd
}
