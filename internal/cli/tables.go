package cli

import (
	"licitaciones/backend/internal/service"

	"github.com/spf13/cobra"
)

func NewTablesCommand(opts *RootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List the tables available in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := openDatabase(ctx, opts.Config.Database, false)
			if err != nil {
				return err
			}
			defer db.Disconnect()

			svc := service.NewQueryService(db, opts.Logger)
			var tables []string
			if all {
				tables, err = svc.ListAllTables(ctx)
			} else {
				tables, err = svc.ListTables(ctx)
			}
			if err != nil {
				return err
			}

			renderTables(cmd.OutOrStdout(), tables)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include tables outside the browsable set")
	addDatabaseFlags(cmd)
	return cmd
}
