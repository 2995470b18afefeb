package cli

import (
	"fmt"

	"licitaciones/backend/internal/service"

	"github.com/spf13/cobra"
)

func NewInitDBCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the tables and indexes if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := openDatabase(ctx, opts.Config.Database, true)
			if err != nil {
				return err
			}
			defer db.Disconnect()

			if err := service.InitSchema(ctx, db, opts.Logger); err != nil {
				return fmt.Errorf("init schema: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Esquema listo")
			return nil
		},
	}

	addDatabaseFlags(cmd)
	return cmd
}
