package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"invoice-financing/internal/infrastructure/db"
)

func newMigrateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := db.Migrate(a.db); err != nil {
				return err
			}
			a.log.Info("schema migrated", zap.String("driver", a.cfg.DBDriver))
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("schema up to date"))
			return nil
		},
	}
}
