package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"invoice-financing/internal/adapter/repository/mysql"
	"invoice-financing/internal/clock"
	"invoice-financing/internal/seed"
)

func newSeedCmd(flags *rootFlags) *cobra.Command {
	var (
		file           string
		backlog        int
		backlogIssuer  string
		backlogObligor string
		backlogDays    int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference issuers, obligors, financiers and invoices",
		Long: "Apply a YAML fixture (the embedded reference data unless --file is given). " +
			"Master data is matched by name, so re-seeding only appends invoices.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := seed.Default()
			if file != "" {
				var err error
				if f, err = seed.LoadFile(file); err != nil {
					return err
				}
			}

			a, err := openApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			u := mysql.NewGormUoW(a.db)
			today := clock.Date(clock.SystemClock{}.Now())
			res, err := seed.Apply(cmd.Context(), u, f, today)
			if err != nil {
				return err
			}
			a.log.Info("seed applied",
				zap.Int("issuers", res.Issuers),
				zap.Int("obligors", res.Obligors),
				zap.Int("financiers", res.Financiers),
				zap.Int("invoices", res.Invoices))

			if backlog > 0 {
				maturity := today.AddDate(0, 0, backlogDays)
				if err := seed.ApplyBacklog(cmd.Context(), u, backlogIssuer, backlogObligor, backlog, maturity); err != nil {
					return fmt.Errorf("backlog: %w", err)
				}
				res.Invoices += backlog
			}

			fmt.Fprint(cmd.OutOrStdout(), renderSeed(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML fixture to apply instead of the embedded one")
	cmd.Flags().IntVar(&backlog, "backlog", 0, "Also insert this many pending invoices (load testing)")
	cmd.Flags().StringVar(&backlogIssuer, "backlog-issuer", "Coffee Beans LLC", "Issuer name for backlog invoices")
	cmd.Flags().StringVar(&backlogObligor, "backlog-obligor", "Chocolate Factory", "Obligor name for backlog invoices")
	cmd.Flags().IntVar(&backlogDays, "backlog-maturity-days", 30, "Backlog maturity, in days from today")
	return cmd
}
