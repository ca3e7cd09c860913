package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"invoice-financing/internal/adapter/repository/mysql"
	"invoice-financing/internal/infrastructure/cache"
	"invoice-financing/internal/usecase/financing"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	var (
		batchSize  int
		jsonOutput bool
		useLock    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one financing pass over all pending invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			cfg := financing.Config{BatchSize: a.cfg.FinancingBatchSize}
			if batchSize > 0 {
				cfg.BatchSize = batchSize
			}
			p := financing.Params{
				UoW:    mysql.NewGormUoW(a.db),
				Log:    a.log,
				Config: cfg,
			}
			if useLock {
				rdb, err := cache.OpenRedis(cmd.Context(), a.cfg.RedisAddr, a.cfg.RedisDB, cache.WithRedisLogger(a.log))
				if err != nil {
					return err
				}
				defer rdb.Close()
				p.Lock = cache.NewRunLock(rdb, cache.FinancingRunKey, cache.DefaultLockTTL)
			}

			summary, err := financing.NewUsecase(p).Finance(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSummary(summary))
			return nil
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Invoices per page (default FINANCING_BATCH_SIZE)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run summary as JSON")
	cmd.Flags().BoolVar(&useLock, "lock", false, "Serialise runs across processes with the redis run lock")
	return cmd
}
