package financing

import "invoice-financing/internal/domain/financier"

// Config controls a financing run.
type Config struct {
	// BatchSize is the number of pending invoices fetched per page
	BatchSize int
}

func DefaultConfig() Config {
	return Config{BatchSize: financier.DefaultBatchSize}
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultConfig().BatchSize
	}
	return c
}
