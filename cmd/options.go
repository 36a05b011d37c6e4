package cmd

import (
	"context"

	"github.com/grovetools/recfix/config"
	"github.com/grovetools/recfix/internal/store"
	"github.com/spf13/cobra"
)

// storeFlags are the connection flags shared by every command.
type storeFlags struct {
	configPath string
	backend    string
	region     string
	table      string
	endpoint   string
	path       string
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to a recfix YAML config file")
	cmd.Flags().StringVar(&f.backend, "backend", "", "Store backend ('dynamodb' or 'file')")
	cmd.Flags().StringVar(&f.region, "region", "", "AWS region of the table")
	cmd.Flags().StringVar(&f.table, "table", "", "DynamoDB table name")
	cmd.Flags().StringVar(&f.endpoint, "endpoint", "", "DynamoDB endpoint override (e.g. DynamoDB Local)")
	cmd.Flags().StringVar(&f.path, "path", "", "JSON export used by the file backend")
}

// load resolves the configuration with flags taking precedence.
func (f *storeFlags) load() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}

	if f.backend != "" {
		cfg.Store.Backend = f.backend
	}
	if f.region != "" {
		cfg.Store.Region = f.region
	}
	if f.table != "" {
		cfg.Store.Table = f.table
	}
	if f.endpoint != "" {
		cfg.Store.Endpoint = f.endpoint
	}
	if f.path != "" {
		cfg.Store.Path = f.path
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	return store.Open(ctx, store.Options{
		Backend:  cfg.Store.Backend,
		Region:   cfg.Store.Region,
		Table:    cfg.Store.Table,
		Endpoint: cfg.Store.Endpoint,
		Path:     cfg.Store.Path,
	})
}

// boolFlag returns the flag value when it was given on the command line and
// the configured value otherwise, so --unique-ids=false can switch off a
// config setting.
func boolFlag(cmd *cobra.Command, name string, flagValue, configured bool) bool {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configured
}
