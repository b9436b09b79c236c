package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/storage"
	"github.com/VictorBenitezR/sistema-de-gestion/pkg/config"
)

// bootDB carga la configuración y abre la base (el esquema se aplica al abrir).
func bootDB(ctx context.Context) (*config.Config, *storage.Storage, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}

// manage migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Crea las tablas que falten",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := bootDB(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		fmt.Fprintf(cmd.OutOrStdout(), "Esquema al día (%s)\n", store.Driver)
		return nil
	},
}
