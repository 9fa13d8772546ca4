package main

import (
	"errors"

	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if !cfg.Database.Enabled() {
				return errors.New("DB_HOST is not set")
			}

			db, err := repository.Open(cfg.Database, cfg.App)
			if err != nil {
				return err
			}
			if err := repository.Migrate(db, cfg.Features.Embeddings); err != nil {
				return err
			}

			log.Info("migration completed", zap.Bool("embeddings", cfg.Features.Embeddings))
			return nil
		},
	}
}
