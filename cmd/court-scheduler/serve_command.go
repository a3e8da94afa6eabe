package main

import (
	"github.com/JustJay7/court-scheduler/internal/server"
	"github.com/spf13/cobra"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.config()
			if err != nil {
				return err
			}
			log, err := ctx.logger()
			if err != nil {
				return err
			}
			db, err := ctx.database()
			if err != nil {
				return err
			}
			caseCache, err := ctx.caseCache()
			if err != nil {
				return err
			}

			log.Info("Starting Court Scheduler",
				"host", cfg.Host,
				"port", cfg.Port,
				"database", cfg.DatabasePath,
			)

			return server.New(cfg, db, caseCache, log).Run()
		},
	}
}

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := ctx.logger()
			if err != nil {
				return err
			}
			// Initialize migrates on open.
			if _, err := ctx.database(); err != nil {
				return err
			}
			log.Info("Database migrations completed successfully")
			return nil
		},
	}
}
