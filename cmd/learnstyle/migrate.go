package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
	"github.com/saulo-duarte/learnstyle-lambda/internal/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Load()

		db, err := config.Connect(cmd.Context(), settings.DatabaseDSN, settings.Env)
		if err != nil {
			return err
		}
		defer closeDB(db)

		if err := migrations.Run(db); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed [subject...]",
	Short: "Insert reference subjects (defaults when none are given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Load()

		db, err := config.Connect(cmd.Context(), settings.DatabaseDSN, settings.Env)
		if err != nil {
			return err
		}
		defer closeDB(db)

		names := args
		if len(names) == 0 {
			names = migrations.DefaultSubjects
		}
		created, err := migrations.Seed(db, names)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d subjects created, %d already present\n", created, len(names)-created)
		return nil
	},
}

func closeDB(db *gorm.DB) {
	if err := config.Close(db); err != nil {
		config.Logger().WithError(err).Warn("Erro ao fechar conexão com o banco")
	}
}
