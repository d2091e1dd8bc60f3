package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dwikikusuma/printshop/pkg/config"
	"github.com/dwikikusuma/printshop/pkg/sqldb"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the order and address tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := sqldb.Open(cmd.Context(), sqldb.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
			if err != nil {
				return err
			}
			defer db.Close()

			if err := sqldb.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s database\n", cfg.DBDriver)
			return nil
		},
	}
}
