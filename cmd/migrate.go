package main

import (
	"github.com/jackgraver/simple-track/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		// OpenDB migrates on connect
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		logger.Info("migrations completed")
		return nil
	},
}
