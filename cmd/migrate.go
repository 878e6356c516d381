package cmd

import (
	"blog-api/migration"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Bring the database schema up to date.

Postgres runs the embedded goose migrations; sqlite is auto-migrated from the
models.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db)

		return migration.Run(db)
	},
}
