package cmd

import (
	"fmt"

	"blog-api/cache"
	"blog-api/models"
	"blog-api/services"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "createadmin",
	Short: "Create an ADMIN account",
	Long: `Create a user with the ADMIN role. Self-registration cannot grant ADMIN,
so the first administrator is created here.

Example:
  blog-api createadmin --username root --email root@example.com --password s3cretpass`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(adminPassword) < 8 {
			return fmt.Errorf("password must be at least 8 characters")
		}

		cfg, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db)

		svc, err := services.New(db, cache.Noop{}, cfg, nil)
		if err != nil {
			return err
		}

		user, err := svc.Auth.CreateUser(adminUsername, adminEmail, adminPassword, models.RoleAdmin)
		if err != nil {
			return err
		}

		log.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("admin created")
		fmt.Fprintf(cmd.OutOrStdout(), "Admin %q created with id %d\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "Admin username")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password (min 8 characters)")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
