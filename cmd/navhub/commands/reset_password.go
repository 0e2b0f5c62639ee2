package commands

import (
	"errors"
	"fmt"

	"github.com/navhub-dev/navhub/internal/models"
	"github.com/navhub-dev/navhub/internal/repository"
	"github.com/navhub-dev/navhub/internal/service"
	"github.com/spf13/cobra"
)

var (
	resetUsername string
	resetPassword string
)

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password for a user without the current one",
	Example: `  navhub reset-password --password 'n3w-secret'
  navhub reset-password --username admin --password 'n3w-secret'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if resetPassword == "" {
			return errors.New("--password is required")
		}

		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		conn, closeDB, err := openDatabase(cfg, log)
		if err != nil {
			return err
		}
		defer closeDB()

		svc := service.NewAuthService(repository.NewUserRepository(conn, log), nil, log)

		if err := svc.ResetPassword(cmd.Context(), resetUsername, resetPassword); err != nil {
			if errors.Is(err, models.ErrUserNotFound) {
				return fmt.Errorf("user %q does not exist", resetUsername)
			}
			return err
		}

		cmd.Printf("Password for %s updated\n", resetUsername)
		return nil
	},
}

func init() {
	resetPasswordCmd.Flags().StringVar(&resetUsername, "username", "admin", "account to update")
	resetPasswordCmd.Flags().StringVar(&resetPassword, "password", "", "new password")
}
