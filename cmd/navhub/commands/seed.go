package commands

import (
	"github.com/navhub-dev/navhub/db"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account and default search engines",
	Long: `Create the admin account (admin.username / admin.password) and the default
search engines. Existing rows are left untouched, so seeding is safe to repeat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		if err := db.Seed(cmd.Context(), conn, cfg.Admin.Username, cfg.Admin.Password, log); err != nil {
			return err
		}

		cmd.Println("Seed completed")
		return nil
	},
}
