package main

import (
	"fmt"
	"os"

	"realty-hub/app/db"
	"realty-hub/app/models"
	"realty-hub/app/services"
	"realty-hub/config"
	"realty-hub/global"
	"realty-hub/initialize"
	"realty-hub/server"

	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "realty-hub",
		Short: "Real-estate listing API",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initialize.Build(configPath)
			if err != nil {
				return err
			}
			global.Logger.Info().Str("host", app.Cfg.HTTP.Host).Int("port", app.Cfg.HTTP.Port).Msg("listening")
			return server.StartHTTPServer(app.Cfg.HTTP.Host, app.Cfg.HTTP.Port, app.Router)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run schema migration and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			gdb, err := db.Connect(db.Config{Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name})
			if err != nil {
				return err
			}
			return initialize.Migrate(gdb)
		},
	}

	var keyEmail, keyType string
	genkeyCmd := &cobra.Command{
		Use:   "genkey",
		Short: "Generate a product key for out-of-band distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			if keyEmail == "" || !models.ValidRole(keyType) {
				return fmt.Errorf("--email and a valid --type are required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			key, err := services.ProductKey(keyEmail, keyType, cfg.ProductKeySecret)
			if err != nil {
				return err
			}
			fmt.Println(key)
			return nil
		},
	}
	genkeyCmd.Flags().StringVar(&keyEmail, "email", "", "prospective user's email")
	genkeyCmd.Flags().StringVar(&keyType, "type", models.RoleRealtor, "user type the key unlocks")

	root.AddCommand(serveCmd, migrateCmd, genkeyCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
