package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/GoRadius-Admin/GoRadius-Admin/internal/config"
	"github.com/GoRadius-Admin/GoRadius-Admin/internal/daemon"
	"github.com/GoRadius-Admin/GoRadius-Admin/internal/logger"
)

func init() { //nolint: gochecknoinits
	migrateCmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration directory")
	migrateCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(migrateCmd)
}

var (
	configPath string // Path to the configuration file

	cfg     config.Config
	err     error
	devMode bool

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the RADIUS schema and seed the initial organization",
		PreRun: func(_ *cobra.Command, _ []string) {
			if cfg, err = config.ReadConfig(configPath); err != nil {
				panic(err)
			}

			if devMode {
				cfg.DevMode = true
			}

			if err = logger.Init(cfg.Log); err != nil {
				panic(err)
			}
		},
		Run: func(_ *cobra.Command, _ []string) {
			daemon.New(&cfg)

			log.Info().Msg("schema migrated and seed applied")
		},
	}
)
