package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"schemer/internal/engine"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	connection string
	verbose    bool

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
)

var RootCmd = &cobra.Command{
	Use:   "schemer",
	Short: "Compile schema migrations into an idempotent SQL Server script",
	Long: `
          _
  ___  __| |__   ___ _ __ ___   ___ _ __
 / __|/ __| '_ \ / _ \ '_ ' _ \ / _ \ '__|
 \__ \ (__| | | |  __/ | | | | |  __/ |
 |___/\___|_| |_|\___|_| |_| |_|\___|_|

SCHEMER - migrations to one transactional T-SQL script
`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./schemer.yaml)")
	RootCmd.PersistentFlags().StringVar(&connection, "connection", "", "SQL Server connection string")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	viper.BindPFlag("database.dsn", RootCmd.PersistentFlags().Lookup("connection"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("database.driver", "sqlserver")
	viper.SetDefault("migrations.default_schema", engine.DefaultSchema)
	viper.SetDefault("migrations.history_schema", engine.DefaultSchema)
	viper.SetDefault("migrations.history_table", engine.DefaultHistoryTable)
	viper.SetDefault("migrations.ordering", "natural")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Executable directory first, then the working directory.
		if ex, err := os.Executable(); err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}
		viper.AddConfigPath(".")

		viper.SetConfigName("schemer")
		viper.SetConfigType("yaml")
	}

	// SCHEMER_DATABASE_DSN, SCHEMER_MIGRATIONS_DEFAULT_SCHEMA, ...
	viper.SetEnvPrefix("SCHEMER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}
