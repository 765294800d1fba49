package cmd

import (
	"errors"
	"fmt"
	"strings"

	"schemer/internal/dialect"
	"schemer/internal/engine"
	"schemer/internal/migration"

	"github.com/spf13/viper"
)

// registry holds the migrations the commands work on.
var registry = migration.Default // nolint:gochecknoglobals

var errNoConnection = errors.New("no connection string: use --connection, database.dsn or an active entry in databases")

type DBConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Active bool   `mapstructure:"active"`
}

// MigrationSettings is the migrations section of the config file.
type MigrationSettings struct {
	DefaultSchema string
	HistorySchema string
	HistoryTable  string
	Ordering      string
}

// GetActiveDBConfig returns the currently active database configuration.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active database found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}

	if activeConfig.Driver == "" {
		activeConfig.Driver = viper.GetString("database.driver")
	}
	return activeConfig, nil
}

// ResolveDBConfig prefers database.dsn (flag, env or config) over the
// databases list.
func ResolveDBConfig() (*DBConfig, error) {
	if dsn := viper.GetString("database.dsn"); dsn != "" {
		return &DBConfig{
			Name:   "database",
			Driver: viper.GetString("database.driver"),
			DSN:    dsn,
			Active: true,
		}, nil
	}

	active, err := GetActiveDBConfig()
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", errNoConnection, err)
	}
	if active.DSN == "" {
		return nil, fmt.Errorf("database %q: %w", active.Name, errNoConnection)
	}
	return active, nil
}

// GetMigrationSettings reads key by key so that a partial migrations
// section still picks up the defaults of the keys it leaves out.
func GetMigrationSettings() (*MigrationSettings, error) {
	s := &MigrationSettings{
		DefaultSchema: viper.GetString("migrations.default_schema"),
		HistorySchema: viper.GetString("migrations.history_schema"),
		HistoryTable:  viper.GetString("migrations.history_table"),
		Ordering:      viper.GetString("migrations.ordering"),
	}
	if strings.TrimSpace(s.HistorySchema) == "" || strings.TrimSpace(s.HistoryTable) == "" {
		return nil, fmt.Errorf("migrations.history_schema and migrations.history_table must not be blank")
	}
	return s, nil
}

// NewCompiler builds the compiler from the configured dialect and
// migration settings.
func NewCompiler() (*engine.Compiler, error) {
	settings, err := GetMigrationSettings()
	if err != nil {
		return nil, err
	}

	d, err := dialect.GetDialect(viper.GetString("database.driver"))
	if err != nil {
		return nil, err
	}

	order, err := migration.ParseOrdering(settings.Ordering)
	if err != nil {
		return nil, err
	}

	return &engine.Compiler{
		Dialect: d,
		History: dialect.HistoryTable{
			Schema: settings.HistorySchema,
			Name:   settings.HistoryTable,
		},
		DefaultSchema: settings.DefaultSchema,
		Ordering:      order,
	}, nil
}

// registeredMigrations returns the migrations compiled into this binary.
func registeredMigrations() ([]migration.Definition, error) {
	defs, err := registry.Definitions()
	if err != nil {
		return nil, fmt.Errorf("invalid migration registry: %w", err)
	}
	return defs, nil
}
