package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/microsoft/go-mssqldb/msdsn"
)

// openDB validates the connection string, opens the pool and pings the server.
func openDB(ctx context.Context, cfg *DBConfig) (*sql.DB, error) {
	if _, err := msdsn.Parse(cfg.DSN); err != nil {
		return nil, fmt.Errorf("invalid connection string for %s: %w", cfg.Name, err)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	logger.Debug("connected", "database", cfg.Name, "driver", cfg.Driver)
	return db, nil
}
