package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"design-dojo/internal/config"
	"design-dojo/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/reflectx"
	_ "github.com/sijms/go-ora/v2" // registers "oracle"
	"go.uber.org/zap"
)

const (
	DriverOracle   = "oracle"
	DriverPostgres = "postgres"
)

func init() {
	// go-ora binds :1, :2 placeholders; sqlx does not know the driver name by default.
	sqlx.BindDriver("oracle", sqlx.NAMED)
}

// SQLDriverName maps the configured driver to the database/sql driver name.
func SQLDriverName(driver string) string {
	if driver == DriverPostgres {
		return "pgx"
	}
	return "oracle"
}

// Connect opens and pings the configured database. Models carry upper-case
// db tags; the mapper is tuned so they match each engine's column casing.
func Connect(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	driverName := SQLDriverName(cfg.DB.Driver)

	db, err := sqlx.Open(driverName, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DB.Driver, err)
	}
	ConfigureMapper(db, cfg.DB.Driver)

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.DB.Driver, err)
	}

	logger.Get().Info("Connected to database",
		zap.String("driver", cfg.DB.Driver),
		zap.String("host", cfg.DB.Host),
		zap.Int("port", cfg.DB.Port))
	return db, nil
}

// ConfigureMapper sets the struct mapper for the engine's column casing.
func ConfigureMapper(db *sqlx.DB, driver string) {
	if driver == DriverPostgres {
		db.Mapper = reflectx.NewMapperTagFunc("db", strings.ToLower, strings.ToLower)
		return
	}
	db.Mapper = reflectx.NewMapperTagFunc("db", strings.ToUpper, strings.ToUpper)
}
