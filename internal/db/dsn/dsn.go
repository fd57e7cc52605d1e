// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/config"
)

// Supported gorm engines.
const (
	EngineSQLite   = "sqlite"
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
)

// ErrUnknownEngine is returned for an unsupported GormEngine value.
var ErrUnknownEngine = errors.New("unknown gorm engine")

// Create builds the MySQL Data Source Name from the configuration.
func Create(dbCfg *config.Config) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.Name,
		dbCfg.DB.Extras,
	)

	return out
}

// CreatePostgres builds a key/value style PostgreSQL DSN from the configuration.
func CreatePostgres(dbCfg *config.Config) string {
	out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Name,
	)

	if dbCfg.DB.Extras != "" {
		out += " " + dbCfg.DB.Extras
	}

	return out
}

// CreateSQLite returns the database file name, with extras appended as query parameters.
func CreateSQLite(dbCfg *config.Config) string {
	if dbCfg.DB.Extras == "" {
		return dbCfg.DB.Name
	}

	return dbCfg.DB.Name + "?" + dbCfg.DB.Extras
}

// Dialector returns the gorm dialector for the configured engine.
func Dialector(dbCfg *config.Config) (gorm.Dialector, error) {
	switch strings.ToLower(dbCfg.DB.GormEngine) {
	case "", EngineSQLite:
		return sqlite.Open(CreateSQLite(dbCfg)), nil
	case EngineMySQL:
		return mysql.Open(Create(dbCfg)), nil
	case EnginePostgres:
		return postgres.Open(CreatePostgres(dbCfg)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, dbCfg.DB.GormEngine)
	}
}
