package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	TypeMySQL    = "mysql"
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

func Dialect(cfg Config) (gorm.Dialector, error) {
	switch cfg.Type {
	case TypeMySQL:
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Name,
		)), nil
	case TypePostgres:
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Host,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.Port,
			cfg.SSLMode,
		)), nil
	case TypeSQLite:
		return sqlite.Open(sqlitePath(cfg.Name)), nil
	default:
		return nil, fmt.Errorf("unsupported %s type", cfg.Type)
	}
}

// sqlitePath maps the database name to a file, keeping in-memory DSNs as-is.
func sqlitePath(name string) string {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "sheetstub.db"
	case strings.HasPrefix(name, "file:"), name == ":memory:", strings.HasSuffix(name, ".db"):
		return name
	default:
		return name + ".db"
	}
}
