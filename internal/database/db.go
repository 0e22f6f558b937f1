// Package database holds the MySQL deployment pieces: connection setup and
// the retrying repository decorators wrapped around the theme and card
// stores. The file-backed store in internal/storage never touches this
// package.
package database

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/lazycat-apps/milka/internal/config"
)

// mysqlConfig translates the Milka database settings into a driver config.
// ParseTime keeps DATETIME columns as time.Time, and MultiStatements lets
// the migrate command run a whole migration file in one ExecContext.
func mysqlConfig(cfg config.DatabaseConfig) *mysql.Config {
	c := mysql.NewConfig()
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	c.DBName = cfg.Database
	c.User = cfg.Username
	c.Passwd = cfg.Password
	c.ParseTime = true
	c.MultiStatements = true
	if cfg.TLS {
		c.TLSConfig = "true"
	}
	if len(cfg.Params) > 0 {
		c.Params = cfg.Params
	}
	return c
}

// Open connects to MySQL and applies the configured pool limits. Zero
// values leave the driver defaults in place.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", mysqlConfig(cfg).FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open() > %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}
	return db, nil
}
