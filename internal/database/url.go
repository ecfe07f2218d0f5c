package database

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"orm-lessons/internal/config"
)

// URL is the connection descriptor assembled from discrete config fields.
type URL struct {
	Driver   string
	Username string
	Password string
	Host     string
	Port     int
	Database string
	SSLMode  string
}

func URLFromConfig(cfg *config.Config) URL {
	return URL{
		Driver:   cfg.DBDriver,
		Username: cfg.DBUser,
		Password: cfg.DBPassword,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Database: cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}
}

// IsPostgres reports whether the driver belongs to the postgres family.
func (u URL) IsPostgres() bool {
	switch strings.ToLower(u.Driver) {
	case "postgres", "postgresql", "pgx":
		return true
	}
	return false
}

// String renders the descriptor with the password masked.
func (u URL) String() string {
	return u.Render(true)
}

func (u URL) Render(hidePassword bool) string {
	userInfo := url.QueryEscape(u.Username)
	switch {
	case u.Password == "":
	case hidePassword:
		userInfo += ":***"
	default:
		userInfo += ":" + url.QueryEscape(u.Password)
	}

	s := fmt.Sprintf("postgres://%s@%s/%s", userInfo, net.JoinHostPort(u.Host, strconv.Itoa(u.Port)), url.PathEscape(u.Database))
	if u.SSLMode != "" {
		s += "?sslmode=" + url.QueryEscape(u.SSLMode)
	}
	return s
}

// DSN returns the key/value form understood by pgx.
func (u URL) DSN() string {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d TimeZone=UTC connect_timeout=10",
		quoteDSN(u.Host), quoteDSN(u.Username), quoteDSN(u.Password), quoteDSN(u.Database), u.Port)
	if u.SSLMode != "" {
		dsn += " sslmode=" + u.SSLMode
	}
	return dsn
}

func quoteDSN(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}
