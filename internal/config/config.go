package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"

	"github.com/ajitpratap0/pokedex/internal/store"
)

const (
	// DefaultTable is the catalog table used when none is configured.
	DefaultTable = "pokemones"

	// DefaultMySQLPort is the port assumed for the mysql driver.
	DefaultMySQLPort = 3306

	// DefaultPostgresPort is the port assumed for the pgx and postgres drivers.
	DefaultPostgresPort = 5432
)

// Config holds all configuration for pokedex.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	GUI      GUIConfig      `mapstructure:"gui"`
}

// DatabaseConfig holds catalog database connection settings.
// DSN, when set, wins over the individual fields.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Path     string `mapstructure:"path"`
	Table    string `mapstructure:"table"`
}

// String returns a safe representation of DatabaseConfig with the password masked.
func (c DatabaseConfig) String() string {
	dsn := c.DSN
	if dsn != "" {
		dsn = maskDSN(c.Driver, dsn)
	}
	return fmt.Sprintf("DatabaseConfig{Driver:%s, DSN:%s, Host:%s, Port:%d, Name:%s, User:%s, Password:%s, Path:%s, Table:%s}",
		c.Driver, dsn, c.Host, c.Port, c.Name, c.User, maskSecret(c.Password), c.Path, c.Table)
}

// maskSecret hides a non-empty secret entirely.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}

// maskDSN hides the password embedded in a DSN. Unparseable DSNs are masked whole.
func maskDSN(driver, dsn string) string {
	switch driver {
	case store.DriverMySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "***"
		}
		if cfg.Passwd != "" {
			cfg.Passwd = "***"
		}
		return cfg.FormatDSN()
	case store.DriverPgx, store.DriverPq:
		u, err := url.Parse(dsn)
		if err != nil || u.Scheme == "" {
			return "***"
		}
		return u.Redacted()
	default:
		return dsn
	}
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GUIConfig holds desktop window settings.
type GUIConfig struct {
	Width  float32 `mapstructure:"width"`
	Height float32 `mapstructure:"height"`
}

// Load reads configuration from file and environment variables.
// An empty path searches ~/.pokedex and the working directory for config.yaml.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("database.driver", store.DriverMySQL)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 0)
	v.SetDefault("database.name", "pokedex_db")
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.path", "pokedex.db")
	v.SetDefault("database.table", DefaultTable)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("gui.width", 720)
	v.SetDefault("gui.height", 560)

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(homeDir(), ".pokedex"))
		v.AddConfigPath(".")
	}

	// Environment variables: POKEDEX_DATABASE_DRIVER, POKEDEX_LOGGING_LEVEL, ...
	v.SetEnvPrefix("POKEDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.Database.Port == 0 {
		cfg.Database.Port = defaultPort(cfg.Database.Driver)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func defaultPort(driver string) int {
	switch driver {
	case store.DriverPgx, store.DriverPq:
		return DefaultPostgresPort
	case store.DriverMySQL:
		return DefaultMySQLPort
	default:
		return 0
	}
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	db := c.Database
	if _, err := store.DialectForDriver(db.Driver); err != nil {
		return fmt.Errorf("database.driver must be one of %s", strings.Join(store.ValidDrivers, ", "))
	}
	if !store.ValidTableName(db.Table) {
		return fmt.Errorf("database.table %q is not a valid identifier", db.Table)
	}
	if db.DSN == "" {
		switch db.Driver {
		case store.DriverSQLite:
			if db.Path == "" {
				return fmt.Errorf("database.path must not be empty for the sqlite driver")
			}
		default:
			if db.Host == "" {
				return fmt.Errorf("database.host must not be empty")
			}
			if db.Name == "" {
				return fmt.Errorf("database.name must not be empty")
			}
			if db.Port <= 0 || db.Port > 65535 {
				return fmt.Errorf("database.port must be between 1 and 65535")
			}
		}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	if c.GUI.Width <= 0 || c.GUI.Height <= 0 {
		return fmt.Errorf("gui.width and gui.height must be greater than 0")
	}
	return nil
}

// DataSourceName returns the DSN to hand to sql.Open for the configured driver.
func (c DatabaseConfig) DataSourceName() string {
	if c.DSN != "" {
		return c.DSN
	}

	switch c.Driver {
	case store.DriverSQLite:
		return c.Path
	case store.DriverPgx, store.DriverPq:
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
			Path:   "/" + c.Name,
		}
		if c.User != "" {
			if c.Password != "" {
				u.User = url.UserPassword(c.User, c.Password)
			} else {
				u.User = url.User(c.User)
			}
		}
		return u.String()
	default:
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
		mc.DBName = c.Name
		mc.ClientFoundRows = true
		return mc.FormatDSN()
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
