package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validCfg returns a fully-valid Config for mutation testing.
func validCfg() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver: "mysql",
			Host:   "localhost",
			Port:   3306,
			Name:   "pokedex_db",
			User:   "root",
			Table:  "pokemones",
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		GUI:     GUIConfig{Width: 720, Height: 560},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, "database.driver"},
		{"bad table", func(c *Config) { c.Database.Table = "pokemones; DROP" }, "database.table"},
		{"empty host", func(c *Config) { c.Database.Host = "" }, "database.host"},
		{"empty name", func(c *Config) { c.Database.Name = "" }, "database.name"},
		{"port zero", func(c *Config) { c.Database.Port = 0 }, "database.port"},
		{"port too large", func(c *Config) { c.Database.Port = 70000 }, "database.port"},
		{"dsn skips host checks", func(c *Config) {
			c.Database.Host = ""
			c.Database.DSN = "root@tcp(db:3306)/pokedex_db"
		}, ""},
		{"sqlite needs path", func(c *Config) { c.Database.Driver = "sqlite" }, "database.path"},
		{"sqlite with path", func(c *Config) {
			c.Database.Driver = "sqlite"
			c.Database.Path = "pokedex.db"
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "text" }, "logging.format"},
		{"zero window", func(c *Config) { c.GUI.Width = 0 }, "gui.width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validCfg()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, DefaultMySQLPort, cfg.Database.Port)
	assert.Equal(t, DefaultTable, cfg.Database.Table)
	assert.Equal(t, "pokedex_db", cfg.Database.Name)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pokedex.yaml")
	content := strings.Join([]string{
		"database:",
		"  driver: pgx",
		"  host: db.internal",
		"  user: ash",
		"  password: pikachu",
		"  table: kanto",
		"logging:",
		"  format: json",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("POKEDEX_LOGGING_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, DefaultPostgresPort, cfg.Database.Port)
	assert.Equal(t, "kanto", cfg.Database.Table)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("POKEDEX_DATABASE_DRIVER", "oracle")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.driver")
}

func TestDataSourceName(t *testing.T) {
	t.Run("mysql", func(t *testing.T) {
		c := validCfg().Database
		c.Password = "s3cret"
		dsn := c.DataSourceName()

		parsed, err := mysql.ParseDSN(dsn)
		require.NoError(t, err)
		assert.Equal(t, "root", parsed.User)
		assert.Equal(t, "s3cret", parsed.Passwd)
		assert.Equal(t, "localhost:3306", parsed.Addr)
		assert.Equal(t, "pokedex_db", parsed.DBName)
		assert.True(t, parsed.ClientFoundRows)
	})

	t.Run("postgres", func(t *testing.T) {
		c := DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, Name: "pokedex_db", User: "ash", Password: "pika"}
		assert.Equal(t, "postgres://ash:pika@db:5432/pokedex_db", c.DataSourceName())
	})

	t.Run("sqlite", func(t *testing.T) {
		c := DatabaseConfig{Driver: "sqlite", Path: "/var/lib/pokedex.db"}
		assert.Equal(t, "/var/lib/pokedex.db", c.DataSourceName())
	})

	t.Run("explicit dsn wins", func(t *testing.T) {
		c := DatabaseConfig{Driver: "mysql", DSN: "u@tcp(h:1)/d", Host: "ignored"}
		assert.Equal(t, "u@tcp(h:1)/d", c.DataSourceName())
	})
}

func TestDatabaseConfig_StringMasksPassword(t *testing.T) {
	c := validCfg().Database
	c.Password = "supersecret"
	s := c.String()
	assert.NotContains(t, s, "supersecret")
	assert.Contains(t, s, "Password:***,")
	assert.NotContains(t, s, "su****et")

	c.Password = "pw"
	assert.Contains(t, c.String(), "Password:***,")

	c.Driver = "pgx"
	c.DSN = "postgres://ash:supersecret@db:5432/pokedex_db"
	assert.NotContains(t, c.String(), "supersecret")

	c.Driver = "mysql"
	c.DSN = "ash:supersecret@tcp(db:3306)/pokedex_db"
	assert.NotContains(t, c.String(), "supersecret")
}
