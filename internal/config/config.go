package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config mirrors config/config.json.
type Config struct {
	Postgres PostgresConfig `mapstructure:"postgres"` // warehouse connection
	Staging  StagingConfig  `mapstructure:"staging"`  // bulk load source
	RAWG     RAWGConfig     `mapstructure:"rawg"`     // game metadata API
	Server   ServerConfig   `mapstructure:"server"`   // HTTP surface
}

// PostgresConfig holds the credentials for the warehouse host. Database names
// the bootstrap database used for the first connection; the target warehouse
// database itself is fixed (see warehouse.DatabaseName).
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// StagingConfig describes the delimited files to bulk-copy into staging.
type StagingConfig struct {
	Filepath  string `mapstructure:"filepath"`  // directory with data files
	Delimiter string `mapstructure:"delimiter"` // single-character field delimiter
	Header    bool   `mapstructure:"header"`    // files carry a header row
}

// RAWGConfig configures the metadata lookup client.
type RAWGConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Key     string `mapstructure:"key"`
	Timeout int    `mapstructure:"timeout"` // seconds
	Proxy   string `mapstructure:"proxy"`
}

// ServerConfig configures the gin server.
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug/release/test
}

const defaultRAWGBaseURL = "https://api.rawg.io/api"

// LoadConfig reads config/config.json (or the file named by path when non-empty),
// with sensitive values overridable from .env / the environment.
func LoadConfig(path string) (*Config, error) {
	// .env values override same-named config keys; missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if cfg.RAWG.BaseURL == "" {
		cfg.RAWG.BaseURL = defaultRAWGBaseURL
	}
	overrideFromEnv(&cfg)
	return &cfg, nil
}

// overrideFromEnv applies environment overrides for credentials (env > json).
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("RAWG_API_KEY"); v != "" {
		cfg.RAWG.Key = v
	}
}

// Validate reports missing required sections. Callers log the error and keep
// going with whatever keys are present; a run then fails at the stage that
// actually needed the section.
func (c *Config) Validate() error {
	var missing []string
	if c.Postgres == (PostgresConfig{}) {
		missing = append(missing, "postgres")
	}
	if c.Staging == (StagingConfig{}) {
		missing = append(missing, "staging")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config missing required sections: %s", strings.Join(missing, ", "))
	}
	return nil
}

// DSN builds a keyword/value connection string for the given database.
func (p *PostgresConfig) DSN(database string) string {
	return fmt.Sprintf("host=%s dbname=%s user=%s password=%s sslmode=disable",
		p.Host, database, p.User, p.Password)
}
