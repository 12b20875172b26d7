package config

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the server and the CLI client.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Seed     SeedConfig     `mapstructure:"seed"`
	Client   ClientConfig   `mapstructure:"client"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address     string   `mapstructure:"address"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DatabaseConfig selects the server backend. Driver is "mongo" or "postgres".
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	PathStyle       bool   `mapstructure:"path_style"`
}

// Enabled reports whether snapshot export is configured.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// SeedConfig names the seed profiles used for new accounts and new local stores.
// A profile is an embedded name ("minimal", "demo") or a path to a YAML file.
type SeedConfig struct {
	Profile       string         `mapstructure:"profile"`
	Overrides     []SeedOverride `mapstructure:"overrides"`
	ClientProfile string         `mapstructure:"client_profile"`
}

// SeedOverride assigns a profile to one account. Emails are kept out of map
// keys because viper splits keys on dots.
type SeedOverride struct {
	Email   string `mapstructure:"email"`
	Profile string `mapstructure:"profile"`
}

// OverrideMap returns the overrides keyed by email.
func (c SeedConfig) OverrideMap() map[string]string {
	out := make(map[string]string, len(c.Overrides))
	for _, o := range c.Overrides {
		out[o.Email] = o.Profile
	}
	return out
}

type ClientConfig struct {
	APIBase      string        `mapstructure:"api_base"`
	DBPath       string        `mapstructure:"db_path"`
	SyncInterval time.Duration `mapstructure:"sync_interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from path/config.yaml, an optional
// path/.env file and environment variables, in increasing precedence.
func LoadConfig(path string) (config Config, err error) {
	// A missing .env is fine; variables already set in the environment win.
	_ = godotenv.Load(filepath.Join(path, ".env"))

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, jwt.expiration -> JWT_EXPIRATION
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("database.driver", "mongo")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "tracker")
	// Keys without a default are invisible to AutomaticEnv during Unmarshal.
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.path_style", true)
	v.SetDefault("jwt.secret", "dev-secret-change-me")
	v.SetDefault("jwt.expiration", "168h")
	v.SetDefault("seed.profile", "minimal")
	v.SetDefault("seed.client_profile", "minimal")
	v.SetDefault("client.api_base", "http://localhost:8080")
	v.SetDefault("client.db_path", defaultDBPath())
	v.SetDefault("client.sync_interval", "5s")
	v.SetDefault("client.timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = nil
	} else if err != nil {
		return
	}

	// Viper parses duration strings ("5s", "168h") into time.Duration fields.
	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, nil
}

func defaultDBPath() string {
	dir, err := userDataDir()
	if err != nil {
		return "tracker.db"
	}
	return filepath.Join(dir, "tracker", "tracker.db")
}
