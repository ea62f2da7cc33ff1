package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"packhouse/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys. Each is read from the environment under the same name.
const (
	KeyHTTPPort           = "HTTP_PORT"
	KeyDBHost             = "DB_HOST"
	KeyDBPort             = "DB_PORT"
	KeyDBUser             = "DB_USER"
	KeyDBPassword         = "DB_PASSWORD"
	KeyDBName             = "DB_NAME"
	KeyDBSslMode          = "DB_SSLMODE"
	KeyLogLevel           = "LOG_LEVEL"
	KeyLogFormat          = "LOG_FORMAT"
	KeyReadySweepSchedule = "READY_SWEEP_SCHEDULE"
)

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	LogLevel           string
	LogFormat          string
	ReadySweepSchedule string
}

// SetDefaults registers the fallback value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyHTTPPort, "8080")
	v.SetDefault(KeyDBHost, "localhost")
	v.SetDefault(KeyDBPort, "5432")
	v.SetDefault(KeyDBUser, "postgres")
	v.SetDefault(KeyDBPassword, "")
	v.SetDefault(KeyDBName, "packhouse")
	v.SetDefault(KeyDBSslMode, "disable")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	v.SetDefault(KeyReadySweepSchedule, "0 * * * * *")
}

// LoadConfig reads envFile into the process environment when it exists, then
// resolves every key through v (flags, environment, defaults).
func LoadConfig(v *viper.Viper, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	SetDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		HTTPPort:           v.GetString(KeyHTTPPort),
		DBHost:             v.GetString(KeyDBHost),
		DBPort:             v.GetString(KeyDBPort),
		DBUser:             v.GetString(KeyDBUser),
		DBPassword:         v.GetString(KeyDBPassword),
		DBName:             v.GetString(KeyDBName),
		DBSslMode:          v.GetString(KeyDBSslMode),
		LogLevel:           v.GetString(KeyLogLevel),
		LogFormat:          v.GetString(KeyLogFormat),
		ReadySweepSchedule: v.GetString(KeyReadySweepSchedule),
	}

	if cfg.HTTPPort == "" {
		return Config{}, fmt.Errorf("%s must not be empty", KeyHTTPPort)
	}

	return cfg, nil
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) Logging() logging.Config {
	return logging.Config{
		Level:       c.LogLevel,
		Format:      c.LogFormat,
		Development: c.LogFormat == "console",
	}
}
