// File: trimly/config/config.go
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all client configuration values.
type Config struct {
	APIBaseURL     string        `mapstructure:"API_BASE_URL"`
	StatePath      string        `mapstructure:"STATE_PATH"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	Env            string        `mapstructure:"ENV"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	MockAddr       string        `mapstructure:"MOCK_ADDR"`
}

// AppConfig stores the loaded configuration for the process.
var AppConfig Config

// LoadConfig reads configuration from the environment, an optional config
// file, and defaults, in that order of precedence.
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("trimly")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("TRIMLY")
	v.AutomaticEnv()

	v.SetDefault("API_BASE_URL", "http://localhost:3333")
	v.SetDefault("STATE_PATH", defaultStatePath())
	v.SetDefault("REQUEST_TIMEOUT", 15*time.Second)
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MOCK_ADDR", ":3333")

	// A missing config file is fine; environment variables and defaults
	// cover everything.
	_ = v.ReadInConfig()

	return v.Unmarshal(&AppConfig)
}

// defaultStatePath places the local session database under the user's
// home directory, falling back to the working directory.
func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "trimly.db"
	}
	return filepath.Join(home, ".trimly", "state.db")
}

// GetEnv returns the application environment.
func GetEnv() string {
	return AppConfig.Env
}

// IsProduction checks if the environment is production.
func IsProduction() bool {
	return GetEnv() == "production"
}
