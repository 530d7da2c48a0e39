package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
	AutoMigrate     bool
}

type AuthConfig struct {
	AccessSecret string
	AccessTTL    time.Duration
}

type VIESConfig struct {
	URL         string
	CountryCode string
	Timeout     time.Duration
}

type Config struct {
	Environment string
	LogLevel    string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	VIES        VIESConfig
}

const defaultVIESURL = "https://ec.europa.eu/taxation_customs/vies/rest-api/check-vat-number"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 7090)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("JWT_ACCESS_TTL", "24h")
	v.SetDefault("VIES_URL", defaultVIESURL)
	v.SetDefault("VIES_COUNTRY_CODE", "BE")
	v.SetDefault("VIES_TIMEOUT", "5s")

	_ = v.ReadInConfig()
	return v
}

func Load() (*Config, error) {
	v := newViper()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
			AccessTTL:    v.GetDuration("JWT_ACCESS_TTL"),
		},
		VIES: viesConfig(v),
	}

	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"*"}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadVIES reads only the registry settings, for tools that run without a database.
func LoadVIES() (VIESConfig, error) {
	cfg := viesConfig(newViper())
	if err := validateVIES(cfg); err != nil {
		return VIESConfig{}, err
	}
	return cfg, nil
}

func viesConfig(v *viper.Viper) VIESConfig {
	return VIESConfig{
		URL:         v.GetString("VIES_URL"),
		CountryCode: strings.ToUpper(v.GetString("VIES_COUNTRY_CODE")),
		Timeout:     v.GetDuration("VIES_TIMEOUT"),
	}
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Auth.AccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be positive")
	}
	return validateVIES(cfg.VIES)
}

func validateVIES(cfg VIESConfig) error {
	if cfg.URL == "" {
		return fmt.Errorf("VIES_URL is required")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("VIES_TIMEOUT must be positive")
	}
	if len(cfg.CountryCode) != 2 {
		return fmt.Errorf("VIES_COUNTRY_CODE must be a two-letter code")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
