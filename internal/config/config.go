package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ghostpin/ghostpin-api/internal/pkg/reputation"
)

type AppConfig struct {
	API        *APIConfig
	Gin        *GinConfig
	Postgres   *PostgresConfig
	Reputation *ReputationConfig
	Proximity  *ProximityConfig
	Storage    *StorageConfig
}

type APIConfig struct {
	BaseURL            string   `mapstructure:"base_url"`
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.DB, c.Port, c.SSLMode)
}

type ReputationConfig struct {
	Awards reputation.Awards `mapstructure:"awards"`
	// Maximum nesting of comment replies.
	MaxReplyDepth int `mapstructure:"max_reply_depth"`
}

type ProximityConfig struct {
	DefaultRadiusKm    float64       `mapstructure:"default_radius_km"`
	MaxRadiusKm        float64       `mapstructure:"max_radius_km"`
	NotificationWindow time.Duration `mapstructure:"notification_window"`
	// Distance under which a check-in is flagged as location verified.
	VerifyRadiusKm float64 `mapstructure:"verify_radius_km"`
}

type StorageConfig struct {
	Bucket          string        `mapstructure:"bucket"`
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	PublicURL       string        `mapstructure:"public_url"`
	PresignTTL      time.Duration `mapstructure:"presign_ttl"`
}

func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		// Running handlers keep the values they were built with; a restart applies the change.
		zap.L().Info("config file changed", zap.String("file", e.Name), zap.String("op", e.Op.String()))
	})
	v.WatchConfig()

	return conf, nil
}

func setDefaults(v *viper.Viper) {
	awards := reputation.DefaultAwards()

	v.SetDefault("api.port", "8080")
	v.SetDefault("api.environment", "development")
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("reputation.awards.place_submitted", awards.PlaceSubmitted)
	v.SetDefault("reputation.awards.comment", awards.Comment)
	v.SetDefault("reputation.awards.check_in", awards.CheckIn)
	v.SetDefault("reputation.awards.place_approved", awards.PlaceApproved)
	v.SetDefault("reputation.max_reply_depth", 10)
	v.SetDefault("proximity.default_radius_km", 10.0)
	v.SetDefault("proximity.max_radius_km", 200.0)
	v.SetDefault("proximity.notification_window", time.Hour)
	v.SetDefault("proximity.verify_radius_km", 0.5)
	v.SetDefault("storage.region", "auto")
	v.SetDefault("storage.presign_ttl", 15*time.Minute)
}
