package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const (
	RemoteModeApex = "apex"
	RemoteModeSQL  = "sql"
)

var loadConfigOnce sync.Once
var configInstance AppConfig

func LoadConfig() AppConfig {
	loadConfigOnce.Do(func() {
		viper.SetEnvPrefix("patient_panel")
		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.SetConfigName("server")
		viper.AddConfigPath("config")
		viper.AddConfigPath("/config")
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
		configInstance = readConfig()
	})

	return configInstance
}

func readConfig() AppConfig {
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("general.environment", "production")
	viper.SetDefault("http.address", ":3000")
	viper.SetDefault("remote.mode", RemoteModeSQL)
	viper.SetDefault("remote.timeout", 30*time.Second)
	viper.SetDefault("remote.max_retries", 3)
	viper.SetDefault("remote.retry_delay", 500*time.Millisecond)
	viper.SetDefault("otel.endpoint", "localhost:4317")

	return AppConfig{
		General: GeneralConfig{
			LogLevel:    viper.GetString("general.log_level"),
			Environment: viper.GetString("general.environment"),
		},
		HTTP: HTTPConfig{
			Address:        viper.GetString("http.address"),
			AllowedOrigins: viper.GetStringSlice("http.allowed_origins"),
		},
		Remote: RemoteConfig{
			Mode:         viper.GetString("remote.mode"),
			BaseURL:      viper.GetString("remote.base_url"),
			AccessToken:  viper.GetString("remote.access_token"),
			ClientID:     viper.GetString("remote.client_id"),
			ClientSecret: viper.GetString("remote.client_secret"),
			Timeout:      viper.GetDuration("remote.timeout"),
			MaxRetries:   viper.GetUint64("remote.max_retries"),
			RetryDelay:   viper.GetDuration("remote.retry_delay"),
		},
		Database: DatabaseConfig{
			DSN:  viper.GetString("database.dsn"),
			Seed: viper.GetBool("database.seed"),
		},
		Kafka: KafkaConfig{
			Brokers: viper.GetStringSlice("kafka.brokers"),
		},
		Otel: OtelConfig{
			Enabled:  viper.GetBool("otel.enabled"),
			Endpoint: viper.GetString("otel.endpoint"),
		},
	}
}

type AppConfig struct {
	General  GeneralConfig
	HTTP     HTTPConfig
	Remote   RemoteConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Otel     OtelConfig
}

// IsLocal reports whether the process runs without external infrastructure.
func (c AppConfig) IsLocal() bool {
	return c.General.Environment == "local"
}

type GeneralConfig struct {
	LogLevel    string
	Environment string
}

type HTTPConfig struct {
	Address        string
	AllowedOrigins []string
}

type RemoteConfig struct {
	Mode         string
	BaseURL      string
	AccessToken  string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	MaxRetries   uint64
	RetryDelay   time.Duration
}

type DatabaseConfig struct {
	DSN  string
	Seed bool
}

type KafkaConfig struct {
	Brokers []string
}

type OtelConfig struct {
	Enabled  bool
	Endpoint string
}
