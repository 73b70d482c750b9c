package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"helpmate_server/utils"
)

type Config struct {
	Server    ServerConfig
	AWS       AWSConfig
	WebSocket WebSocketConfig
	Auth      AuthConfig
	Match     MatchConfig
	Session   SessionConfig
	Log       utils.LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type AWSConfig struct {
	Region string
}

type WebSocketConfig struct {
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string
}

type MatchConfig struct {
	VisibilityWindow time.Duration `mapstructure:"visibility_window"`
}

type SessionConfig struct {
	LookupWindow time.Duration `mapstructure:"lookup_window"`
}

// Load reads configuration from config.yaml and environment variables.
// Missing config files are not an error, env vars and defaults take over.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("aws.region", "ap-south-1")
	v.SetDefault("websocket.ping_interval", "30s")
	v.SetDefault("websocket.pong_wait", "60s")
	v.SetDefault("websocket.write_wait", "10s")
	v.SetDefault("websocket.max_message_size", 4096)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "helpmate")
	v.SetDefault("match.visibility_window", "30m")
	v.SetDefault("session.lookup_window", "30m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.BindEnv("server.port", "PORT")
	v.BindEnv("aws.region", "AWS_REGION")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.issuer", "JWT_ISSUER")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.WebSocket.PingInterval = parseDuration(v, "websocket.ping_interval", 30*time.Second)
	cfg.WebSocket.PongWait = parseDuration(v, "websocket.pong_wait", 60*time.Second)
	cfg.WebSocket.WriteWait = parseDuration(v, "websocket.write_wait", 10*time.Second)
	cfg.Match.VisibilityWindow = parseDuration(v, "match.visibility_window", 30*time.Minute)
	cfg.Session.LookupWindow = parseDuration(v, "session.lookup_window", 30*time.Minute)

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required (set JWT_SECRET)")
	}

	return &cfg, nil
}

func parseDuration(v *viper.Viper, key string, defaultVal time.Duration) time.Duration {
	str := v.GetString(key)
	d, err := time.ParseDuration(str)
	if err != nil {
		return defaultVal
	}
	return d
}
