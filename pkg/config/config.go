package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"liyu1981.xyz/consumable-wear-service/pkg/common"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

const (
	configName = "config"
	configType = "yml"
	envPrefix  = "WEAR"
)

type Server struct {
	HTTPHostPort string  `mapstructure:"http_host_port"`
	GRPCHostPort string  `mapstructure:"grpc_host_port"`
	DefaultRate  float64 `mapstructure:"default_rate"`
	DefaultBurst int     `mapstructure:"default_burst"`
}

type DB struct {
	Type string `mapstructure:"type"`
	Path string `mapstructure:"path"`
}

type Wear struct {
	DefaultLifeLimit float64         `mapstructure:"default_life_limit"`
	Thresholds       wear.Thresholds `mapstructure:"thresholds"`
}

// Retry bounds data access attempts before an evaluation gives up.
type Retry struct {
	Attempts int           `mapstructure:"attempts"`
	Delay    time.Duration `mapstructure:"delay"`
}

type SMTP struct {
	Enabled  bool     `mapstructure:"enabled"`
	Host     string   `mapstructure:"host"`
	Port     int      `mapstructure:"port"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	From     string   `mapstructure:"from"`
	To       []string `mapstructure:"to"`
}

type Redis struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Notify struct {
	Log       bool  `mapstructure:"log"`
	WebSocket bool  `mapstructure:"websocket"`
	SMTP      SMTP  `mapstructure:"smtp"`
	Redis     Redis `mapstructure:"redis"`
}

type Config struct {
	Server Server `mapstructure:"server"`
	DB     DB     `mapstructure:"db"`
	Wear   Wear   `mapstructure:"wear"`
	Retry  Retry  `mapstructure:"retry"`
	Notify Notify `mapstructure:"notify"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_host_port", ":8080")
	v.SetDefault("server.grpc_host_port", ":50051")
	v.SetDefault("server.default_rate", 5.0)
	v.SetDefault("server.default_burst", 10)

	v.SetDefault("db.type", "file")
	v.SetDefault("db.path", "wear.db")

	v.SetDefault("wear.default_life_limit", wear.DefaultLifeLimit)
	v.SetDefault("wear.thresholds.imminent_failure.hours", wear.DefaultThresholds.ImminentFailure.Hours)
	v.SetDefault("wear.thresholds.imminent_failure.inclusive", wear.DefaultThresholds.ImminentFailure.Inclusive)
	v.SetDefault("wear.thresholds.critical.hours", wear.DefaultThresholds.Critical.Hours)
	v.SetDefault("wear.thresholds.critical.inclusive", wear.DefaultThresholds.Critical.Inclusive)
	v.SetDefault("wear.thresholds.warning.hours", wear.DefaultThresholds.Warning.Hours)
	v.SetDefault("wear.thresholds.warning.inclusive", wear.DefaultThresholds.Warning.Inclusive)

	v.SetDefault("retry.attempts", 3)
	v.SetDefault("retry.delay", 2*time.Second)

	v.SetDefault("notify.log", true)
	v.SetDefault("notify.websocket", true)
	v.SetDefault("notify.smtp.enabled", false)
	v.SetDefault("notify.smtp.host", "smtp.gmail.com")
	v.SetDefault("notify.smtp.port", 465)
	v.SetDefault("notify.smtp.username", "")
	v.SetDefault("notify.smtp.password", "")
	v.SetDefault("notify.smtp.from", "")
	v.SetDefault("notify.smtp.to", []string{})
	v.SetDefault("notify.redis.enabled", false)
	v.SetDefault("notify.redis.addr", "localhost:6379")
	v.SetDefault("notify.redis.password", "")
	v.SetDefault("notify.redis.db", 0)
}

// bindLegacyEnv keeps the flat env keys declared in common working.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"server.http_host_port": common.EnvKeyWearHttpHostPort,
		"server.grpc_host_port": common.EnvKeyWearGrpcHostPort,
		"server.default_rate":   common.EnvKeyWearDefaultRate,
		"server.default_burst":  common.EnvKeyWearDefaultBurst,
		"db.type":               common.EnvKeyWearDBType,
		"db.path":               common.EnvKeyWearDbPath,
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config.yml from dir when present, then applies WEAR_ prefixed
// environment overrides, e.g. WEAR_RETRY_ATTEMPTS for retry.attempts.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := bindLegacyEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if dir != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Wear.Thresholds.Validate(); err != nil {
		return err
	}
	if c.Wear.DefaultLifeLimit <= 0 {
		return fmt.Errorf("%w: default_life_limit=%v", wear.ErrInvalidLifeLimit, c.Wear.DefaultLifeLimit)
	}
	if c.Retry.Attempts < 1 {
		return fmt.Errorf("retry.attempts must be at least 1, got %d", c.Retry.Attempts)
	}
	if c.Notify.SMTP.Enabled && (c.Notify.SMTP.From == "" || len(c.Notify.SMTP.To) == 0) {
		return errors.New("notify.smtp requires from and to")
	}
	return nil
}
