package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
		Currency string
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
		Timeout     int
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr    string
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Redis struct {
		Addr     string
		Password string
		DB       int
		TTL      time.Duration
	} `mapstructure:"redis"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Production struct {
		HourlyRate string `mapstructure:"hourly_rate"`
	} `mapstructure:"production"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.timezone", "Asia/Kolkata")
	v.SetDefault("app.currency", "INR")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.base_url", "http://localhost:8080")
	v.SetDefault("telegram.timeout", 30)
	v.SetDefault("redis.ttl", 30*time.Second)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("production.hourly_rate", "15")
}

// Load reads the yaml file at path. An optional .env next to the binary is
// loaded first so APP_* variables from it override the file.
func Load(path string) (Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// TelegramEnabled reports whether the admin bot should be started.
func (c Config) TelegramEnabled() bool {
	return strings.TrimSpace(c.Telegram.Token) != ""
}

func (c Config) RedisEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}
