package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel     string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort     string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort   string        `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis        Redis         `yaml:"redis"`
	Postgres     Postgres      `yaml:"postgres"`
	JWTSecretKey string        `yaml:"jwt-secret-key" env:"JWT_SECRET_KEY" env-default:"change-me"`
	SessionTTL   time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h"`
	GameTTL      time.Duration `yaml:"game-ttl" env:"GAME_TTL" env-default:"2h"`
	Bot          Bot           `yaml:"bot"`
	Matchmaking  Matchmaking   `yaml:"matchmaking"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// Postgres holds the stats database. An empty DSN disables stats.
type Postgres struct {
	DSN string `yaml:"dsn" env:"POSTGRES_DSN"`
}

type Bot struct {
	Difficulty    string        `yaml:"difficulty" env:"BOT_DIFFICULTY" env-default:"medium"`
	ThinkingDelay time.Duration `yaml:"thinking-delay" env:"BOT_THINKING_DELAY" env-default:"600ms"`
	Jitter        float64       `yaml:"jitter" env:"BOT_JITTER" env-default:"3"`
	Depth         int           `yaml:"depth" env:"BOT_DEPTH" env-default:"2"`
	Seed          int64         `yaml:"seed" env:"BOT_SEED" env-default:"0"`
}

type Matchmaking struct {
	PollInterval time.Duration `yaml:"poll-interval" env:"MATCHMAKING_POLL_INTERVAL" env-default:"5s"`
}

// MustLoad - load all configurations in config.yml file, falling back to the
// environment alone when the file does not exist.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to read config from environment: %w", err))
		}

		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
