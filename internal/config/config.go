package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string      `yaml:"log-level"           env:"LOG_LEVEL"           env-default:"info"`
	HTTPPort          string      `yaml:"http-port"           env:"HTTP_PORT"           env-default:"9090"`
	SocketPort        string      `yaml:"socket-port"         env:"SOCKET_PORT"         env-default:"7777"`
	Redis             Redis       `yaml:"redis"`
	SQLiteStoragePath string      `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"./results.db"`
	JWTSecretKey      string      `yaml:"jwt-secret-key"      env:"JWT_SECRET_KEY"`
	Session           Session     `yaml:"session"`
	Matchmaking       Matchmaking `yaml:"matchmaking"`
	Result            Result      `yaml:"result"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Session tunes one WebSocket connection.
type Session struct {
	SendBuffer     int           `yaml:"send-buffer"      env:"SESSION_SEND_BUFFER"      env-default:"16"`
	WriteWait      time.Duration `yaml:"write-wait"       env:"SESSION_WRITE_WAIT"       env-default:"10s"`
	PongWait       time.Duration `yaml:"pong-wait"        env:"SESSION_PONG_WAIT"        env-default:"60s"`
	MaxMessageSize int64         `yaml:"max-message-size" env:"SESSION_MAX_MESSAGE_SIZE" env-default:"512"`
}

type Matchmaking struct {
	JoinAttempts int `yaml:"join-attempts" env:"MATCHMAKING_JOIN_ATTEMPTS" env-default:"3"`
}

type Result struct {
	Timeout time.Duration `yaml:"timeout" env:"RESULT_TIMEOUT" env-default:"5s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
