package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultJWTSecret = "banksim-development-secret"

type Config struct {
	Port           string
	RequestTimeout time.Duration
	JWT            JWTConfig
	Argon2         Argon2Config
	Redis          RedisConfig
	Bank           BankConfig
}

type JWTConfig struct {
	SecretKey   string
	ExpiryHours int
}

// Expiry is the token lifetime, also used as the blacklist TTL on logout.
func (c JWTConfig) Expiry() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

type Argon2Config struct {
	Time       uint32
	Memory     uint32
	Threads    uint8
	KeyLength  uint32
	SaltLength uint32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// BankConfig identifies this bank in outgoing ISO 20022 advices.
type BankConfig struct {
	Currency string
	BIC      string
}

var envBindings = map[string]string{
	"server.port":            "PORT",
	"server.request_timeout": "REQUEST_TIMEOUT",
	"redis.host":             "REDIS_HOST",
	"redis.port":             "REDIS_PORT",
	"redis.password":         "REDIS_PASSWORD",
	"redis.db":               "REDIS_DB",
	"jwt.secret_key":         "JWT_SECRET_KEY",
	"jwt.expiry_hours":       "JWT_EXPIRY_HOURS",
	"argon2.time":            "ARGON2_TIME",
	"argon2.memory":          "ARGON2_MEMORY",
	"argon2.threads":         "ARGON2_THREADS",
	"argon2.key_length":      "ARGON2_KEY_LENGTH",
	"argon2.salt_length":     "ARGON2_SALT_LENGTH",
	"bank.currency":          "BANK_CURRENCY",
	"bank.bic":               "BANK_BIC",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.request_timeout", "60s")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret_key", defaultJWTSecret)
	v.SetDefault("jwt.expiry_hours", 24)
	v.SetDefault("argon2.time", 1)
	v.SetDefault("argon2.memory", 64*1024)
	v.SetDefault("argon2.threads", 4)
	v.SetDefault("argon2.key_length", 32)
	v.SetDefault("argon2.salt_length", 16)
	v.SetDefault("bank.currency", "INR")
	v.SetDefault("bank.bic", "BNKSINBBXXX")
}

// Load reads configuration from the given .env file and the environment.
// Environment variables win over the file, and the file wins over defaults.
// A missing file is not an error.
func Load(path string) *Config {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[CONFIG] Config file not found, using defaults: %v", err)
	}

	for key, env := range envBindings {
		// .env keys arrive flattened and lower-cased, e.g. jwt_secret_key.
		if fileVal := v.GetString(strings.ToLower(env)); fileVal != "" {
			v.SetDefault(key, fileVal)
		}
		v.BindEnv(key, env)
	}

	cfg := &Config{
		Port:           v.GetString("server.port"),
		RequestTimeout: v.GetDuration("server.request_timeout"),
		JWT: JWTConfig{
			SecretKey:   v.GetString("jwt.secret_key"),
			ExpiryHours: v.GetInt("jwt.expiry_hours"),
		},
		Argon2: Argon2Config{
			Time:       v.GetUint32("argon2.time"),
			Memory:     v.GetUint32("argon2.memory"),
			Threads:    uint8(v.GetUint("argon2.threads")),
			KeyLength:  v.GetUint32("argon2.key_length"),
			SaltLength: v.GetUint32("argon2.salt_length"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetString("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Bank: BankConfig{
			Currency: strings.ToUpper(v.GetString("bank.currency")),
			BIC:      v.GetString("bank.bic"),
		},
	}

	if cfg.JWT.SecretKey == defaultJWTSecret && os.Getenv("JWT_SECRET_KEY") == "" {
		log.Printf("[CONFIG] JWT_SECRET_KEY not set, using the development secret")
	}
	return cfg
}
