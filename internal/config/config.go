package config

import (
	"fmt"
	"os"
	"strconv"
)

type DroneSurveyConfig struct {
	Env         string
	Port        string
	MongoCfg    MongoConfig
	RedisCfg    RedisConfig
	RabbitMQCfg RabbitMQConfig
	AuthCfg     AuthConfig
}

type MongoConfig struct {
	URI    string
	DBName string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	Host     string
	Port     string
	Username string
	Password string
}

type AuthConfig struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
}

func New() *DroneSurveyConfig {
	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &DroneSurveyConfig{
		Env:  getEnvOrDefault("APP_ENV", "development"),
		Port: getEnvOrDefault("PORT", "3000"),
		MongoCfg: MongoConfig{
			URI:    getEnvOrDefault("MONGO_URL", "mongodb://localhost:27017"),
			DBName: getEnvOrDefault("MONGO_DB_NAME", "drone_survey"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PWD"),
			DB:       redisDB,
		},
		RabbitMQCfg: RabbitMQConfig{
			Host:     getEnvOrDefault("RABBITMQ_HOST", "localhost"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
			Username: os.Getenv("RABBITMQ_USER"),
			Password: os.Getenv("RABBITMQ_PWD"),
		},
		AuthCfg: AuthConfig{
			AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
			RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		},
	}
}

// Validate checks the settings the service cannot run without. A missing
// signing secret is a fatal configuration error, not a per-request one.
func (c *DroneSurveyConfig) Validate() error {
	if c.AuthCfg.AccessTokenSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET is not set")
	}
	if c.AuthCfg.RefreshTokenSecret == "" {
		return fmt.Errorf("REFRESH_TOKEN_SECRET is not set")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
