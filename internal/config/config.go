package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	JWT       JWTConfig
	Scheduler SchedulerConfig
}

var (
	configInstance *Config
	once           sync.Once
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	URI      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns DATABASE_URL when set, otherwise a DSN built from the discrete
// postgres settings
func (d DatabaseConfig) DSN() string {
	if d.URI != "" {
		return d.URI
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	URL     string
	Enabled bool
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	Enabled bool
}

type JWTConfig struct {
	Secret string
}

type SchedulerConfig struct {
	Interval        time.Duration
	ResultBoardID   uint
	NoticeMaxLength int
}

func LoadConfig() (*Config, error) {
	once.Do(func() {
		viper.SetDefault("COMMUNITY_HOST", "")
		viper.SetDefault("COMMUNITY_PORT", "8080")
		viper.SetDefault("COMMUNITY_READ_TIMEOUT", 30*time.Second)
		viper.SetDefault("COMMUNITY_WRITE_TIMEOUT", 30*time.Second)
		viper.SetDefault("COMMUNITY_IDLE_TIMEOUT", 60*time.Second)
		viper.SetDefault("COMMUNITY_JWT_SECRET", "secret")
		viper.SetDefault("REDIS_URL", "redis://127.0.0.1:6379/0")
		viper.SetDefault("REDIS_ENABLED", true)
		viper.SetDefault("KAFKA_BROKERS", []string{"127.0.0.1:9092"})
		viper.SetDefault("KAFKA_TOPIC", "community.poll-events")
		viper.SetDefault("KAFKA_ENABLED", false)
		viper.SetDefault("POSTGRES_USER", "postgres")
		viper.SetDefault("POSTGRES_PASSWORD", "password")
		viper.SetDefault("POSTGRES_HOST", "localhost")
		viper.SetDefault("POSTGRES_PORT", "5432")
		viper.SetDefault("POSTGRES_DB", "postgres")
		viper.SetDefault("POSTGRES_SSLMODE", "disable")
		viper.SetDefault("POLL_SWEEP_INTERVAL", time.Minute)
		viper.SetDefault("POLL_RESULT_BOARD_ID", 1)
		viper.SetDefault("POLL_NOTICE_MAX_LENGTH", 1000)
		viper.AutomaticEnv()

		configInstance = &Config{
			Server: ServerConfig{
				Host:         viper.GetString("COMMUNITY_HOST"),
				Port:         viper.GetString("COMMUNITY_PORT"),
				ReadTimeout:  viper.GetDuration("COMMUNITY_READ_TIMEOUT"),
				WriteTimeout: viper.GetDuration("COMMUNITY_WRITE_TIMEOUT"),
				IdleTimeout:  viper.GetDuration("COMMUNITY_IDLE_TIMEOUT"),
			},
			Database: DatabaseConfig{
				URI:      viper.GetString("DATABASE_URL"),
				Host:     viper.GetString("POSTGRES_HOST"),
				Port:     viper.GetString("POSTGRES_PORT"),
				User:     viper.GetString("POSTGRES_USER"),
				Password: viper.GetString("POSTGRES_PASSWORD"),
				DBName:   viper.GetString("POSTGRES_DB"),
				SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
			},
			Redis: RedisConfig{
				URL:     viper.GetString("REDIS_URL"),
				Enabled: viper.GetBool("REDIS_ENABLED"),
			},
			Kafka: KafkaConfig{
				Brokers: viper.GetStringSlice("KAFKA_BROKERS"),
				Topic:   viper.GetString("KAFKA_TOPIC"),
				Enabled: viper.GetBool("KAFKA_ENABLED"),
			},
			JWT: JWTConfig{
				Secret: viper.GetString("COMMUNITY_JWT_SECRET"),
			},
			Scheduler: SchedulerConfig{
				Interval:        viper.GetDuration("POLL_SWEEP_INTERVAL"),
				ResultBoardID:   uint(viper.GetInt("POLL_RESULT_BOARD_ID")),
				NoticeMaxLength: viper.GetInt("POLL_NOTICE_MAX_LENGTH"),
			},
		}
	})

	return configInstance, nil
}
