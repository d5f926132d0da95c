package config

import (
	"errors"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/piresc/accounts/internal/pkg/models"
	"github.com/spf13/viper"
)

// env resolves keys from the process environment first, then from a loaded config file
var env = newViper()

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

// InitConfig loads configuration. A .env file is exported into the environment when
// APP_ENV is local; yaml, json or toml files are read through viper with env overrides.
func InitConfig(configPath string) *models.Config {
	env = newViper()

	if configPath != "" {
		switch strings.ToLower(filepath.Ext(configPath)) {
		case ".yaml", ".yml", ".json", ".toml":
			env.SetConfigFile(configPath)
			if err := env.ReadInConfig(); err != nil {
				log.Println("error loading config from file", err)
			}
		default:
			if GetEnv("APP_ENV", "local") == "local" {
				if err := godotenv.Load(configPath); err != nil {
					log.Println("error loading config from file", err)
				}
			}
		}
	}

	return loadConfig()
}

func loadConfig() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "accounts")
	configs.App.Environment = GetEnv("APP_ENV", "local")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", false)
	configs.App.Version = GetEnv("APP_VERSION", "dev")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 5050)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 10)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 10)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Database config
	configs.Database.URL = GetEnv("DATABASE_URL", "")
	configs.Database.Host = GetEnv("DB_HOST", "localhost")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 10)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 5)
	configs.Database.AutoMigrate = GetEnvAsBool("DB_AUTO_MIGRATE", true)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "localhost")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 10)

	// Messaging config
	configs.NATS.URL = GetEnv("NATS_URL", "nats://localhost:4222")
	configs.NSQ.Address = GetEnv("NSQ_ADDRESS", "localhost:4150")

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Expiration = GetEnvAsInt("JWT_EXPIRATION", 60)
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "accounts")

	// OTP config
	configs.OTP.Store = strings.ToLower(GetEnv("OTP_STORE", models.OTPStoreRedis))
	configs.OTP.TTL = GetEnvAsDuration("OTP_TTL", 10*time.Minute)
	configs.OTP.Delivery = strings.ToLower(GetEnv("OTP_DELIVERY", models.OTPDeliveryLog))

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	// NewRelic config
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", configs.App.Name)
	configs.NewRelic.ForwardLogs = GetEnvAsBool("NEW_RELIC_FORWARD_LOGS", false)

	return configs
}

// Validate reports settings the service cannot start without
func Validate(cfg *models.Config) error {
	var errs []error

	if cfg.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if cfg.Database.URL == "" && cfg.Database.Database == "" {
		errs = append(errs, errors.New("DATABASE_URL or DB_DATABASE is required"))
	}
	switch cfg.OTP.Store {
	case models.OTPStoreRedis, models.OTPStoreMemory:
	default:
		errs = append(errs, errors.New("OTP_STORE must be redis or memory"))
	}
	switch cfg.OTP.Delivery {
	case models.OTPDeliveryLog, models.OTPDeliveryNATS, models.OTPDeliveryNSQ:
	default:
		errs = append(errs, errors.New("OTP_DELIVERY must be log, nats or nsq"))
	}

	return errors.Join(errs...)
}

// Helper functions to get configuration values with different types
func GetEnv(key, defaultValue string) string {
	value := env.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

// GetEnvAsDuration accepts Go durations ("10m") or a bare number of seconds
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
