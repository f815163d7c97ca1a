package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Scheduling defaults. Clinics may override the slot step per clinic;
	// everything else is platform-wide.
	SlotStepMinutes     int `mapstructure:"SLOT_STEP_MINUTES"`
	MinLeadTimeMinutes  int `mapstructure:"MIN_LEAD_TIME_MINUTES"`
	HoldTTLMinutes      int `mapstructure:"HOLD_TTL_MINUTES"`
	SessionTTLMinutes   int `mapstructure:"SESSION_TTL_MINUTES"`
	MinServiceDuration  int `mapstructure:"MIN_SERVICE_DURATION_MINUTES"`
	CalendarFloorMinute int `mapstructure:"CALENDAR_FLOOR_MINUTE"`
	CalendarCeilMinute  int `mapstructure:"CALENDAR_CEIL_MINUTE"`

	// Cloudinary (caregiver authorization documents and uploaded results).
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "cliniva")
	viper.SetDefault("SLOT_STEP_MINUTES", 30)
	viper.SetDefault("MIN_LEAD_TIME_MINUTES", 30)
	viper.SetDefault("HOLD_TTL_MINUTES", 10)
	viper.SetDefault("SESSION_TTL_MINUTES", 10)
	viper.SetDefault("MIN_SERVICE_DURATION_MINUTES", 15)
	// Bookable day bounds: 06:00 to 22:00.
	viper.SetDefault("CALENDAR_FLOOR_MINUTE", 360)
	viper.SetDefault("CALENDAR_CEIL_MINUTE", 1320)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
