package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                 string
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	RedisURL             string
	RedisPassword        string
	AllowedOrigins       []string
	JWTSecret            string
	GameTokenTTLHours    int

	// game defaults, overridable per request within [4, 8]
	DefaultRows       int
	DefaultColumns    int
	DefaultDifficulty int

	// sessions idle longer than this are abandoned by the cleanup worker
	InactivityTimeout time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Database Config
	dbURL := GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", ""))
	dbMaxOpenConns := GetEnvAsInt("DB_MAX_OPEN_CONNS", 25)
	dbMaxIdleConns := GetEnvAsInt("DB_MAX_IDLE_CONNS", 25)
	dbConnMaxLifetimeMin := GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)

	// CORS
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")
	allowedOrigins := []string{
		"http://localhost:5173", // Local development
	}
	if allowedOriginsStr != "" {
		for _, origin := range strings.Split(allowedOriginsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Security
	jwtSecret := GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production")
	gameTokenTTLHours := GetEnvAsInt("GAME_TOKEN_TTL_HOURS", 24)

	inactivityTimeoutMin := GetEnvAsInt("INACTIVITY_TIMEOUT_MINUTES", 30)

	AppConfig = &Config{
		Port:                 port,
		DatabaseURL:          dbURL,
		DBMaxOpenConns:       dbMaxOpenConns,
		DBMaxIdleConns:       dbMaxIdleConns,
		DBConnMaxLifetimeMin: dbConnMaxLifetimeMin,
		RedisURL:             GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:        GetEnv("REDIS_PASSWORD", ""),
		AllowedOrigins:       allowedOrigins,
		JWTSecret:            jwtSecret,
		GameTokenTTLHours:    gameTokenTTLHours,
		DefaultRows:          GetEnvAsInt("DEFAULT_BOARD_ROWS", 6),
		DefaultColumns:       GetEnvAsInt("DEFAULT_BOARD_COLUMNS", 7),
		DefaultDifficulty:    GetEnvAsInt("DEFAULT_DIFFICULTY", 2),
		InactivityTimeout:    time.Duration(inactivityTimeoutMin) * time.Minute,
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
