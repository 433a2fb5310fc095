package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
type Config struct {
	Port        string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	JWTSecret   string        // Token signing secret, must come from the environment
	TokenExpiry time.Duration // Lifetime of issued bearer tokens

	UploadDir        string // Storage root for all uploaded media
	DefaultCoverPath string // Serve path of the shared default cover, e.g. /uploads/default-cover.jpg
	WebAppDir        string // Path to the compiled web client

	// Redis (optional, playlist read cache)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	WatchLibrary bool   // Register audio files dropped into the storage root out-of-band
	LogFile      string // Optional rotating log file path
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvDuration gets an environment variable as a duration or returns a default value.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on existing environment variables and defaults.")
	}

	uploadBase := getEnv("UPLOAD_DIR", "uploads")

	return &Config{
		Port:        getEnv("PORT", "5000"),
		DBHost:      getEnv("DB_HOST", "127.0.0.1"),
		DBPort:      getEnv("DB_PORT", "3306"),
		DBUser:      getEnv("DB_USER", "root"),
		DBPassword:  os.Getenv("DB_PASSWORD"), // no hardcoded default for credentials
		DBName:      getEnv("DB_NAME", "tunevault"),
		JWTSecret:   os.Getenv("JWT_SECRET"), // required, validated at startup
		TokenExpiry: getEnvDuration("TOKEN_EXPIRY", time.Hour),

		UploadDir:        uploadBase,
		DefaultCoverPath: "/" + filepath.ToSlash(filepath.Join(uploadBase, "default-cover.jpg")),
		WebAppDir:        getEnv("WEBAPP_DIR", "public"),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		WatchLibrary: getEnvBool("WATCH_LIBRARY", false),
		LogFile:      getEnv("LOG_FILE", ""),
	}
}
