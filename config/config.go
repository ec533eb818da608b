package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPort                  = "8080"
	DefaultAccessTokenExpiryMin  = 60
	DefaultRefreshTokenExpiryMin = 10080
	DefaultBcryptCost            = 12
	DefaultLoginMaxAttempts      = 5
	DefaultLoginLockoutMinutes   = 30
	DefaultLogLevel              = "info"
	DefaultCORSOrigins           = "*"
)

type Config struct {
	Env                 string
	Port                string
	DBURL               string
	AccessTokenSecret   string
	RefreshTokenSecret  string
	AccessExpiryMin     int
	RefreshExpiryMin    int
	BcryptCost          int
	LoginMaxAttempts    int
	LoginLockoutMinutes int
	EnforceAvailability bool
	LogLevel            string
	CORSOrigins         string
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads config/.env.dev or config/.env.prod (chosen by ENV) and lets real
// environment variables take precedence over the file.
func Load() *Config {
	env := getEnv("ENV", "development")
	fileValues := readEnvFile(env)

	lookup := func(key string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		return fileValues[key]
	}

	return &Config{
		Env:                 env,
		Port:                valueOr(lookup("PORT"), DefaultPort),
		DBURL:               mustValue("DB_URL", lookup("DB_URL")),
		AccessTokenSecret:   mustValue("ACCESS_TOKEN_SECRET", lookup("ACCESS_TOKEN_SECRET")),
		RefreshTokenSecret:  mustValue("REFRESH_TOKEN_SECRET", lookup("REFRESH_TOKEN_SECRET")),
		AccessExpiryMin:     intOr("ACCESS_TOKEN_EXPIRY", lookup("ACCESS_TOKEN_EXPIRY"), DefaultAccessTokenExpiryMin),
		RefreshExpiryMin:    intOr("REFRESH_TOKEN_EXPIRY", lookup("REFRESH_TOKEN_EXPIRY"), DefaultRefreshTokenExpiryMin),
		BcryptCost:          intOr("BCRYPT_COST", lookup("BCRYPT_COST"), DefaultBcryptCost),
		LoginMaxAttempts:    intOr("LOGIN_MAX_ATTEMPTS", lookup("LOGIN_MAX_ATTEMPTS"), DefaultLoginMaxAttempts),
		LoginLockoutMinutes: intOr("LOGIN_LOCKOUT_MINUTES", lookup("LOGIN_LOCKOUT_MINUTES"), DefaultLoginLockoutMinutes),
		EnforceAvailability: boolOr(lookup("BOOKING_ENFORCE_AVAILABILITY"), false),
		LogLevel:            valueOr(lookup("LOG_LEVEL"), DefaultLogLevel),
		CORSOrigins:         valueOr(lookup("CORS_ORIGINS"), DefaultCORSOrigins),
	}
}

func readEnvFile(env string) map[string]string {
	name := ".env.dev"
	if env == "production" {
		name = ".env.prod"
	}

	values, err := godotenv.Read(filepath.Join("config", name))
	if err != nil {
		// A missing file is fine, the process environment still applies.
		return map[string]string{}
	}
	return values
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func valueOr(value, defaultVal string) string {
	if value != "" {
		return value
	}
	return defaultVal
}

func mustValue(key, value string) string {
	if value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func intOr(key, valStr string, defaultVal int) int {
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func boolOr(valStr string, defaultVal bool) bool {
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(strings.TrimSpace(valStr))
	if err != nil {
		return defaultVal
	}
	return val
}
