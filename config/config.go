package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	MongoURI    string
	MongoDBName string

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins []string
	UploadDir   string

	LogFile  string
	LogLevel string

	LoginRatePerMinute  int
	ProjectWriteTimeout time.Duration

	AdminEmail    string
	AdminPassword string
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Load reads the optional env file and builds a Config from the environment.
// A missing env file is not an error; the process environment still applies.
// JWT_SECRET has no default and must be provided.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, err
		}
	}
	cfg := FromEnv()
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

func FromEnv() *Config {
	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		MongoURI:            getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDBName:         getEnv("MONGO_DB_NAME", "EMS"),
		JWTSecret:           strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTTTL:              getDuration("JWT_TTL", 24*time.Hour),
		CORSOrigins:         splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		UploadDir:           getEnv("UPLOAD_DIR", "uploads"),
		LogFile:             os.Getenv("LOG_FILE"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LoginRatePerMinute:  getInt("LOGIN_RATE_PER_MINUTE", 10),
		ProjectWriteTimeout: getDuration("PROJECT_WRITE_TIMEOUT", 15*time.Second),
		AdminEmail:          os.Getenv("ADMIN_EMAIL"),
		AdminPassword:       os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
