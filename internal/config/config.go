package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     int

	Port      string
	JWTSecret string

	// Exact-match origin allow-list; requests without an Origin header
	// always pass.
	AllowedOrigins []string

	MaxOpenConns   int
	RequestTimeout time.Duration

	// The single demo principal (id=1). If DemoPasswordHash is set it takes
	// precedence over DemoPassword and is verified with bcrypt.
	DemoUsername     string
	DemoPassword     string
	DemoPasswordHash string
}

func Load() Config {
	// Best effort: local dev keeps settings in a .env file.
	_ = godotenv.Load()

	return Config{
		DBHost:     getenv("DB_HOST", "localhost"),
		DBUser:     getenv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getenv("DB_NAME", "assignments"),
		DBPort:     getenvInt("DB_PORT", 3306),

		Port:      getenv("PORT", "3000"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		AllowedOrigins: splitOrigins(getenv("ALLOWED_ORIGINS",
			"http://localhost:3000,https://ca2assignmentmanager.onrender.com")),

		MaxOpenConns:   getenvInt("DB_MAX_OPEN_CONNS", 100),
		RequestTimeout: getenvDuration("REQUEST_TIMEOUT", 5*time.Second),

		DemoUsername:     getenv("DEMO_USERNAME", "admin"),
		DemoPassword:     getenv("DEMO_PASSWORD", "admin123"),
		DemoPasswordHash: os.Getenv("DEMO_PASSWORD_HASH"),
	}
}

// DSN builds the MySQL connection string. clientFoundRows makes
// RowsAffected count matched rows, so a full-replace update that rewrites
// identical values still reports success instead of looking like a miss.
func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&clientFoundRows=true",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func splitOrigins(s string) []string {
	out := []string{}
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getenvDuration(k string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
