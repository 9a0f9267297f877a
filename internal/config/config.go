package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL   string
	JWTSecret     []byte
	RefreshSecret []byte
	KafkaAddress  string
	AdminPassword string
	LogLevel      string
	ServerPort    string
}

// DefaultAdminPassword is the first-run fallback inherited from the old
// storefront. Set ADMIN_PASSWORD in any real deployment.
const DefaultAdminPassword = "admin123"

func must(v string, name string) string {
	if v == "" {
		log.Fatalf("missing required env %s", name)
	}
	return v
}

func getDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return &Config{
		DatabaseURL:   must(os.Getenv("DATABASE_URL"), "DATABASE_URL"),
		JWTSecret:     []byte(must(os.Getenv("JWT_SECRET"), "JWT_SECRET")),
		RefreshSecret: []byte(must(os.Getenv("REFRESH_SECRET"), "REFRESH_SECRET")),
		KafkaAddress:  os.Getenv("KAFKA_ADDRESS"),
		AdminPassword: getDefault("ADMIN_PASSWORD", DefaultAdminPassword),
		LogLevel:      getDefault("LOG_LEVEL", "info"),
		ServerPort:    getDefault("SERVER_PORT", "8080"),
	}
}
