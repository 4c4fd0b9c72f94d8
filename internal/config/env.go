package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr        string
	GinMode        string
	DBDSN          string
	JWTSecret      string
	AMQPURL        string
	AllowedOrigins []string
}

// LoadEnv reads configuration from the environment, with a .env file as
// fallback for local development.
func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/priestconnect?parseTime=true&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	origins := []string{}
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				origins = append(origins, o)
			}
		}
	} else {
		origins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}

	return Env{
		AppAddr:        appAddr,
		GinMode:        strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:          dsn,
		JWTSecret:      strings.TrimSpace(os.Getenv("JWT_SECRET")),
		AMQPURL:        strings.TrimSpace(os.Getenv("AMQP_URL")),
		AllowedOrigins: origins,
	}
}
