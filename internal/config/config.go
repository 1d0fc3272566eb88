package config

import (
	"os"
	"strconv"

	"slack_shifumi/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string

	// Slack credentials. The signing secret authenticates inbound HTTP
	// requests; the app token is only needed in Socket Mode.
	SlackSigningSecret string
	SlackAppToken      string
	SocketModeEnabled  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit  int
	APIRateWindow int // seconds

	LogLevel string
	LogJSON  bool
}

// Загрузка конфига из env
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	signingSecret := os.Getenv("SLACK_SIGNING_SECRET")
	if signingSecret == "" {
		logger.Warn("SLACK_SIGNING_SECRET is not set, request verification disabled")
	}

	socketMode := os.Getenv("SOCKET_MODE_ENABLED") == "true"
	appToken := os.Getenv("SLACK_APP_TOKEN")
	if socketMode && appToken == "" {
		logger.Fatal("SOCKET_MODE_ENABLED requires SLACK_APP_TOKEN")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	apiRateLimit := 30 // макс запросов за ->
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := 60 // -> 60 секунд
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = n
		}
	}

	return &Config{
		AppPort:            port,
		DatabaseURL:        dbURL,
		SlackSigningSecret: signingSecret,
		SlackAppToken:      appToken,
		SocketModeEnabled:  socketMode,
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            redisDB,
		APIRateLimit:       apiRateLimit,
		APIRateWindow:      apiRateWindow,
		LogLevel:           os.Getenv("LOG_LEVEL"),
		LogJSON:            os.Getenv("LOG_JSON") == "true",
	}
}
