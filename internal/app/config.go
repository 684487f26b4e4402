package app

import (
	"strings"
	"time"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/utils"
)

type Config struct {
	Port           string
	JWTSecretKey   string
	SessionTTL     time.Duration
	AllowedOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	sessionTTL := utils.GetEnvAsDuration("ADMIN_SESSION_TTL", 24*time.Hour, log)
	origins := utils.GetEnv("FRONTEND_ORIGINS", "http://localhost:3000,http://localhost:5173", log)

	return Config{
		Port:           port,
		JWTSecretKey:   jwtSecretKey,
		SessionTTL:     sessionTTL,
		AllowedOrigins: strings.Split(origins, ","),
	}
}
