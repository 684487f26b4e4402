package app

import (
	"github.com/gin-gonic/gin"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/middleware"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/server"
)

func wireRouter(cfg Config, log *logger.Logger, h Handlers, s Services) *gin.Engine {
	adminGate := middleware.NewAdminMiddleware(log, s.AdminAuth)
	return server.NewRouter(server.RouterConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AuthHandler:      h.Auth,
		CourseHandler:    h.Course,
		LessonHandler:    h.Lesson,
		VideoHandler:     h.Video,
		HeroSlideHandler: h.HeroSlide,
		PaymentHandler:   h.Payment,
		AdminMiddleware:  adminGate,
	})
}
