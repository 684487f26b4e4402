package app

import (
	"github.com/vidyarthi-app/vidyarthi-backend/internal/handlers"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Course    *handlers.CourseHandler
	Lesson    *handlers.LessonHandler
	Video     *handlers.VideoHandler
	HeroSlide *handlers.HeroSlideHandler
	Payment   *handlers.PaymentHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	return Handlers{
		Auth:      handlers.NewAuthHandler(log, s.AdminAuth),
		Course:    handlers.NewCourseHandler(log, s.Course, s.Resolver),
		Lesson:    handlers.NewLessonHandler(log, s.Lesson, s.LessonOrder),
		Video:     handlers.NewVideoHandler(log, s.Video),
		HeroSlide: handlers.NewHeroSlideHandler(log, s.HeroSlide),
		Payment:   handlers.NewPaymentHandler(log, s.Payment),
	}
}
