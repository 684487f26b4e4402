package app

import (
	"gorm.io/gorm"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/services"
)

type Services struct {
	Resolver    services.ResolverService
	Thumbnail   services.ThumbnailService
	Course      services.CourseService
	Lesson      services.LessonService
	LessonOrder services.LessonOrderService
	HeroSlide   services.HeroSlideService
	Video       services.VideoService
	AdminAuth   services.AdminAuthService
	Payment     services.PaymentService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, clients Clients) (Services, error) {
	resolver := services.NewResolverService(db, log, r.CourseVimeo, r.CourseMux, r.CourseCF)

	var thumbnail services.ThumbnailService
	if clients.Bucket != nil {
		t, err := services.NewThumbnailService(log, clients.Bucket)
		if err != nil {
			log.Warn("Could not init ThumbnailService; default thumbnails disabled", "error", err)
		} else {
			thumbnail = t
		}
	}

	course := services.NewCourseService(
		db, log,
		r.CourseMux, r.CourseVimeo, r.CourseCF,
		r.LessonMux, r.LessonVimeo, r.LessonCF,
		resolver,
		clients.Mux, clients.Vimeo, clients.CFStream,
		clients.Vimeo,
		thumbnail,
		clients.Bucket,
	)
	lesson := services.NewLessonService(
		db, log,
		r.CourseMux, r.CourseVimeo,
		r.LessonMux, r.LessonVimeo,
		clients.Mux, clients.Vimeo,
		clients.Bucket,
	)
	lessonOrder := services.NewLessonOrderService(log, r.LessonMux, r.LessonVimeo)
	heroSlide := services.NewHeroSlideService(db, log, r.HeroSlide, r.CourseMux, r.CourseVimeo)
	video := services.NewVideoService(log, clients.Mux, clients.Mux, clients.Vimeo, clients.Vimeo, clients.CFStream)
	adminAuth := services.NewAdminAuthService(db, log, r.AdminUser, clients.Sessions, cfg.JWTSecretKey, cfg.SessionTTL)
	payment := services.NewPaymentService(db, log, r.Purchase, resolver, clients.Razorpay, clients.PhonePe)

	return Services{
		Resolver:    resolver,
		Thumbnail:   thumbnail,
		Course:      course,
		Lesson:      lesson,
		LessonOrder: lessonOrder,
		HeroSlide:   heroSlide,
		Video:       video,
		AdminAuth:   adminAuth,
		Payment:     payment,
	}, nil
}
