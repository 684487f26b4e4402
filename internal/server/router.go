package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/handlers"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/middleware"
)

type RouterConfig struct {
	AllowedOrigins []string

	AuthHandler      *handlers.AuthHandler
	CourseHandler    *handlers.CourseHandler
	LessonHandler    *handlers.LessonHandler
	VideoHandler     *handlers.VideoHandler
	HeroSlideHandler *handlers.HeroSlideHandler
	PaymentHandler   *handlers.PaymentHandler
	AdminMiddleware  *middleware.AdminMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	router.POST("/auth/admin-login", cfg.AuthHandler.AdminLogin)
	router.POST("/auth/admin-logout", cfg.AuthHandler.AdminLogout)

	router.GET("/courses", cfg.CourseHandler.ListCourses)
	router.GET("/courses/by-slug", cfg.CourseHandler.GetCourseBySlug)

	router.POST("/payments/razorpay/create-order", cfg.PaymentHandler.CreateRazorpayOrder)
	router.POST("/payments/phonepe/initiate", cfg.PaymentHandler.InitiatePhonePe)
	router.POST("/payments/confirm", cfg.PaymentHandler.ConfirmPayment)

	// ===============
	// || Admin     ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AdminMiddleware.RequireAdmin())

	// Course lookups
	protected.GET("/admin/get-course-by-slug", cfg.CourseHandler.AdminGetCourseBySlug)
	protected.GET("/admin/get-course-source", cfg.CourseHandler.AdminGetCourseSource)

	// Mux upload flow
	protected.POST("/mux/create-upload", cfg.VideoHandler.CreateMuxUpload)
	protected.POST("/mux/get-asset", cfg.VideoHandler.GetMuxAsset)
	protected.POST("/admin/delete-asset", cfg.VideoHandler.DeleteMuxAsset)

	// Vimeo upload flow
	protected.POST("/vimeo/create-folder", cfg.VideoHandler.CreateVimeoFolder)
	protected.POST("/vimeo/create-upload", cfg.VideoHandler.CreateVimeoUpload)
	protected.GET("/vimeo/get-video", cfg.VideoHandler.GetVimeoVideo)
	protected.DELETE("/vimeo/delete-video", cfg.VideoHandler.DeleteVimeoVideo)
	protected.PATCH("/vimeo/update-privacy", cfg.VideoHandler.UpdateVimeoPrivacy)

	// Cloudflare Stream (legacy, read-mostly)
	protected.POST("/cf/create-upload", cfg.VideoHandler.CreateCFUpload)
	protected.GET("/cf/get-video", cfg.VideoHandler.GetCFVideo)
	protected.DELETE("/cf/delete-video", cfg.VideoHandler.DeleteCFVideo)

	// Hero slides
	protected.GET("/admin/fetch-hero-slides-new", cfg.HeroSlideHandler.FetchHeroSlides)
	protected.POST("/admin/save-hero-slides-new", cfg.HeroSlideHandler.SaveHeroSlides)

	// Course/lesson CRUD
	protected.POST("/admin/courses", cfg.CourseHandler.CreateCourse)
	protected.PATCH("/admin/courses/:id", cfg.CourseHandler.UpdateCourse)
	protected.DELETE("/admin/courses/:id", cfg.CourseHandler.DeleteCourse)
	protected.POST("/admin/lessons", cfg.LessonHandler.CreateLesson)
	protected.PATCH("/admin/lessons/:id", cfg.LessonHandler.UpdateLesson)
	protected.DELETE("/admin/lessons/:id", cfg.LessonHandler.DeleteLesson)
	protected.POST("/admin/lessons/:id/document", cfg.LessonHandler.AttachDocument)
	protected.POST("/admin/update-lesson-order", cfg.LessonHandler.UpdateLessonOrder)

	return router
}
