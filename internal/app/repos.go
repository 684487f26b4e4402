package app

import (
	"gorm.io/gorm"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/repos"
)

type Repos struct {
	CourseMux   repos.CourseMuxRepo
	CourseVimeo repos.CourseVimeoRepo
	CourseCF    repos.CourseCFRepo
	LessonMux   repos.LessonMuxRepo
	LessonVimeo repos.LessonVimeoRepo
	LessonCF    repos.LessonCFRepo
	HeroSlide   repos.HeroSlideRepo
	Purchase    repos.PurchaseRepo
	AdminUser   repos.AdminUserRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		CourseMux:   repos.NewCourseMuxRepo(db, log),
		CourseVimeo: repos.NewCourseVimeoRepo(db, log),
		CourseCF:    repos.NewCourseCFRepo(db, log),
		LessonMux:   repos.NewLessonMuxRepo(db, log),
		LessonVimeo: repos.NewLessonVimeoRepo(db, log),
		LessonCF:    repos.NewLessonCFRepo(db, log),
		HeroSlide:   repos.NewHeroSlideRepo(db, log),
		Purchase:    repos.NewPurchaseRepo(db, log),
		AdminUser:   repos.NewAdminUserRepo(db, log),
	}
}
