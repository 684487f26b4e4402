package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/apierr"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/services"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

const maxDocumentBytes = 50 << 20

type LessonHandler struct {
	log                *logger.Logger
	lessonService      services.LessonService
	lessonOrderService services.LessonOrderService
}

func NewLessonHandler(log *logger.Logger, lessonService services.LessonService, lessonOrderService services.LessonOrderService) *LessonHandler {
	return &LessonHandler{
		log:                log.With("handler", "LessonHandler"),
		lessonService:      lessonService,
		lessonOrderService: lessonOrderService,
	}
}

type createLessonRequest struct {
	CourseID    string `json:"course_id" binding:"required"`
	Source      string `json:"source" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	VideoRef    string `json:"video_ref" binding:"required"`
}

func (h *LessonHandler) CreateLesson(c *gin.Context) {
	var req createLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("course_id, source, title and video_ref are required"))
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		RespondError(c, apierr.Validation("course_id must be a uuid"))
		return
	}

	lesson, err := h.lessonService.CreateLesson(c.Request.Context(), nil, services.CreateLessonInput{
		CourseID:    courseID,
		Source:      types.CourseSource(req.Source),
		Title:       req.Title,
		Description: req.Description,
		VideoRef:    req.VideoRef,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

type updateLessonRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	VideoRef    *string `json:"video_ref"`
}

func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	source, lessonID, ok := lessonRefFromRequest(c)
	if !ok {
		return
	}
	var req updateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}

	lesson, err := h.lessonService.UpdateLesson(c.Request.Context(), nil, source, lessonID, services.UpdateLessonInput{
		Title:       req.Title,
		Description: req.Description,
		VideoRef:    req.VideoRef,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, lesson)
}

func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	source, lessonID, ok := lessonRefFromRequest(c)
	if !ok {
		return
	}
	warning, err := h.lessonService.DeleteLesson(c.Request.Context(), nil, source, lessonID)
	if err != nil {
		RespondError(c, err)
		return
	}
	body := gin.H{"success": true}
	if warning != "" {
		body["warning"] = warning
	}
	RespondOK(c, body)
}

// AttachDocument uploads a supporting file (multipart field "document") and
// stores its public URL on the lesson.
func (h *LessonHandler) AttachDocument(c *gin.Context) {
	source, lessonID, ok := lessonRefFromRequest(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("document")
	if err != nil {
		RespondError(c, apierr.Validation("a document file is required"))
		return
	}
	if fileHeader.Size > maxDocumentBytes {
		RespondError(c, apierr.Validation("document exceeds %d bytes", maxDocumentBytes))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, apierr.Validation("unreadable document upload: %v", err))
		return
	}
	defer f.Close()

	lesson, err := h.lessonService.AttachDocument(c.Request.Context(), nil, source, lessonID, fileHeader.Filename, f)
	if err != nil {
		h.log.Error("AttachDocument failed", "lesson_id", lessonID, "error", err)
		RespondError(c, err)
		return
	}
	RespondOK(c, lesson)
}

// Backend is optional: without it each entry is resolved across both lesson
// tables.
type updateLessonOrderRequest struct {
	Backend string                      `json:"backend"`
	Lessons []services.LessonOrderEntry `json:"lessons" binding:"required"`
}

func (h *LessonHandler) UpdateLessonOrder(c *gin.Context) {
	var req updateLessonOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("lessons list is required"))
		return
	}

	updated, err := h.lessonOrderService.UpdateOrder(c.Request.Context(), types.CourseSource(req.Backend), req.Lessons)
	if err != nil {
		h.log.Error("UpdateLessonOrder failed", "backend", req.Backend, "updated", updated, "error", err)
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "lesson order updated", "updated": updated})
}

func lessonRefFromRequest(c *gin.Context) (types.CourseSource, uuid.UUID, bool) {
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.Validation("lesson id must be a uuid"))
		return "", uuid.Nil, false
	}
	source := types.CourseSource(c.Query("source"))
	if source != types.SourceMux && source != types.SourceVimeo {
		RespondError(c, apierr.Validation("source query must be mux or vimeo"))
		return "", uuid.Nil, false
	}
	return source, lessonID, true
}
