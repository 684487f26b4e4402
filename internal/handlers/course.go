package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/apierr"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/services"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

// maxThumbnailBytes caps admin thumbnail uploads.
const maxThumbnailBytes = 10 << 20

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
	resolver      services.ResolverService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService, resolver services.ResolverService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
		resolver:      resolver,
	}
}

// ListCourses serves the public catalog. An empty backend filter returns the
// union of all three course tables.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	source := types.CourseSource(c.Query("backend"))
	courses, err := h.courseService.ListCourses(c.Request.Context(), nil, source)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"courses": courses})
}

func (h *CourseHandler) GetCourseBySlug(c *gin.Context) {
	detail, err := h.courseService.GetCourseBySlug(c.Request.Context(), nil, c.Query("slug"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, detail)
}

// AdminGetCourseBySlug tells the admin UI which backend owns a slug before it
// opens the matching editor.
func (h *CourseHandler) AdminGetCourseBySlug(c *gin.Context) {
	detail, err := h.courseService.GetCourseBySlug(c.Request.Context(), nil, c.Query("slug"))
	if apierr.IsCode(err, apierr.CodeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "exists": false})
		return
	}
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"id":     detail.ID,
		"title":  detail.Title,
		"slug":   detail.Slug,
		"source": detail.Source,
		"exists": true,
	})
}

func (h *CourseHandler) AdminGetCourseSource(c *gin.Context) {
	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		RespondError(c, apierr.Validation("id must be a uuid"))
		return
	}
	ref, err := h.resolver.ResolveByID(c.Request.Context(), nil, id)
	if apierr.IsCode(err, apierr.CodeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "exists": false})
		return
	}
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"source": ref.Source, "exists": true})
}

type createCourseRequest struct {
	Source      string `form:"source" binding:"required"`
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	Category    string `form:"category"`
	Price       int64  `form:"price"`
}

// CreateCourse accepts a multipart form so the admin UI can attach a custom
// thumbnail image in the same request.
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBind(&req); err != nil {
		RespondError(c, apierr.Validation("source and title are required"))
		return
	}

	thumbnail, err := readThumbnail(c)
	if err != nil {
		RespondError(c, err)
		return
	}

	summary, err := h.courseService.CreateCourse(c.Request.Context(), nil, services.CreateCourseInput{
		Source:      types.CourseSource(req.Source),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		h.log.Error("CreateCourse failed", "title", req.Title, "error", err)
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, summary)
}

type updateCourseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Price       *int64  `json:"price"`
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	ref, ok := courseRefFromRequest(c)
	if !ok {
		return
	}
	var req updateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}

	summary, err := h.courseService.UpdateCourse(c.Request.Context(), nil, ref, services.UpdateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, summary)
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	ref, ok := courseRefFromRequest(c)
	if !ok {
		return
	}
	warnings, err := h.courseService.DeleteCourse(c.Request.Context(), ref)
	if err != nil {
		h.log.Error("DeleteCourse failed", "course_id", ref.ID, "error", err)
		RespondError(c, err)
		return
	}
	body := gin.H{"success": true}
	if len(warnings) > 0 {
		body["warnings"] = warnings
	}
	RespondOK(c, body)
}

// courseRefFromRequest builds a CourseRef from the :id param and the source
// query. A false return means the response was already written.
func courseRefFromRequest(c *gin.Context) (types.CourseRef, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.Validation("course id must be a uuid"))
		return types.CourseRef{}, false
	}
	source := types.CourseSource(c.Query("source"))
	if !source.Valid() {
		RespondError(c, apierr.Validation("source query must be mux, vimeo or cf"))
		return types.CourseRef{}, false
	}
	return types.CourseRef{Source: source, ID: id}, true
}

func readThumbnail(c *gin.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("thumbnail")
	if err != nil {
		// No thumbnail attached; a default one is rendered downstream.
		return nil, nil
	}
	if fileHeader.Size > maxThumbnailBytes {
		return nil, apierr.Validation("thumbnail exceeds %d bytes", maxThumbnailBytes)
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, apierr.Validation("unreadable thumbnail upload: %v", err)
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, apierr.Validation("unreadable thumbnail upload: %v", err)
	}
	return raw, nil
}
