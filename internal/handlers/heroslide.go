package handlers

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/apierr"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/services"
)

type HeroSlideHandler struct {
	log              *logger.Logger
	heroSlideService services.HeroSlideService
}

func NewHeroSlideHandler(log *logger.Logger, heroSlideService services.HeroSlideService) *HeroSlideHandler {
	return &HeroSlideHandler{
		log:              log.With("handler", "HeroSlideHandler"),
		heroSlideService: heroSlideService,
	}
}

func (h *HeroSlideHandler) FetchHeroSlides(c *gin.Context) {
	slides, err := h.heroSlideService.ListSlides(c.Request.Context(), nil)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"slides": slides})
}

type saveHeroSlidesRequest struct {
	Slides []services.HeroSlideInput `json:"slides"`
}

// SaveHeroSlides upserts the submitted batch. The admin UI posts a bare JSON
// array of slides; a {"slides":[...]} wrapper is accepted too.
func (h *HeroSlideHandler) SaveHeroSlides(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, apierr.Validation("unreadable request body: %v", err))
		return
	}

	var inputs []services.HeroSlideInput
	if arrErr := json.Unmarshal(body, &inputs); arrErr != nil {
		var req saveHeroSlidesRequest
		if err := json.Unmarshal(body, &req); err != nil {
			RespondError(c, apierr.Validation("invalid request body: %v", arrErr))
			return
		}
		inputs = req.Slides
	}

	slides, err := h.heroSlideService.SaveSlides(c.Request.Context(), nil, inputs)
	if err != nil {
		h.log.Error("SaveHeroSlides failed", "count", len(inputs), "error", err)
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"slides": slides})
}
