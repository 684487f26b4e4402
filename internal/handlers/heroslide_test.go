package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/services"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

type fakeHeroSlideService struct {
	saved [][]services.HeroSlideInput
}

func (f *fakeHeroSlideService) ListSlides(ctx context.Context, tx *gorm.DB) ([]*types.HeroSlide, error) {
	return []*types.HeroSlide{}, nil
}

func (f *fakeHeroSlideService) SaveSlides(ctx context.Context, tx *gorm.DB, inputs []services.HeroSlideInput) ([]*types.HeroSlide, error) {
	f.saved = append(f.saved, inputs)
	out := make([]*types.HeroSlide, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, &types.HeroSlide{Heading: in.Heading})
	}
	return out, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func newHeroSlideRouter(t *testing.T) (*gin.Engine, *fakeHeroSlideService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := &fakeHeroSlideService{}
	h := NewHeroSlideHandler(testLogger(t), svc)
	r := gin.New()
	r.POST("/admin/save-hero-slides-new", h.SaveHeroSlides)
	return r, svc
}

func TestSaveHeroSlidesAcceptsBareArray(t *testing.T) {
	r, svc := newHeroSlideRouter(t)

	body := `[{"id":"tmp-1","heading":"Hero"}]`
	req := httptest.NewRequest(http.MethodPost, "/admin/save-hero-slides-new", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if len(svc.saved) != 1 || len(svc.saved[0]) != 1 || svc.saved[0][0].Heading != "Hero" {
		t.Fatalf("service received %+v", svc.saved)
	}
}

func TestSaveHeroSlidesAcceptsWrapperObject(t *testing.T) {
	r, svc := newHeroSlideRouter(t)

	body := `{"slides":[{"id":"tmp-1","heading":"Hero"},{"id":"tmp-2","heading":"Second"}]}`
	req := httptest.NewRequest(http.MethodPost, "/admin/save-hero-slides-new", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if len(svc.saved) != 1 || len(svc.saved[0]) != 2 {
		t.Fatalf("service received %+v", svc.saved)
	}
}

func TestSaveHeroSlidesRejectsMalformedJSON(t *testing.T) {
	r, svc := newHeroSlideRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/save-hero-slides-new", strings.NewReader(`{"slides":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Code != "validation" {
		t.Fatalf("code=%q, want validation", resp.Code)
	}
	if len(svc.saved) != 0 {
		t.Fatalf("service was called with %+v", svc.saved)
	}
}
