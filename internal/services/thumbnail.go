package services

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"os"
	"strings"
	"time"
	"unicode"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/gcs"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
)

const (
	thumbWidth  = 1280
	thumbHeight = 720
)

// Fallback card backgrounds; the slot is picked by hashing the title so the
// same course always renders the same color.
var thumbPalette = []color.NRGBA{
	{R: 0x1E, G: 0x3A, B: 0x5F, A: 0xFF},
	{R: 0x4A, G: 0x2E, B: 0x6B, A: 0xFF},
	{R: 0x0F, G: 0x52, B: 0x40, A: 0xFF},
	{R: 0x7A, G: 0x3B, B: 0x2E, A: 0xFF},
	{R: 0x2E, G: 0x4A, B: 0x62, A: 0xFF},
	{R: 0x5C, G: 0x3A, B: 0x14, A: 0xFF},
}

type ThumbnailService interface {
	// GenerateAndUpload renders the default initials card for a course and
	// uploads it, returning the public URL.
	GenerateAndUpload(ctx context.Context, courseID uuid.UUID, title string) (string, error)
	// ProcessAndUpload center-crops, resizes and re-encodes an admin-supplied
	// image, uploads it and returns the public URL.
	ProcessAndUpload(ctx context.Context, courseID uuid.UUID, raw []byte) (string, error)
}

type thumbnailService struct {
	log           *logger.Logger
	bucketService gcs.BucketService
	fontFace      font.Face
}

func NewThumbnailService(log *logger.Logger, bucketService gcs.BucketService) (ThumbnailService, error) {
	serviceLog := log.With("service", "ThumbnailService")

	fontPath := strings.TrimSpace(os.Getenv("THUMBNAIL_FONT"))
	if fontPath == "" {
		return nil, fmt.Errorf("env var THUMBNAIL_FONT is empty")
	}
	serviceLog.Info("loading thumbnail font", "font", fontPath)

	face, err := loadFontFace(fontPath, 280)
	if err != nil {
		return nil, fmt.Errorf("could not load thumbnail font: %w", err)
	}

	return &thumbnailService{
		log:           serviceLog,
		bucketService: bucketService,
		fontFace:      face,
	}, nil
}

func (ts *thumbnailService) GenerateAndUpload(ctx context.Context, courseID uuid.UUID, title string) (string, error) {
	buf, err := ts.render(title)
	if err != nil {
		return "", err
	}

	// Versioned key so a regenerated thumbnail is never served stale by a CDN.
	key := fmt.Sprintf("course_thumbnail/%s/%d.png", courseID.String(), time.Now().UnixNano())
	if err := ts.bucketService.UploadFile(ctx, gcs.BucketCategoryThumbnail, key, bytes.NewReader(buf.Bytes())); err != nil {
		return "", fmt.Errorf("upload thumbnail: %w", err)
	}
	return ts.bucketService.GetPublicURL(gcs.BucketCategoryThumbnail, key), nil
}

func (ts *thumbnailService) ProcessAndUpload(ctx context.Context, courseID uuid.UUID, raw []byte) (string, error) {
	processed, err := processUploadedThumbnail(raw, thumbWidth, thumbHeight)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("course_thumbnail/%s/%d.png", courseID.String(), time.Now().UnixNano())
	if err := ts.bucketService.UploadFile(ctx, gcs.BucketCategoryThumbnail, key, bytes.NewReader(processed.Bytes())); err != nil {
		return "", fmt.Errorf("upload thumbnail: %w", err)
	}
	return ts.bucketService.GetPublicURL(gcs.BucketCategoryThumbnail, key), nil
}

func (ts *thumbnailService) render(title string) (bytes.Buffer, error) {
	dc := gg.NewContext(thumbWidth, thumbHeight)

	dc.SetColor(pickThumbColor(title))
	dc.DrawRectangle(0, 0, thumbWidth, thumbHeight)
	dc.Fill()

	initials := computeInitials(title)

	dc.SetFontFace(ts.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(thumbWidth)/2, float64(thumbHeight)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2), cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

func processUploadedThumbnail(raw []byte, width, height int) (bytes.Buffer, error) {
	var out bytes.Buffer

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return out, fmt.Errorf("decode image: %w", err)
	}

	// Center-crop to the 16:9 target aspect before resizing.
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	cropW, cropH := w, h
	if w*height > h*width {
		cropW = h * width / height
	} else {
		cropH = w * height / width
	}
	x0 := b.Min.X + (w-cropW)/2
	y0 := b.Min.Y + (h-cropH)/2

	cropRect := image.Rect(0, 0, cropW, cropH)
	cropped := image.NewRGBA(cropRect)
	draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	dc := gg.NewContext(width, height)
	dc.DrawImage(dst, 0, 0)
	if err := dc.EncodePNG(&out); err != nil {
		return out, fmt.Errorf("encode png: %w", err)
	}
	return out, nil
}

// computeInitials takes the first letter of up to the first two words.
func computeInitials(title string) string {
	fields := strings.Fields(title)
	var sb strings.Builder
	for _, f := range fields {
		for _, r := range f {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				sb.WriteRune(unicode.ToUpper(r))
			}
			break
		}
		if sb.Len() >= 2 {
			break
		}
	}
	if sb.Len() == 0 {
		return "?"
	}
	return sb.String()
}

func pickThumbColor(title string) color.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(title))))
	return thumbPalette[int(h.Sum32())%len(thumbPalette)]
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{
		Size: size,
	})
	return face, nil
}
