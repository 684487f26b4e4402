// Package mux wraps the Mux Video v1 REST API behind the shared backend
// contract. Mux has no playback-id lookup, so deletion scans the paginated
// asset listing for a matching playback id.
package mux

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/video"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
)

const (
	defaultBaseURL    = "https://api.mux.com"
	maxErrorBodyBytes = 1024
	assetPageLimit    = 100
	// Paging through more than this many assets means the catalog outgrew
	// playback-id scanning; bail instead of hammering the API.
	maxAssetPages = 50
)

type Config struct {
	BaseURL     string
	TokenID     string
	TokenSecret string
}

func ResolveConfigFromEnv() Config {
	return Config{
		BaseURL:     strings.TrimSpace(os.Getenv("MUX_BASE_URL")),
		TokenID:     strings.TrimSpace(os.Getenv("MUX_TOKEN_ID")),
		TokenSecret: strings.TrimSpace(os.Getenv("MUX_TOKEN_SECRET")),
	}
}

type Client struct {
	log     *logger.Logger
	cfg     Config
	baseURL string
	http    *http.Client
}

func NewClient(log *logger.Logger, cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		log:     log.With("client", "MuxClient"),
		cfg:     cfg,
		baseURL: strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type muxUpload struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Status  string `json:"status"`
	AssetID string `json:"asset_id"`
}

type muxPlaybackID struct {
	ID     string `json:"id"`
	Policy string `json:"policy"`
}

type muxAsset struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	PlaybackIDs []muxPlaybackID `json:"playback_ids"`
}

func (c *Client) CreateUpload(ctx context.Context, meta video.UploadMetadata) (video.UploadHandle, error) {
	if err := c.checkCredentials(); err != nil {
		return video.UploadHandle{}, err
	}

	body := map[string]any{
		"new_asset_settings": map[string]any{
			"playback_policy": []string{"public"},
		},
		"cors_origin": "*",
	}
	var out struct {
		Data muxUpload `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/video/v1/uploads", body, &out); err != nil {
		return video.UploadHandle{}, fmt.Errorf("mux create upload: %w", err)
	}
	return video.UploadHandle{UploadURL: out.Data.URL, UploadID: out.Data.ID}, nil
}

// GetAsset resolves an upload id to its asset. Returns ErrPending until the
// upload has produced a ready asset, and ErrNotReady when the asset is ready
// but Mux has not assigned playback ids.
func (c *Client) GetAsset(ctx context.Context, uploadID string) (video.Asset, error) {
	if err := c.checkCredentials(); err != nil {
		return video.Asset{}, err
	}

	var up struct {
		Data muxUpload `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/video/v1/uploads/"+uploadID, nil, &up); err != nil {
		return video.Asset{}, fmt.Errorf("mux get upload %q: %w", uploadID, err)
	}
	if up.Data.AssetID == "" {
		return video.Asset{}, video.ErrPending
	}

	var as struct {
		Data muxAsset `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/video/v1/assets/"+up.Data.AssetID, nil, &as); err != nil {
		return video.Asset{}, fmt.Errorf("mux get asset %q: %w", up.Data.AssetID, err)
	}
	if as.Data.Status != "ready" {
		return video.Asset{}, video.ErrPending
	}
	if len(as.Data.PlaybackIDs) == 0 {
		return video.Asset{}, video.ErrNotReady
	}

	ids := make([]string, 0, len(as.Data.PlaybackIDs))
	for _, p := range as.Data.PlaybackIDs {
		ids = append(ids, p.ID)
	}
	return video.Asset{AssetID: as.Data.ID, PlaybackIDs: ids, Status: as.Data.Status}, nil
}

// DeleteAsset deletes the asset owning the given playback id. Mux exposes no
// playback-id lookup, so the asset listing is scanned page by page.
func (c *Client) DeleteAsset(ctx context.Context, playbackID string) error {
	if err := c.checkCredentials(); err != nil {
		return err
	}

	assetID, err := c.findAssetByPlaybackID(ctx, playbackID)
	if err != nil {
		return err
	}
	return c.DeleteAssetByID(ctx, assetID)
}

// DeleteAssetByID deletes by asset id directly, skipping the playback-id scan.
func (c *Client) DeleteAssetByID(ctx context.Context, assetID string) error {
	if err := c.checkCredentials(); err != nil {
		return err
	}
	if err := c.doJSON(ctx, http.MethodDelete, "/video/v1/assets/"+assetID, nil, nil); err != nil {
		return fmt.Errorf("mux delete asset %q: %w", assetID, err)
	}
	return nil
}

// FindAssetByPlaybackID resolves a playback id to its owning asset id so
// callers can pair it with DeleteAssetByID without a second scan.
func (c *Client) FindAssetByPlaybackID(ctx context.Context, playbackID string) (string, error) {
	if err := c.checkCredentials(); err != nil {
		return "", err
	}
	return c.findAssetByPlaybackID(ctx, playbackID)
}

func (c *Client) findAssetByPlaybackID(ctx context.Context, playbackID string) (string, error) {
	for page := 1; page <= maxAssetPages; page++ {
		var out struct {
			Data []muxAsset `json:"data"`
		}
		path := fmt.Sprintf("/video/v1/assets?limit=%d&page=%d", assetPageLimit, page)
		if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
			return "", fmt.Errorf("mux list assets page %d: %w", page, err)
		}
		for _, a := range out.Data {
			for _, p := range a.PlaybackIDs {
				if p.ID == playbackID {
					return a.ID, nil
				}
			}
		}
		if len(out.Data) < assetPageLimit {
			break
		}
	}
	return "", video.ErrNotFound
}

func (c *Client) checkCredentials() error {
	if c.cfg.TokenID == "" || c.cfg.TokenSecret == "" {
		return video.ErrMissingCredentials
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.cfg.TokenID, c.cfg.TokenSecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return video.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("%s %s: status=%d body=%s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
