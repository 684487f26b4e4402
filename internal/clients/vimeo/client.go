// Package vimeo wraps the Vimeo v3 REST API. Uploads use the tus approach:
// the API returns an upload_link the browser pushes bytes to directly.
package vimeo

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
	defaultBaseURL    = "https://api.vimeo.com"
	acceptHeader      = "application/vnd.vimeo.*+json;version=3.4"
	maxErrorBodyBytes = 1024
)

type Config struct {
	BaseURL     string
	AccessToken string
}

func ResolveConfigFromEnv() Config {
	return Config{
		BaseURL:     strings.TrimSpace(os.Getenv("VIMEO_BASE_URL")),
		AccessToken: strings.TrimSpace(os.Getenv("VIMEO_ACCESS_TOKEN")),
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
		log:     log.With("client", "VimeoClient"),
		cfg:     cfg,
		baseURL: strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type Folder struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

type vimeoVideo struct {
	URI       string `json:"uri"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Transcode struct {
		Status string `json:"status"`
	} `json:"transcode"`
	Upload struct {
		Approach   string `json:"approach"`
		UploadLink string `json:"upload_link"`
	} `json:"upload"`
	PlayerEmbedURL string `json:"player_embed_url"`
}

func (c *Client) CreateFolder(ctx context.Context, name string) (Folder, error) {
	if err := c.checkCredentials(); err != nil {
		return Folder{}, err
	}

	var out Folder
	body := map[string]any{"name": name}
	if err := c.doJSON(ctx, http.MethodPost, "/me/projects", body, &out); err != nil {
		return Folder{}, fmt.Errorf("vimeo create folder %q: %w", name, err)
	}
	return out, nil
}

func (c *Client) CreateUpload(ctx context.Context, meta video.UploadMetadata) (video.UploadHandle, error) {
	if err := c.checkCredentials(); err != nil {
		return video.UploadHandle{}, err
	}

	body := map[string]any{
		"name": meta.FileName,
		"upload": map[string]any{
			"approach": "tus",
			"size":     meta.FileSize,
		},
	}
	var out vimeoVideo
	if err := c.doJSON(ctx, http.MethodPost, "/me/videos", body, &out); err != nil {
		return video.UploadHandle{}, fmt.Errorf("vimeo create upload: %w", err)
	}

	videoID := lastPathSegment(out.URI)
	if meta.FolderID != "" {
		// Filing under the course folder is best-effort: the upload handle is
		// already minted and the video plays either way.
		path := fmt.Sprintf("/me/projects/%s/videos/%s", meta.FolderID, videoID)
		if err := c.doJSON(ctx, http.MethodPut, path, nil, nil); err != nil {
			c.log.Warn("Failed to move video into folder", "video_uri", out.URI, "folder_id", meta.FolderID, "error", err)
		}
	}

	return video.UploadHandle{UploadURL: out.Upload.UploadLink, UploadID: videoID}, nil
}

// GetAsset reports the transcode state of a video. The video URI doubles as
// the asset id on Vimeo; there is no separate playback id.
func (c *Client) GetAsset(ctx context.Context, videoID string) (video.Asset, error) {
	if err := c.checkCredentials(); err != nil {
		return video.Asset{}, err
	}

	var out vimeoVideo
	if err := c.doJSON(ctx, http.MethodGet, "/videos/"+videoID, nil, &out); err != nil {
		return video.Asset{}, fmt.Errorf("vimeo get video %q: %w", videoID, err)
	}
	switch out.Transcode.Status {
	case "complete":
	case "in_progress", "":
		return video.Asset{}, video.ErrPending
	default:
		return video.Asset{}, fmt.Errorf("vimeo transcode failed for %q: status=%s", videoID, out.Transcode.Status)
	}
	if out.PlayerEmbedURL == "" {
		return video.Asset{}, video.ErrNotReady
	}
	return video.Asset{
		AssetID:     out.URI,
		PlaybackIDs: []string{out.PlayerEmbedURL},
		Status:      out.Status,
	}, nil
}

func (c *Client) DeleteAsset(ctx context.Context, videoID string) error {
	if err := c.checkCredentials(); err != nil {
		return err
	}

	if err := c.doJSON(ctx, http.MethodDelete, "/videos/"+videoID, nil, nil); err != nil {
		return fmt.Errorf("vimeo delete video %q: %w", videoID, err)
	}
	return nil
}

// UpdatePrivacy applies the platform-wide lesson policy: embed-only playback,
// no downloads, no public view, no comments. Every uploaded lesson gets this.
func (c *Client) UpdatePrivacy(ctx context.Context, videoID string) error {
	if err := c.checkCredentials(); err != nil {
		return err
	}

	body := map[string]any{
		"privacy": map[string]any{
			"view":     "disable",
			"embed":    "whitelist",
			"download": false,
			"comments": "nobody",
			"add":      false,
		},
	}
	if err := c.doJSON(ctx, http.MethodPatch, "/videos/"+videoID, body, nil); err != nil {
		return fmt.Errorf("vimeo update privacy %q: %w", videoID, err)
	}
	return nil
}

func (c *Client) checkCredentials() error {
	if c.cfg.AccessToken == "" {
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
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Accept", acceptHeader)
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

func lastPathSegment(uri string) string {
	trimmed := strings.TrimRight(uri, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
