// Package cfstream wraps the Cloudflare Stream API for the legacy course_cf
// tables. Kept read/delete-capable so old courses keep playing and can be
// retired; no new uploads are authored here.
package cfstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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
	defaultBaseURL    = "https://api.cloudflare.com/client/v4"
	maxErrorBodyBytes = 1024
)

type Config struct {
	BaseURL   string
	AccountID string
	APIToken  string
}

func ResolveConfigFromEnv() Config {
	return Config{
		BaseURL:   strings.TrimSpace(os.Getenv("CF_BASE_URL")),
		AccountID: strings.TrimSpace(os.Getenv("CF_ACCOUNT_ID")),
		APIToken:  strings.TrimSpace(os.Getenv("CF_STREAM_API_TOKEN")),
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
		log:     log.With("client", "CFStreamClient"),
		cfg:     cfg,
		baseURL: strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type cfVideo struct {
	UID    string `json:"uid"`
	Status struct {
		State string `json:"state"`
	} `json:"status"`
	Playback struct {
		HLS string `json:"hls"`
	} `json:"playback"`
	UploadURL string `json:"uploadURL"`
}

type cfEnvelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) CreateUpload(ctx context.Context, meta video.UploadMetadata) (video.UploadHandle, error) {
	if err := c.checkCredentials(); err != nil {
		return video.UploadHandle{}, err
	}

	body := map[string]any{"maxDurationSeconds": 21600}
	var out cfVideo
	path := "/accounts/" + c.cfg.AccountID + "/stream/direct_upload"
	if err := c.doJSON(ctx, http.MethodPost, path, body, &out); err != nil {
		return video.UploadHandle{}, fmt.Errorf("cf stream create upload: %w", err)
	}
	return video.UploadHandle{UploadURL: out.UploadURL, UploadID: out.UID}, nil
}

func (c *Client) GetAsset(ctx context.Context, uid string) (video.Asset, error) {
	if err := c.checkCredentials(); err != nil {
		return video.Asset{}, err
	}

	var out cfVideo
	path := "/accounts/" + c.cfg.AccountID + "/stream/" + uid
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return video.Asset{}, fmt.Errorf("cf stream get video %q: %w", uid, err)
	}
	if out.Status.State != "ready" {
		return video.Asset{}, video.ErrPending
	}
	if out.Playback.HLS == "" {
		return video.Asset{}, video.ErrNotReady
	}
	return video.Asset{AssetID: out.UID, PlaybackIDs: []string{out.Playback.HLS}, Status: out.Status.State}, nil
}

func (c *Client) DeleteAsset(ctx context.Context, uid string) error {
	if err := c.checkCredentials(); err != nil {
		return err
	}

	path := "/accounts/" + c.cfg.AccountID + "/stream/" + uid
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("cf stream delete video %q: %w", uid, err)
	}
	return nil
}

func (c *Client) checkCredentials() error {
	if c.cfg.AccountID == "" || c.cfg.APIToken == "" {
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
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
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

	var env cfEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		// Delete responds with an empty body on some plans.
		if errors.Is(err, io.EOF) && out == nil {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		if len(env.Errors) > 0 {
			return fmt.Errorf("%s %s: cf error %d: %s", method, path, env.Errors[0].Code, env.Errors[0].Message)
		}
		return fmt.Errorf("%s %s: cf request unsuccessful", method, path)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(env.Result, out)
}
