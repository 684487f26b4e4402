package cfstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/video"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	c := NewClient(log, Config{BaseURL: srv.URL, AccountID: "acc-1", APIToken: "tok"})
	return c, srv
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, success bool, result any) {
	t.Helper()
	raw, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"success": success, "result": json.RawMessage(raw)})
}

func TestCreateUploadMissingCredentials(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	c := NewClient(log, Config{})
	if _, err := c.CreateUpload(context.Background(), video.UploadMetadata{}); !errors.Is(err, video.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestCreateUpload(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/accounts/acc-1/stream/direct_upload" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("unexpected auth header %q", got)
		}
		writeEnvelope(t, w, true, map[string]any{"uid": "vid-1", "uploadURL": "https://upload.cloudflarestream.com/vid-1"})
	}))

	handle, err := c.CreateUpload(context.Background(), video.UploadMetadata{Title: "Intro"})
	if err != nil {
		t.Fatalf("CreateUpload: %v", err)
	}
	if handle.UploadID != "vid-1" || handle.UploadURL != "https://upload.cloudflarestream.com/vid-1" {
		t.Fatalf("unexpected handle %+v", handle)
	}
}

func TestGetAssetStates(t *testing.T) {
	state := "inprogress"
	hls := ""
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, true, map[string]any{
			"uid":      "vid-1",
			"status":   map[string]any{"state": state},
			"playback": map[string]any{"hls": hls},
		})
	}))

	if _, err := c.GetAsset(context.Background(), "vid-1"); !errors.Is(err, video.ErrPending) {
		t.Fatalf("expected ErrPending while encoding, got %v", err)
	}

	state = "ready"
	if _, err := c.GetAsset(context.Background(), "vid-1"); !errors.Is(err, video.ErrNotReady) {
		t.Fatalf("expected ErrNotReady without playback, got %v", err)
	}

	hls = "https://customer.cloudflarestream.com/vid-1/manifest/video.m3u8"
	asset, err := c.GetAsset(context.Background(), "vid-1")
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if asset.AssetID != "vid-1" || len(asset.PlaybackIDs) != 1 || asset.PlaybackIDs[0] != hls {
		t.Fatalf("unexpected asset %+v", asset)
	}
}

func TestGetAssetNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	if _, err := c.GetAsset(context.Background(), "missing"); !errors.Is(err, video.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAssetUnsuccessfulEnvelope(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("unexpected method %s", r.Method)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"errors":  []map[string]any{{"code": 10005, "message": "video not deletable"}},
		})
	}))
	err := c.DeleteAsset(context.Background(), "vid-1")
	if err == nil {
		t.Fatal("expected error from unsuccessful envelope")
	}
}
