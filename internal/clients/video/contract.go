// Package video defines the uniform contract the per-provider clients
// implement. The wire shapes differ wildly between Mux, Vimeo and Cloudflare
// Stream; callers only ever see this surface.
package video

import (
	"context"
	"errors"
)

// UploadHandle is the ephemeral result of requesting a direct upload: a
// short-lived signed URL plus the opaque id used to poll for the asset.
// Never persisted; the caller stores the resulting asset reference instead.
type UploadHandle struct {
	UploadURL string `json:"uploadUrl"`
	UploadID  string `json:"uploadId"`
}

// Asset is the provider-side processed video. The store only ever keeps a
// reference (playback id or URI), never a copy.
type Asset struct {
	AssetID     string   `json:"assetId"`
	PlaybackIDs []string `json:"playbackIds"`
	Status      string   `json:"status"`
}

type UploadMetadata struct {
	Title    string
	FileName string
	FileSize int64
	// Vimeo folder id to file the video under; ignored by other providers.
	FolderID string
}

var (
	// ErrPending: the asset is still transcoding. Retryable by the caller
	// later, not a failure.
	ErrPending = errors.New("asset still processing")
	// ErrNotReady: the asset exists but playback ids are not assigned yet.
	ErrNotReady = errors.New("asset has no playback ids yet")
	ErrNotFound = errors.New("asset not found")
	// ErrMissingCredentials surfaces as backend_unavailable at the boundary.
	ErrMissingCredentials = errors.New("provider credentials missing")
)

// Backend is the minimal create-upload / get-asset / delete-asset contract
// every provider client satisfies.
type Backend interface {
	CreateUpload(ctx context.Context, meta UploadMetadata) (UploadHandle, error)
	GetAsset(ctx context.Context, uploadID string) (Asset, error)
	DeleteAsset(ctx context.Context, playbackOrVideoID string) error
}
