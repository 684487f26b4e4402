package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/apierr"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/video"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/vimeo"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
)

// VideoStatus is what the admin upload flow polls for.
type VideoStatus struct {
	Ready       bool   `json:"ready"`
	AssetID     string `json:"assetId"`
	PlaybackURL string `json:"playbackUrl"`
}

// VideoService fronts the three provider clients for the admin upload flow.
// All errors cross the boundary as the shared error taxonomy: a provider that
// is still transcoding is NotFound (the caller polls), a provider that is down
// or unconfigured is BackendUnavailable.
type VideoService interface {
	CreateMuxUpload(ctx context.Context, title string) (video.UploadHandle, error)
	GetMuxAsset(ctx context.Context, uploadID string) (VideoStatus, error)
	DeleteMuxAsset(ctx context.Context, playbackID string) (string, error)

	CreateVimeoFolder(ctx context.Context, name string) (vimeo.Folder, error)
	CreateVimeoUpload(ctx context.Context, fileName string, fileSize int64, folderID string) (video.UploadHandle, error)
	GetVimeoVideo(ctx context.Context, videoID string) (VideoStatus, error)
	DeleteVimeoVideo(ctx context.Context, videoID string) error
	UpdateVimeoPrivacy(ctx context.Context, videoID string) error

	CreateCFUpload(ctx context.Context) (video.UploadHandle, error)
	GetCFVideo(ctx context.Context, uid string) (VideoStatus, error)
	DeleteCFVideo(ctx context.Context, uid string) error
}

type muxAssetFinder interface {
	FindAssetByPlaybackID(ctx context.Context, playbackID string) (string, error)
	DeleteAssetByID(ctx context.Context, assetID string) error
}

type videoService struct {
	log          *logger.Logger
	muxBackend   video.Backend
	muxFinder    muxAssetFinder
	vimeoBackend video.Backend
	vimeoExtras  *vimeo.Client
	cfBackend    video.Backend
}

func NewVideoService(
	baseLog *logger.Logger,
	muxBackend video.Backend,
	muxFinder muxAssetFinder,
	vimeoBackend video.Backend,
	vimeoExtras *vimeo.Client,
	cfBackend video.Backend,
) VideoService {
	return &videoService{
		log:          baseLog.With("service", "VideoService"),
		muxBackend:   muxBackend,
		muxFinder:    muxFinder,
		vimeoBackend: vimeoBackend,
		vimeoExtras:  vimeoExtras,
		cfBackend:    cfBackend,
	}
}

// MuxPlaybackURL derives the HLS manifest URL from a Mux playback id.
func MuxPlaybackURL(playbackID string) string {
	if playbackID == "" {
		return ""
	}
	return fmt.Sprintf("https://stream.mux.com/%s.m3u8", playbackID)
}

// VimeoPlayerURL derives the embeddable player URL from a Vimeo video URI
// such as "/videos/123456789".
func VimeoPlayerURL(videoURI string) string {
	if videoURI == "" {
		return ""
	}
	id := videoURI
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}
	return fmt.Sprintf("https://player.vimeo.com/video/%s", id)
}

// CFPlaybackURL derives the embed URL for a legacy Cloudflare Stream uid.
func CFPlaybackURL(uid string) string {
	if uid == "" {
		return ""
	}
	if strings.HasPrefix(uid, "https://") {
		return uid
	}
	return fmt.Sprintf("https://iframe.videodelivery.net/%s", uid)
}

func (vs *videoService) CreateMuxUpload(ctx context.Context, title string) (video.UploadHandle, error) {
	handle, err := vs.muxBackend.CreateUpload(ctx, video.UploadMetadata{Title: title})
	if err != nil {
		return video.UploadHandle{}, apierr.BackendUnavailable("mux", err)
	}
	return handle, nil
}

func (vs *videoService) GetMuxAsset(ctx context.Context, uploadID string) (VideoStatus, error) {
	if uploadID == "" {
		return VideoStatus{}, apierr.Validation("uploadId is required")
	}
	asset, err := vs.muxBackend.GetAsset(ctx, uploadID)
	switch {
	case errors.Is(err, video.ErrPending), errors.Is(err, video.ErrNotReady):
		return VideoStatus{}, apierr.NotFound("asset for upload %q is not ready yet", uploadID)
	case errors.Is(err, video.ErrNotFound):
		return VideoStatus{}, apierr.NotFound("no upload %q", uploadID)
	case err != nil:
		return VideoStatus{}, apierr.BackendUnavailable("mux", err)
	}
	playback := ""
	if len(asset.PlaybackIDs) > 0 {
		playback = MuxPlaybackURL(asset.PlaybackIDs[0])
	}
	return VideoStatus{Ready: true, AssetID: asset.AssetID, PlaybackURL: playback}, nil
}

// DeleteMuxAsset resolves the asset id behind a playback id, then deletes by
// that id. Mux has no playback-id lookup, so the resolve step is a paginated
// scan; resolving once and deleting by asset id keeps it to a single scan.
func (vs *videoService) DeleteMuxAsset(ctx context.Context, playbackID string) (string, error) {
	if playbackID == "" {
		return "", apierr.Validation("playbackId is required")
	}
	if vs.muxFinder == nil {
		if err := vs.muxBackend.DeleteAsset(ctx, playbackID); err != nil {
			if errors.Is(err, video.ErrNotFound) {
				return "", apierr.NotFound("no mux asset with playback id %q", playbackID)
			}
			return "", apierr.BackendUnavailable("mux", err)
		}
		return playbackID, nil
	}

	assetID, err := vs.muxFinder.FindAssetByPlaybackID(ctx, playbackID)
	if errors.Is(err, video.ErrNotFound) {
		return "", apierr.NotFound("no mux asset with playback id %q", playbackID)
	}
	if err != nil {
		return "", apierr.BackendUnavailable("mux", err)
	}
	if err := vs.muxFinder.DeleteAssetByID(ctx, assetID); err != nil {
		if errors.Is(err, video.ErrNotFound) {
			return "", apierr.NotFound("no mux asset with playback id %q", playbackID)
		}
		return "", apierr.BackendUnavailable("mux", err)
	}
	return assetID, nil
}

func (vs *videoService) CreateVimeoFolder(ctx context.Context, name string) (vimeo.Folder, error) {
	if name == "" {
		return vimeo.Folder{}, apierr.Validation("folderName is required")
	}
	folder, err := vs.vimeoExtras.CreateFolder(ctx, name)
	if err != nil {
		return vimeo.Folder{}, apierr.BackendUnavailable("vimeo", err)
	}
	return folder, nil
}

func (vs *videoService) CreateVimeoUpload(ctx context.Context, fileName string, fileSize int64, folderID string) (video.UploadHandle, error) {
	if fileName == "" || fileSize <= 0 {
		return video.UploadHandle{}, apierr.Validation("fileName and a positive fileSize are required")
	}
	handle, err := vs.vimeoBackend.CreateUpload(ctx, video.UploadMetadata{
		FileName: fileName,
		FileSize: fileSize,
		FolderID: folderID,
	})
	if err != nil {
		return video.UploadHandle{}, apierr.BackendUnavailable("vimeo", err)
	}
	return handle, nil
}

func (vs *videoService) GetVimeoVideo(ctx context.Context, videoID string) (VideoStatus, error) {
	if videoID == "" {
		return VideoStatus{}, apierr.Validation("videoId is required")
	}
	asset, err := vs.vimeoBackend.GetAsset(ctx, videoID)
	switch {
	case errors.Is(err, video.ErrPending), errors.Is(err, video.ErrNotReady):
		return VideoStatus{}, apierr.NotFound("vimeo video %q is not ready yet", videoID)
	case errors.Is(err, video.ErrNotFound):
		return VideoStatus{}, apierr.NotFound("no vimeo video %q", videoID)
	case err != nil:
		return VideoStatus{}, apierr.BackendUnavailable("vimeo", err)
	}
	playback := ""
	if len(asset.PlaybackIDs) > 0 {
		playback = asset.PlaybackIDs[0]
	}
	return VideoStatus{Ready: true, AssetID: asset.AssetID, PlaybackURL: playback}, nil
}

func (vs *videoService) DeleteVimeoVideo(ctx context.Context, videoID string) error {
	if videoID == "" {
		return apierr.Validation("videoId is required")
	}
	if err := vs.vimeoBackend.DeleteAsset(ctx, videoID); err != nil {
		if errors.Is(err, video.ErrNotFound) {
			return apierr.NotFound("no vimeo video %q", videoID)
		}
		return apierr.BackendUnavailable("vimeo", err)
	}
	return nil
}

func (vs *videoService) UpdateVimeoPrivacy(ctx context.Context, videoID string) error {
	if videoID == "" {
		return apierr.Validation("videoId is required")
	}
	if err := vs.vimeoExtras.UpdatePrivacy(ctx, videoID); err != nil {
		if errors.Is(err, video.ErrNotFound) {
			return apierr.NotFound("no vimeo video %q", videoID)
		}
		return apierr.BackendUnavailable("vimeo", err)
	}
	return nil
}

func (vs *videoService) CreateCFUpload(ctx context.Context) (video.UploadHandle, error) {
	handle, err := vs.cfBackend.CreateUpload(ctx, video.UploadMetadata{})
	if err != nil {
		return video.UploadHandle{}, apierr.BackendUnavailable("cloudflare", err)
	}
	return handle, nil
}

func (vs *videoService) GetCFVideo(ctx context.Context, uid string) (VideoStatus, error) {
	if uid == "" {
		return VideoStatus{}, apierr.Validation("uid is required")
	}
	asset, err := vs.cfBackend.GetAsset(ctx, uid)
	switch {
	case errors.Is(err, video.ErrPending), errors.Is(err, video.ErrNotReady):
		return VideoStatus{}, apierr.NotFound("cf video %q is not ready yet", uid)
	case errors.Is(err, video.ErrNotFound):
		return VideoStatus{}, apierr.NotFound("no cf video %q", uid)
	case err != nil:
		return VideoStatus{}, apierr.BackendUnavailable("cloudflare", err)
	}
	playback := ""
	if len(asset.PlaybackIDs) > 0 {
		playback = asset.PlaybackIDs[0]
	}
	return VideoStatus{Ready: true, AssetID: asset.AssetID, PlaybackURL: playback}, nil
}

func (vs *videoService) DeleteCFVideo(ctx context.Context, uid string) error {
	if uid == "" {
		return apierr.Validation("uid is required")
	}
	if err := vs.cfBackend.DeleteAsset(ctx, uid); err != nil {
		if errors.Is(err, video.ErrNotFound) {
			return apierr.NotFound("no cf video %q", uid)
		}
		return apierr.BackendUnavailable("cloudflare", err)
	}
	return nil
}
