package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/apierr"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/services"
)

// VideoHandler fronts the admin upload flow for all three providers. The mux
// flow is asymmetric on purpose: uploads are created against upload ids but
// assets resolve to playback ids, and the UI polls get-asset until the
// transcode finishes.
type VideoHandler struct {
	log          *logger.Logger
	videoService services.VideoService
}

func NewVideoHandler(log *logger.Logger, videoService services.VideoService) *VideoHandler {
	return &VideoHandler{
		log:          log.With("handler", "VideoHandler"),
		videoService: videoService,
	}
}

type createMuxUploadRequest struct {
	Title string `json:"title"`
}

func (h *VideoHandler) CreateMuxUpload(c *gin.Context) {
	var req createMuxUploadRequest
	_ = c.ShouldBindJSON(&req)

	handle, err := h.videoService.CreateMuxUpload(c.Request.Context(), req.Title)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"uploadUrl": handle.UploadURL,
		"uploadId":  handle.UploadID,
		"assetId":   nil,
	})
}

type getMuxAssetRequest struct {
	UploadID string `json:"uploadId" binding:"required"`
}

func (h *VideoHandler) GetMuxAsset(c *gin.Context) {
	var req getMuxAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("uploadId is required"))
		return
	}
	status, err := h.videoService.GetMuxAsset(c.Request.Context(), req.UploadID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"assetId": status.AssetID, "playbackUrl": status.PlaybackURL})
}

type deleteMuxAssetRequest struct {
	PlaybackID string `json:"playbackId" binding:"required"`
}

func (h *VideoHandler) DeleteMuxAsset(c *gin.Context) {
	var req deleteMuxAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("playbackId is required"))
		return
	}
	assetID, err := h.videoService.DeleteMuxAsset(c.Request.Context(), req.PlaybackID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true, "assetId": assetID})
}

type createVimeoFolderRequest struct {
	FolderName string `json:"folderName" binding:"required"`
}

func (h *VideoHandler) CreateVimeoFolder(c *gin.Context) {
	var req createVimeoFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("folderName is required"))
		return
	}
	folder, err := h.videoService.CreateVimeoFolder(c.Request.Context(), req.FolderName)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, folder)
}

type createVimeoUploadRequest struct {
	FileName string `json:"fileName" binding:"required"`
	FileSize int64  `json:"fileSize" binding:"required"`
	FolderID string `json:"folderId"`
}

func (h *VideoHandler) CreateVimeoUpload(c *gin.Context) {
	var req createVimeoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("fileName and fileSize are required"))
		return
	}
	handle, err := h.videoService.CreateVimeoUpload(c.Request.Context(), req.FileName, req.FileSize, req.FolderID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"uploadUrl": handle.UploadURL, "videoUri": handle.UploadID})
}

func (h *VideoHandler) GetVimeoVideo(c *gin.Context) {
	status, err := h.videoService.GetVimeoVideo(c.Request.Context(), c.Query("videoId"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, status)
}

func (h *VideoHandler) DeleteVimeoVideo(c *gin.Context) {
	if err := h.videoService.DeleteVimeoVideo(c.Request.Context(), c.Query("videoId")); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

type updateVimeoPrivacyRequest struct {
	VideoID string `json:"videoId" binding:"required"`
}

func (h *VideoHandler) UpdateVimeoPrivacy(c *gin.Context) {
	var req updateVimeoPrivacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("videoId is required"))
		return
	}
	if err := h.videoService.UpdateVimeoPrivacy(c.Request.Context(), req.VideoID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (h *VideoHandler) CreateCFUpload(c *gin.Context) {
	handle, err := h.videoService.CreateCFUpload(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"uploadUrl": handle.UploadURL, "uid": handle.UploadID})
}

func (h *VideoHandler) GetCFVideo(c *gin.Context) {
	status, err := h.videoService.GetCFVideo(c.Request.Context(), c.Query("uid"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, status)
}

func (h *VideoHandler) DeleteCFVideo(c *gin.Context) {
	if err := h.videoService.DeleteCFVideo(c.Request.Context(), c.Query("uid")); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
