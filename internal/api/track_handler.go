package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/service"
)

// TrackHandler serves white-noise tracks.
type TrackHandler struct {
	trackService service.TrackService
}

func NewTrackHandler(trackService service.TrackService) *TrackHandler {
	return &TrackHandler{trackService: trackService}
}

// List godoc
// @Summary White-noise tracks with streaming URLs
// @Tags WhiteNoise
// @Produce json
// @Success 200 {array} model.Track
// @Router /white-noise [get]
func (h *TrackHandler) List(c *gin.Context) {
	tracks, err := h.trackService.List(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, "list tracks", err)
		return
	}
	c.JSON(http.StatusOK, tracks)
}

// RequestUpload godoc
// @Summary Register a track and get a presigned PUT URL for its audio
// @Tags WhiteNoise
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param track body model.TrackUploadRequest true "Track"
// @Success 201 {object} model.TrackUploadResponse
// @Router /white-noise [post]
func (h *TrackHandler) RequestUpload(c *gin.Context) {
	var req model.TrackUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Name and content type are required")
		return
	}
	resp, err := h.trackService.CreateUpload(c.Request.Context(), req)
	if err != nil {
		abortWithServiceError(c, "track upload", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TrackHandler) Delete(c *gin.Context) {
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.trackService.Delete(c.Request.Context(), id); err != nil {
		abortWithServiceError(c, "delete track", err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Track deleted"})
}
