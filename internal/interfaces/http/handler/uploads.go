package handler

import (
	"github.com/bayup/backend/internal/application/uploads"
	"github.com/gin-gonic/gin"
)

// UploadHandler hands out presigned object storage slots
type UploadHandler struct {
	BaseHandler
	uploadService *uploads.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadService *uploads.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Presign godoc
// @ID           presignUpload
// @Summary      Presigned upload URL
// @Description  Returns a PUT URL under the caller's store prefix and the public URL the object will have
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Param        request body uploads.PresignRequest true "File"
// @Success      200 {object} APIResponse[uploads.PresignResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /uploads/presign [post]
func (h *UploadHandler) Presign(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req uploads.PresignRequest
	if !h.bindJSON(c, &req) {
		return
	}
	slot, err := h.uploadService.Presign(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slot)
}
