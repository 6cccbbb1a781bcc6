package admin

import (
	"net/http"

	"github.com/seungwoo505/portfolio-api/internal/http/handlers/shared"
	"github.com/seungwoo505/portfolio-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadFile 上传文件
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required.")
		return
	}

	url, err := h.UploadService.SaveFile(file, c.PostForm("scene"))
	if err != nil {
		shared.RespondError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	response.Success(c, gin.H{"url": url})
}
