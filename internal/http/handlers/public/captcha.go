package public

import (
	"github.com/seungwoo505/portfolio-api/internal/constants"
	"github.com/seungwoo505/portfolio-api/internal/http/handlers/shared"
	"github.com/seungwoo505/portfolio-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptchaConfig 验证码场景配置（登录页据此决定是否拉取挑战）
func (h *Handler) GetCaptchaConfig(c *gin.Context) {
	response.Success(c, gin.H{
		"provider":    h.Config.Captcha.Provider,
		"admin_login": h.CaptchaService.SceneEnabled(constants.CaptchaSceneAdminLogin),
	})
}

// GetCaptchaChallenge 获取图片验证码挑战
func (h *Handler) GetCaptchaChallenge(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, challenge)
}
