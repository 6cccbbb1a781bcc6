package public

import (
	"strconv"

	"github.com/seungwoo505/portfolio-api/internal/http/handlers/shared"
	"github.com/seungwoo505/portfolio-api/internal/http/response"
	"github.com/seungwoo505/portfolio-api/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListProjects 已发布项目列表
func (h *Handler) ListProjects(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	projects, total, err := h.ProjectService.List(repository.ProjectListFilter{
		OnlyPublished: true,
		TagSlug:       c.Query("tag"),
		Search:        c.Query("search"),
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, projects, response.NewPagination(page, pageSize, total))
}

// GetProject 已发布项目详情
func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.ProjectService.GetBySlug(c.Param("slug"), true)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, project)
}
