package admin

import (
	"strconv"

	"github.com/seungwoo505/portfolio-api/internal/http/handlers/shared"
	"github.com/seungwoo505/portfolio-api/internal/http/response"
	"github.com/seungwoo505/portfolio-api/internal/repository"
	"github.com/seungwoo505/portfolio-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProjects 项目列表 (Admin)
func (h *Handler) ListProjects(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	projects, total, err := h.ProjectService.List(repository.ProjectListFilter{
		TagSlug:  c.Query("tag"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, projects, response.NewPagination(page, pageSize, total))
}

// GetProject 项目详情 (Admin)
func (h *Handler) GetProject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	project, err := h.ProjectService.GetByID(id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, project)
}

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Slug        string   `json:"slug" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	RepoURL     string   `json:"repo_url"`
	DemoURL     string   `json:"demo_url"`
	CoverImage  string   `json:"cover_image"`
	TechStack   []string `json:"tech_stack"`
	SortOrder   int      `json:"sort_order"`
	IsPublished bool     `json:"is_published"`
	Tags        []string `json:"tags"`
}

// CreateProject 创建项目
func (h *Handler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Slug and name are required.")
		return
	}

	project, err := h.ProjectService.Create(service.CreateProjectInput{
		Slug:        req.Slug,
		Name:        req.Name,
		Summary:     req.Summary,
		Description: req.Description,
		RepoURL:     req.RepoURL,
		DemoURL:     req.DemoURL,
		CoverImage:  req.CoverImage,
		TechStack:   req.TechStack,
		SortOrder:   req.SortOrder,
		IsPublished: req.IsPublished,
		TagNames:    req.Tags,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, project)
}

// UpdateProjectRequest 更新项目请求
type UpdateProjectRequest struct {
	Slug        *string  `json:"slug"`
	Name        *string  `json:"name"`
	Summary     *string  `json:"summary"`
	Description *string  `json:"description"`
	RepoURL     *string  `json:"repo_url"`
	DemoURL     *string  `json:"demo_url"`
	CoverImage  *string  `json:"cover_image"`
	TechStack   []string `json:"tech_stack"`
	SortOrder   *int     `json:"sort_order"`
	IsPublished *bool    `json:"is_published"`
	Tags        []string `json:"tags"`
}

// UpdateProject 更新项目
func (h *Handler) UpdateProject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body.")
		return
	}

	project, err := h.ProjectService.Update(id, service.UpdateProjectInput{
		Slug:        req.Slug,
		Name:        req.Name,
		Summary:     req.Summary,
		Description: req.Description,
		RepoURL:     req.RepoURL,
		DemoURL:     req.DemoURL,
		CoverImage:  req.CoverImage,
		TechStack:   req.TechStack,
		SortOrder:   req.SortOrder,
		IsPublished: req.IsPublished,
		TagNames:    req.Tags,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, project)
}

// DeleteProject 删除项目
func (h *Handler) DeleteProject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.ProjectService.Delete(id); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
