package handler

import (
	"github.com/gin-gonic/gin"

	"site-cms/internal/dto"
	"site-cms/internal/service"
	"site-cms/pkg/utils"
)

// SiteHandler 公开接口, 无需登录
type SiteHandler struct {
	siteService    service.SiteService
	projectService service.ProjectService
}

func NewSiteHandler(siteService service.SiteService, projectService service.ProjectService) *SiteHandler {
	return &SiteHandler{
		siteService:    siteService,
		projectService: projectService,
	}
}

// Home 首页数据
// @Summary 首页数据
// @Description 内容, markdown 渲染结果, 区块布局和推荐项目
// @Tags Site
// @Produce json
// @Success 200 {object} utils.Response{data=dto.HomeResponse}
// @Router /api/v1/site/home [get]
func (h *SiteHandler) Home(c *gin.Context) {
	home, err := h.siteService.Home(c.Request.Context())
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, home)
}

// Projects 已发布的项目
// @Summary 已发布项目分页
// @Tags Site
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param featured query bool false "是否推荐"
// @Success 200 {object} utils.Response{data=dto.PageResponse}
// @Router /api/v1/site/projects [get]
func (h *SiteHandler) Projects(c *gin.Context) {
	var query dto.ProjectListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	page, err := h.projectService.ListPage(c.Request.Context(), &query, true)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, page)
}

// Project 项目详情
// @Summary 已发布项目详情
// @Tags Site
// @Produce json
// @Param id path string true "项目ID或slug"
// @Success 200 {object} utils.Response{data=dto.ProjectResponse}
// @Router /api/v1/site/projects/{id} [get]
func (h *SiteHandler) Project(c *gin.Context) {
	project, err := h.projectService.GetPublished(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, project)
}
