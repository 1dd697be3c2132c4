package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"site-cms/internal/dto"
	"site-cms/internal/service"
	"site-cms/pkg/utils"
)

type ProjectHandler struct {
	projectService service.ProjectService
	uploadService  service.UploadService
	maxUploadBytes int64
}

func NewProjectHandler(projectService service.ProjectService, uploadService service.UploadService, maxUploadBytes int64) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		uploadService:  uploadService,
		maxUploadBytes: maxUploadBytes,
	}
}

// Create 创建项目
// @Summary 创建项目
// @Tags Project
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateProjectRequest true "创建项目请求"
// @Success 200 {object} utils.Response{data=dto.ProjectResponse}
// @Router /api/v1/project [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, project)
}

// GetByID 获取项目详情
// @Summary 获取项目详情
// @Tags Project
// @Produce json
// @Security ApiKeyAuth
// @Param id query int64 true "项目ID"
// @Success 200 {object} utils.Response{data=dto.ProjectResponse}
// @Router /api/v1/project [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	var req dto.GetProjectRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, project)
}

// List 获取项目列表
// @Summary 获取项目列表（无分页参数时返回所有项目，有分页参数时返回分页数据）
// @Tags Project
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param featured query bool false "是否推荐"
// @Success 200 {object} utils.Response{data=[]dto.ProjectResponse}
// @Success 200 {object} utils.Response{data=dto.PageResponse}
// @Router /api/v1/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	var query dto.ProjectListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	// 没有分页参数时返回全部
	if query.Page == 0 && query.PageSize == 0 && query.Featured == nil {
		projects, err := h.projectService.List(c.Request.Context())
		if err != nil {
			utils.Error(c, err)
			return
		}
		utils.Success(c, projects)
		return
	}

	page, err := h.projectService.ListPage(c.Request.Context(), &query, false)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, page)
}

// Update 更新项目
// @Summary 更新项目
// @Tags Project
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.UpdateProjectRequest true "更新项目请求"
// @Success 200 {object} utils.Response{data=dto.ProjectResponse}
// @Router /api/v1/project [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, project)
}

// Delete 删除项目
// @Summary 删除项目
// @Tags Project
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "项目ID"
// @Success 200 {object} utils.Response{data=dto.DeleteResult}
// @Router /api/v1/project/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorWithCode(c, 400, "无效的项目ID")
		return
	}

	removed, err := h.projectService.Delete(c.Request.Context(), id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, &dto.DeleteResult{Success: removed})
}

// UploadImage 上传项目图片
// @Summary 上传项目图片
// @Tags Project
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "项目ID"
// @Param file formData file true "图片"
// @Success 200 {object} utils.Response{data=dto.ProjectImageResult}
// @Router /api/v1/project/{id}/image [post]
func (h *ProjectHandler) UploadImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorWithCode(c, 400, "无效的项目ID")
		return
	}

	file, err := readUpload(c, h.maxUploadBytes)
	if err != nil {
		utils.Error(c, err)
		return
	}

	result, err := h.uploadService.StoreProjectImage(c.Request.Context(), file, id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, result)
}
