package handler

import (
	"github.com/gin-gonic/gin"

	"site-cms/internal/dto"
	"site-cms/internal/service"
	"site-cms/pkg/utils"
)

type SectionHandler struct {
	sectionService service.SectionService
}

func NewSectionHandler(sectionService service.SectionService) *SectionHandler {
	return &SectionHandler{sectionService: sectionService}
}

// Layout 首页区块布局
// @Summary 获取首页区块顺序和主题
// @Tags Section
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=dto.SectionLayout}
// @Router /api/v1/sections [get]
func (h *SectionHandler) Layout(c *gin.Context) {
	layout, err := h.sectionService.Layout(c.Request.Context())
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, layout)
}

// SaveOrder 保存区块顺序
// @Summary 保存首页区块顺序
// @Tags Section
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.SaveOrderRequest true "区块顺序"
// @Success 200 {object} utils.Response{data=dto.SectionLayout}
// @Router /api/v1/sections/order [put]
func (h *SectionHandler) SaveOrder(c *gin.Context) {
	var req dto.SaveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.sectionService.SaveOrder(c.Request.Context(), req.Order); err != nil {
		utils.Error(c, err)
		return
	}

	h.Layout(c)
}

// Move 移动区块
// @Summary 移动区块到指定位置
// @Tags Section
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.MoveSectionRequest true "移动请求"
// @Success 200 {object} utils.Response{data=[]string}
// @Router /api/v1/sections/move [post]
func (h *SectionHandler) Move(c *gin.Context) {
	var req dto.MoveSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	order, err := h.sectionService.MoveSection(c.Request.Context(), req.Section, req.To)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, order)
}

// SetTheme 设置区块主题
// @Summary 设置区块主题
// @Tags Section
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.SetThemeRequest true "主题"
// @Success 200 {object} utils.Response
// @Router /api/v1/sections/theme [put]
func (h *SectionHandler) SetTheme(c *gin.Context) {
	var req dto.SetThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.sectionService.SetTheme(c.Request.Context(), req.Section, req.Theme); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "保存成功", nil)
}
