package handler

import (
	"github.com/gin-gonic/gin"

	"site-cms/internal/dto"
	"site-cms/internal/service"
	"site-cms/pkg/utils"
)

type ContentHandler struct {
	contentService service.ContentService
	seed           *service.SeedData
}

func NewContentHandler(contentService service.ContentService, seed *service.SeedData) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		seed:           seed,
	}
}

// GetAll 获取全部内容
// @Summary 获取全部内容
// @Description 返回 key -> value, 并附带 <key>_theme -> light|dark
// @Tags Content
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=map[string]string}
// @Router /api/v1/content [get]
func (h *ContentHandler) GetAll(c *gin.Context) {
	content, err := h.contentService.GetAll(c.Request.Context())
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, content)
}

// GetOne 获取单条内容
// @Summary 获取单条内容
// @Tags Content
// @Produce json
// @Security ApiKeyAuth
// @Param key query string true "内容key"
// @Success 200 {object} utils.Response{data=model.ContentEntry}
// @Router /api/v1/content/item [get]
func (h *ContentHandler) GetOne(c *gin.Context) {
	var query dto.ContentKeyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	entry, err := h.contentService.GetOne(c.Request.Context(), query.Key)
	if err != nil {
		utils.Error(c, err)
		return
	}
	if entry == nil {
		utils.ErrorWithCode(c, 404, "内容不存在")
		return
	}

	utils.Success(c, entry)
}

// List 按页面和区块筛选内容
// @Summary 内容列表
// @Tags Content
// @Produce json
// @Security ApiKeyAuth
// @Param page query string false "页面"
// @Param section query string false "区块"
// @Success 200 {object} utils.Response{data=[]model.ContentEntry}
// @Router /api/v1/content/entries [get]
func (h *ContentHandler) List(c *gin.Context) {
	var query dto.ContentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	entries, err := h.contentService.List(c.Request.Context(), &query)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, entries)
}

// UpsertMap 兼容旧结构的批量保存
// @Summary 批量保存内容 (key -> value)
// @Description 值可以是字符串或 {value, page, section, type, sort_order} 对象, <key>_theme 设置主题
// @Tags Content
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body map[string]interface{} true "内容"
// @Success 200 {object} utils.Response
// @Router /api/v1/content [put]
func (h *ContentHandler) UpsertMap(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.contentService.UpsertMap(c.Request.Context(), raw); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "保存成功", nil)
}

// UpsertBatch 批量写入
// @Summary 批量写入内容
// @Description kind=value 写入值, kind=theme 只更新已存在内容的主题; 全部成功或全部失败
// @Tags Content
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.ContentBatchRequest true "批量写入"
// @Success 200 {object} utils.Response
// @Router /api/v1/content/batch [post]
func (h *ContentHandler) UpsertBatch(c *gin.Context) {
	var req dto.ContentBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.contentService.UpsertBatch(c.Request.Context(), req.Updates); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "保存成功", nil)
}

// Delete 删除内容
// @Summary 删除内容
// @Tags Content
// @Produce json
// @Security ApiKeyAuth
// @Param key path string true "内容key"
// @Success 200 {object} utils.Response{data=dto.DeleteResult}
// @Router /api/v1/content/{key} [delete]
func (h *ContentHandler) Delete(c *gin.Context) {
	removed, err := h.contentService.DeleteByKey(c.Request.Context(), c.Param("key"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, &dto.DeleteResult{Success: removed})
}

// Seed 写入默认内容
// @Summary 初始化默认内容
// @Description 只写入缺失或为空的 key
// @Tags Content
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=dto.SeedResult}
// @Router /api/v1/content/seed [post]
func (h *ContentHandler) Seed(c *gin.Context) {
	written, err := h.contentService.SeedDefaults(c.Request.Context(), h.seed.Content)
	if err != nil {
		utils.Error(c, err)
		return
	}
	if written == nil {
		written = []string{}
	}

	utils.Success(c, &dto.SeedResult{Written: written})
}
