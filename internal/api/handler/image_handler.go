package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"site-cms/internal/dto"
	"site-cms/internal/service"
	"site-cms/pkg/utils"
)

// SweepTrigger 手动触发孤儿文件清理
type SweepTrigger interface {
	TriggerSweep(ctx context.Context, dryRun bool) (*dto.SweepResult, error)
}

type ImageHandler struct {
	uploadService  service.UploadService
	sweeper        SweepTrigger
	maxUploadBytes int64
}

func NewImageHandler(uploadService service.UploadService, sweeper SweepTrigger, maxUploadBytes int64) *ImageHandler {
	return &ImageHandler{
		uploadService:  uploadService,
		sweeper:        sweeper,
		maxUploadBytes: maxUploadBytes,
	}
}

// List 已上传的图片
// @Summary 已上传图片列表
// @Tags Image
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]dto.StoredImage}
// @Router /api/v1/images [get]
func (h *ImageHandler) List(c *gin.Context) {
	images, err := h.uploadService.List(c.Request.Context())
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, images)
}

// Upload 上传图片并关联到内容
// @Summary 上传图片
// @Description 保存图片并把内容 key 指向图片 URL
// @Tags Image
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "图片"
// @Param key formData string true "内容key"
// @Param alt formData string false "替代文本"
// @Success 200 {object} utils.Response{data=dto.UploadResult}
// @Router /api/v1/images [post]
func (h *ImageHandler) Upload(c *gin.Context) {
	file, err := readUpload(c, h.maxUploadBytes)
	if err != nil {
		utils.Error(c, err)
		return
	}

	result, err := h.uploadService.Store(c.Request.Context(), file, c.PostForm("key"), c.PostForm("alt"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, result)
}

// Select 选择已上传的图片
// @Summary 选择已上传的图片
// @Tags Image
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.SelectImageRequest true "选择图片"
// @Success 200 {object} utils.Response{data=dto.SelectImageResult}
// @Router /api/v1/images/select [post]
func (h *ImageHandler) Select(c *gin.Context) {
	var req dto.SelectImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	result, err := h.uploadService.Select(c.Request.Context(), req.Key, req.URL)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, result)
}

// Delete 删除图片
// @Summary 删除图片
// @Description 删除文件, 媒体记录, 并清空引用该图片的内容和项目
// @Tags Image
// @Produce json
// @Security ApiKeyAuth
// @Param name path string true "文件名"
// @Success 200 {object} utils.Response{data=dto.DeleteImageResult}
// @Router /api/v1/images/{name} [delete]
func (h *ImageHandler) Delete(c *gin.Context) {
	result, err := h.uploadService.Delete(c.Request.Context(), c.Param("name"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, result)
}

// Sweep 清理孤儿文件
// @Summary 清理没有引用的文件
// @Tags Image
// @Produce json
// @Security ApiKeyAuth
// @Param dry_run query bool false "只列出不删除"
// @Success 200 {object} utils.Response{data=dto.SweepResult}
// @Router /api/v1/images/sweep [post]
func (h *ImageHandler) Sweep(c *gin.Context) {
	dryRun, _ := strconv.ParseBool(c.Query("dry_run"))

	result, err := h.sweeper.TriggerSweep(c.Request.Context(), dryRun)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, result)
}
