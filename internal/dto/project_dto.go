package dto

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Title       string  `json:"title" validate:"required,notblank,max=255"`
	Slug        *string `json:"slug" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Details     *string `json:"details"`
	ImageURL    *string `json:"image_url" validate:"omitempty,max=2048"`
	IsFeatured  *bool   `json:"is_featured"`
	Published   *bool   `json:"published"`
	SortOrder   *int    `json:"sort_order"`
}

// UpdateProjectRequest 更新项目请求, 只更新出现的字段
type UpdateProjectRequest struct {
	ID          int64   `json:"id" binding:"required"`
	Title       *string `json:"title" validate:"omitempty,notblank,max=255"`
	Slug        *string `json:"slug" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Details     *string `json:"details"`
	ImageURL    *string `json:"image_url" validate:"omitempty,max=2048"`
	IsFeatured  *bool   `json:"is_featured"`
	Published   *bool   `json:"published"`
	SortOrder   *int    `json:"sort_order"`
}

// GetProjectRequest 获取项目详情请求
type GetProjectRequest struct {
	ID int64 `form:"id" binding:"required"`
}

// ProjectListQuery 项目列表查询参数
type ProjectListQuery struct {
	PageQuery
	Featured *bool `form:"featured"`
}

// ProjectResponse 项目响应
type ProjectResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Details     *string `json:"details"`
	ImageURL    *string `json:"image_url"`
	IsFeatured  bool    `json:"is_featured"`
	Published   bool    `json:"published"`
	SortOrder   int     `json:"sort_order"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// DeleteResult 删除结果
type DeleteResult struct {
	Success bool `json:"success"`
}
