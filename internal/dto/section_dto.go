package dto

// SectionView 首页区块的当前状态
type SectionView struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	ThemeKey string `json:"theme_key"`
	Theme    string `json:"theme"`
	Position int    `json:"position"`
}

// SectionLayout 首页区块布局
type SectionLayout struct {
	Order    []string       `json:"order"`
	Sections []*SectionView `json:"sections"`
}

// SaveOrderRequest 保存区块顺序
type SaveOrderRequest struct {
	Order []string `json:"order" binding:"required,min=1"`
}

// MoveSectionRequest 移动区块
type MoveSectionRequest struct {
	Section string `json:"section" binding:"required"`
	To      int    `json:"to" binding:"gte=0"`
}

// SetThemeRequest 设置区块主题
type SetThemeRequest struct {
	Section string `json:"section" binding:"required"`
	Theme   string `json:"theme" binding:"required,oneof=light dark"`
}
