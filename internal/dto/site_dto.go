package dto

// HomeResponse 首页数据
type HomeResponse struct {
	Content          map[string]string  `json:"content"`
	Rendered         map[string]string  `json:"rendered"` // markdown 类型内容渲染后的 HTML
	Sections         []*SectionView     `json:"sections"`
	FeaturedProjects []*ProjectResponse `json:"featured_projects"`
}
