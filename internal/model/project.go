package model

const ProjectTableName = "projects"

// Project 作品/案例
type Project struct {
	BaseModel
	Title       string  `gorm:"size:255;not null" json:"title"`
	Slug        *string `gorm:"size:255;uniqueIndex" json:"slug"`
	Description *string `gorm:"type:text" json:"description"`
	Details     *string `gorm:"type:text" json:"details"` // 富文本 JSON
	ImageURL    *string `gorm:"column:image_url;size:2048" json:"image_url"`
	IsFeatured  bool    `gorm:"not null;default:false;index" json:"is_featured"`
	Published   bool    `gorm:"not null" json:"published"`
	SortOrder   int     `gorm:"not null;default:0" json:"sort_order"`
}

func (Project) TableName() string {
	return ProjectTableName
}
