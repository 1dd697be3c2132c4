package service

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"site-cms/internal/dto"
	"site-cms/pkg/constants"
)

// SeedContent 默认内容条目
type SeedContent struct {
	Key       string `yaml:"key"`
	Value     string `yaml:"value"`
	Page      string `yaml:"page"`
	Section   string `yaml:"section"`
	Type      string `yaml:"type"`
	SortOrder *int   `yaml:"sort_order"`
}

func (c SeedContent) toUpdate() dto.ContentUpdate {
	meta := &dto.ContentMeta{SortOrder: c.SortOrder}
	if c.Page != "" {
		meta.Page = &c.Page
	}
	if c.Section != "" {
		meta.Section = &c.Section
	}
	if c.Type != "" {
		meta.Type = &c.Type
	}
	return dto.ValueUpdate(c.Key, c.Value, meta)
}

// SeedProject 示例项目
type SeedProject struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Details     string `yaml:"details"`
	ImageURL    string `yaml:"image_url"`
	IsFeatured  bool   `yaml:"is_featured"`
	SortOrder   int    `yaml:"sort_order"`
}

// SeedData 初始化数据文件
type SeedData struct {
	Content  []SeedContent `yaml:"content"`
	Projects []SeedProject `yaml:"projects"`
}

// BuiltinSeed 没有配置初始化文件时使用
func BuiltinSeed() *SeedData {
	return &SeedData{
		Content: []SeedContent{
			{Key: "hero_title", Value: "Building Dreams, Creating Spaces", Page: "home", Section: "hero"},
			{Key: "hero_subtitle", Value: "Your trusted partner in construction and renovation.", Page: "home", Section: "hero"},
			{Key: constants.KeyHomeSectionsOrder, Value: DefaultOrderString(), Section: "settings"},
		},
	}
}

// LoadSeedData 读取 yaml 初始化文件, path 为空时返回内置数据
func LoadSeedData(path string) (*SeedData, error) {
	if path == "" {
		return BuiltinSeed(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取初始化文件失败: %w", err)
	}

	data := &SeedData{}
	if err := yaml.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("解析初始化文件失败: %w", err)
	}
	for i, item := range data.Content {
		if item.Key == "" {
			return nil, fmt.Errorf("初始化文件第 %d 条内容缺少 key", i+1)
		}
	}
	return data, nil
}
