package dto

import (
	"encoding/json"

	"site-cms/pkg/constants"
)

// ContentMeta 内容的分类信息, 仅覆盖请求中出现的字段
type ContentMeta struct {
	Page      *string         `json:"page,omitempty"`
	Section   *string         `json:"section,omitempty"`
	Type      *string         `json:"type,omitempty"`
	SortOrder *int            `json:"sort_order,omitempty"`
	MediaID   *int64          `json:"media_id,omitempty"`
	Extra     json.RawMessage `json:"extra,omitempty" swaggertype:"object"` // 写入 metadata JSON 列
}

// ContentUpdate 单条内容写入
// kind=value: 按 key upsert value 和 metadata
// kind=theme: 只更新已存在行的 theme 列
type ContentUpdate struct {
	Kind     string       `json:"kind"`
	Key      string       `json:"key"`
	Value    *string      `json:"value,omitempty"`
	Metadata *ContentMeta `json:"metadata,omitempty"`
	Theme    string       `json:"theme,omitempty"`
}

// ValueUpdate 构造 value 写入
func ValueUpdate(key, value string, meta *ContentMeta) ContentUpdate {
	return ContentUpdate{
		Kind:     constants.ContentKindValue,
		Key:      key,
		Value:    &value,
		Metadata: meta,
	}
}

// ThemeUpdate 构造 theme 写入
func ThemeUpdate(key, theme string) ContentUpdate {
	return ContentUpdate{
		Kind:  constants.ContentKindTheme,
		Key:   key,
		Theme: theme,
	}
}

// ContentBatchRequest 批量写入请求
type ContentBatchRequest struct {
	Updates []ContentUpdate `json:"updates" binding:"required,min=1"`
}

// ContentListQuery 内容列表查询
type ContentListQuery struct {
	Page    string `form:"page"`
	Section string `form:"section"`
}

// ContentKeyQuery 单条内容查询
type ContentKeyQuery struct {
	Key string `form:"key" binding:"required"`
}

// SeedResult 初始化内容结果
type SeedResult struct {
	Written []string `json:"written"`
}
