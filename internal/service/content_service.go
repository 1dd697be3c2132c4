package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"site-cms/internal/dto"
	"site-cms/internal/model"
	"site-cms/internal/pkg/logger"
	"site-cms/internal/repository"
	"site-cms/pkg/constants"
	pkgErrors "site-cms/pkg/errors"
	"site-cms/pkg/utils"
)

type ContentService interface {
	GetAll(ctx context.Context) (map[string]string, error)
	GetOne(ctx context.Context, key string) (*model.ContentEntry, error)
	List(ctx context.Context, query *dto.ContentListQuery) ([]*model.ContentEntry, error)
	UpsertBatch(ctx context.Context, updates []dto.ContentUpdate) error
	UpsertMap(ctx context.Context, raw map[string]interface{}) error
	DeleteByKey(ctx context.Context, key string) (bool, error)
	SeedDefaults(ctx context.Context, defaults []SeedContent) ([]string, error)
}

type contentService struct {
	db   *gorm.DB
	repo repository.ContentRepository
}

func NewContentService(db *gorm.DB, repo repository.ContentRepository) ContentService {
	return &contentService{
		db:   db,
		repo: repo,
	}
}

// GetAll 返回 key -> value, 并为每行附加 <key>_theme -> theme
func (s *contentService) GetAll(ctx context.Context) (map[string]string, error) {
	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(entries)*2)
	for _, entry := range entries {
		result[entry.Key] = entry.Value
		result[entry.Key+constants.ThemeSuffix] = normalizeTheme(entry.Theme)
	}
	return result, nil
}

func (s *contentService) GetOne(ctx context.Context, key string) (*model.ContentEntry, error) {
	return s.repo.FindByKey(ctx, key)
}

func (s *contentService) List(ctx context.Context, query *dto.ContentListQuery) ([]*model.ContentEntry, error) {
	return s.repo.List(ctx, query.Page, query.Section)
}

// UpsertBatch 先校验全部条目, 再在同一事务中写入
func (s *contentService) UpsertBatch(ctx context.Context, updates []dto.ContentUpdate) error {
	writes, err := prepareWrites(updates)
	if err != nil {
		return err
	}
	if len(writes) == 0 {
		return nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applyWrites(ctx, s.repo.WithTx(tx), writes)
	})
	if err != nil {
		return err
	}

	logger.Debug("内容批量写入成功", zap.Int("count", len(writes)),
		zap.Strings("keys", lo.Map(writes, func(w contentWrite, _ int) string { return w.key })))
	return nil
}

// UpsertMap 兼容旧的 key -> 值 结构: 字符串值, {value, page, ...} 对象, 以及 <key>_theme
// value 写入排在 theme 写入之前, 同类按 key 排序
func (s *contentService) UpsertMap(ctx context.Context, raw map[string]interface{}) error {
	updates, err := convertLegacy(raw)
	if err != nil {
		return err
	}
	return s.UpsertBatch(ctx, updates)
}

func (s *contentService) DeleteByKey(ctx context.Context, key string) (bool, error) {
	removed, err := s.repo.DeleteByKey(ctx, key)
	if err != nil {
		return false, err
	}
	if removed {
		logger.Info("删除内容", zap.String("key", key))
	}
	return removed, nil
}

// SeedDefaults 只写入缺失或为空的 key, 返回写入的 key
func (s *contentService) SeedDefaults(ctx context.Context, defaults []SeedContent) ([]string, error) {
	var written []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		var updates []dto.ContentUpdate
		for _, item := range defaults {
			existing, err := repo.FindByKey(ctx, item.Key)
			if err != nil {
				return err
			}
			if existing != nil && existing.Value != "" {
				continue
			}
			updates = append(updates, item.toUpdate())
		}

		writes, err := prepareWrites(updates)
		if err != nil {
			return err
		}
		if err := applyWrites(ctx, repo, writes); err != nil {
			return err
		}
		written = lo.Map(writes, func(w contentWrite, _ int) string { return w.key })
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(written) > 0 {
		logger.Info("初始化默认内容", zap.Strings("keys", written))
	}
	return written, nil
}

// contentPayload 非 theme 写入的校验规则
type contentPayload struct {
	Key       string  `json:"key" validate:"required,max=191"`
	Value     *string `json:"value" validate:"required"`
	Page      *string `json:"page" validate:"omitempty,max=64"`
	Section   *string `json:"section" validate:"omitempty,max=64"`
	Type      *string `json:"type" validate:"omitempty,max=64"`
	SortOrder *int    `json:"sort_order"`
	MediaID   *int64  `json:"media_id" validate:"omitempty,gt=0"`
}

// contentWrite 校验通过后的单条写入
type contentWrite struct {
	kind    string
	key     string
	theme   string
	entry   *model.ContentEntry
	columns []string
}

func normalizeTheme(theme string) string {
	if theme == constants.ThemeDark {
		return constants.ThemeDark
	}
	return constants.ThemeLight
}

// fieldPrefix 错误字段前缀, key 为空时使用序号
func fieldPrefix(i int, key string) string {
	if key == "" {
		return fmt.Sprintf("updates[%d]", i)
	}
	return key
}

// prepareWrites 校验所有条目, 任一失败则返回 ValidationError, 不产生任何写入
func prepareWrites(updates []dto.ContentUpdate) ([]contentWrite, error) {
	fields := make(map[string]string)
	writes := make([]contentWrite, 0, len(updates))

	for i, update := range updates {
		key := strings.TrimSpace(update.Key)
		prefix := fieldPrefix(i, key)

		switch update.Kind {
		case constants.ContentKindTheme:
			if key == "" {
				fields[prefix+".key"] = "is required"
				continue
			}
			writes = append(writes, contentWrite{
				kind:  constants.ContentKindTheme,
				key:   key,
				theme: normalizeTheme(update.Theme),
			})

		case constants.ContentKindValue:
			write, errs := prepareValueWrite(key, update.Value, update.Metadata)
			for field, msg := range errs {
				fields[prefix+"."+field] = msg
			}
			if len(errs) == 0 {
				writes = append(writes, write)
			}

		default:
			fields[prefix+".kind"] = "must be one of: value theme"
		}
	}

	if len(fields) > 0 {
		return nil, pkgErrors.NewValidation(fields)
	}
	return writes, nil
}

func prepareValueWrite(key string, value *string, meta *dto.ContentMeta) (contentWrite, map[string]string) {
	if meta == nil {
		meta = &dto.ContentMeta{}
	}

	payload := contentPayload{
		Key:       key,
		Value:     value,
		Page:      meta.Page,
		Section:   meta.Section,
		Type:      meta.Type,
		SortOrder: meta.SortOrder,
		MediaID:   meta.MediaID,
	}
	errs := utils.ValidateStruct(&payload)
	if strings.HasSuffix(key, constants.ThemeSuffix) {
		if errs == nil {
			errs = make(map[string]string)
		}
		errs["key"] = "must not end with " + constants.ThemeSuffix
	}
	if len(meta.Extra) > 0 && !json.Valid(meta.Extra) {
		if errs == nil {
			errs = make(map[string]string)
		}
		errs["extra"] = "must be valid JSON"
	}
	if len(errs) > 0 {
		return contentWrite{}, errs
	}

	entry := &model.ContentEntry{
		Key:       key,
		Value:     *value,
		Page:      lo.FromPtrOr(meta.Page, constants.DefaultContentPage),
		Section:   lo.FromPtrOr(meta.Section, constants.DefaultContentSection),
		Type:      lo.FromPtrOr(meta.Type, constants.DefaultContentType),
		SortOrder: meta.SortOrder,
		Theme:     constants.ThemeLight,
		MediaID:   meta.MediaID,
	}

	// 冲突时只更新 value 和请求中出现的字段, 不动 theme
	columns := []string{"value", "updated_at"}
	if meta.Page != nil {
		columns = append(columns, "page")
	}
	if meta.Section != nil {
		columns = append(columns, "section")
	}
	if meta.Type != nil {
		columns = append(columns, "type")
	}
	if meta.SortOrder != nil {
		columns = append(columns, "sort_order")
	}
	if meta.MediaID != nil {
		columns = append(columns, "media_id")
	}
	if len(meta.Extra) > 0 {
		entry.Metadata = datatypes.JSON(meta.Extra)
		columns = append(columns, "metadata")
	}

	return contentWrite{
		kind:    constants.ContentKindValue,
		key:     key,
		entry:   entry,
		columns: columns,
	}, nil
}

// applyWrites 按顺序执行, 调用方负责事务
func applyWrites(ctx context.Context, repo repository.ContentRepository, writes []contentWrite) error {
	for _, w := range writes {
		switch w.kind {
		case constants.ContentKindTheme:
			ok, err := repo.UpdateTheme(ctx, w.key, w.theme)
			if err != nil {
				return err
			}
			if !ok {
				return pkgErrors.New(pkgErrors.CodeNotFound, fmt.Sprintf("内容 %s 不存在, 无法设置主题", w.key))
			}
		default:
			if err := repo.Upsert(ctx, w.entry, w.columns); err != nil {
				return err
			}
		}
	}
	return nil
}

// convertLegacy 旧结构转换为 tagged 写入
func convertLegacy(raw map[string]interface{}) ([]dto.ContentUpdate, error) {
	keys := lo.Keys(raw)
	sort.Strings(keys)

	fields := make(map[string]string)
	var values, themes []dto.ContentUpdate

	for _, key := range keys {
		v := raw[key]
		if base, ok := strings.CutSuffix(key, constants.ThemeSuffix); ok && base != "" {
			theme, isString := v.(string)
			if !isString {
				fields[key] = "must be a string"
				continue
			}
			themes = append(themes, dto.ThemeUpdate(base, theme))
			continue
		}

		switch val := v.(type) {
		case string:
			values = append(values, dto.ValueUpdate(key, val, nil))
		case map[string]interface{}:
			update, errs := legacyObject(key, val)
			for field, msg := range errs {
				fields[key+"."+field] = msg
			}
			if len(errs) == 0 {
				values = append(values, update)
			}
		default:
			fields[key+".value"] = "must be a string"
		}
	}

	if len(fields) > 0 {
		return nil, pkgErrors.NewValidation(fields)
	}
	return append(values, themes...), nil
}

func legacyObject(key string, obj map[string]interface{}) (dto.ContentUpdate, map[string]string) {
	errs := make(map[string]string)
	meta := &dto.ContentMeta{}

	value, ok := obj["value"].(string)
	if !ok {
		if _, present := obj["value"]; present {
			errs["value"] = "must be a string"
		} else {
			errs["value"] = "is required"
		}
	}

	optString := func(name string) *string {
		v, present := obj[name]
		if !present || v == nil {
			return nil
		}
		s, isString := v.(string)
		if !isString {
			errs[name] = "must be a string"
			return nil
		}
		return &s
	}
	optInt := func(name string) *int64 {
		v, present := obj[name]
		if !present || v == nil {
			return nil
		}
		f, isNumber := v.(float64)
		if !isNumber || f != math.Trunc(f) {
			errs[name] = "must be an integer"
			return nil
		}
		n := int64(f)
		return &n
	}

	meta.Page = optString("page")
	meta.Section = optString("section")
	meta.Type = optString("type")
	if n := optInt("sort_order"); n != nil {
		meta.SortOrder = lo.ToPtr(int(*n))
	}
	if n := optInt("sortOrder"); n != nil {
		meta.SortOrder = lo.ToPtr(int(*n))
	}
	meta.MediaID = optInt("media_id")
	if n := optInt("mediaId"); n != nil {
		meta.MediaID = n
	}

	if len(errs) > 0 {
		return dto.ContentUpdate{}, errs
	}
	return dto.ValueUpdate(key, value, meta), nil
}
