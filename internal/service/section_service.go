package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"site-cms/internal/dto"
	"site-cms/internal/pkg/logger"
	"site-cms/pkg/constants"
	pkgErrors "site-cms/pkg/errors"
)

// SectionDef 首页区块定义
type SectionDef struct {
	ID    string
	Label string
	// TitleKey 区块标题的内容 key, 主题存放在该行的 theme 列
	TitleKey string
}

// ThemeKey 对外的主题字段名
func (d SectionDef) ThemeKey() string {
	return d.TitleKey + constants.ThemeSuffix
}

// KnownSections 固定的区块集合, 顺序即默认顺序
var KnownSections = []SectionDef{
	{ID: constants.SectionHero, Label: "Hero", TitleKey: "hero_title"},
	{ID: constants.SectionServices, Label: "Services", TitleKey: "services_intro_title"},
	{ID: constants.SectionProjects, Label: "Projects", TitleKey: "projects_intro_title"},
	{ID: constants.SectionAbout, Label: "About", TitleKey: "about_title"},
	{ID: constants.SectionContact, Label: "Contact", TitleKey: "contact_title"},
}

var sectionByID = lo.KeyBy(KnownSections, func(d SectionDef) string { return d.ID })

// DefaultOrder 默认区块顺序
func DefaultOrder() []string {
	return lo.Map(KnownSections, func(d SectionDef, _ int) string { return d.ID })
}

// DefaultOrderString 默认顺序的存储形式
func DefaultOrderString() string {
	return strings.Join(DefaultOrder(), constants.SectionsOrderSep)
}

// IsKnownSection 是否为已知区块
func IsKnownSection(id string) bool {
	_, ok := sectionByID[id]
	return ok
}

// ParseOrder 解析存储的顺序
// 未设置时返回默认顺序; 去空白, 丢弃未知和重复的区块; 结果为空时同样返回默认顺序
func ParseOrder(raw string, ok bool) []string {
	if !ok {
		return DefaultOrder()
	}

	order := make([]string, 0, len(KnownSections))
	seen := make(map[string]bool, len(KnownSections))
	for _, part := range strings.Split(raw, constants.SectionsOrderSep) {
		id := strings.TrimSpace(part)
		if !IsKnownSection(id) || seen[id] {
			continue
		}
		seen[id] = true
		order = append(order, id)
	}

	if len(order) == 0 {
		return DefaultOrder()
	}
	return order
}

type SectionService interface {
	Layout(ctx context.Context) (*dto.SectionLayout, error)
	LayoutFrom(content map[string]string) *dto.SectionLayout
	SaveOrder(ctx context.Context, order []string) error
	MoveSection(ctx context.Context, id string, to int) ([]string, error)
	SetTheme(ctx context.Context, id, theme string) error
}

type sectionService struct {
	content ContentService
}

func NewSectionService(content ContentService) SectionService {
	return &sectionService{content: content}
}

// Layout 当前生效的顺序和各区块主题
func (s *sectionService) Layout(ctx context.Context) (*dto.SectionLayout, error) {
	all, err := s.content.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.LayoutFrom(all), nil
}

// LayoutFrom 基于 GetAll 的结果计算布局
func (s *sectionService) LayoutFrom(content map[string]string) *dto.SectionLayout {
	raw, ok := content[constants.KeyHomeSectionsOrder]
	order := ParseOrder(raw, ok)

	views := make([]*dto.SectionView, 0, len(order))
	for i, id := range order {
		def := sectionByID[id]
		views = append(views, &dto.SectionView{
			ID:       def.ID,
			Label:    def.Label,
			ThemeKey: def.ThemeKey(),
			Theme:    normalizeTheme(content[def.ThemeKey()]),
			Position: i,
		})
	}
	return &dto.SectionLayout{Order: order, Sections: views}
}

// SaveOrder 未知或重复的区块返回 ValidationError
func (s *sectionService) SaveOrder(ctx context.Context, order []string) error {
	fields := make(map[string]string)
	seen := make(map[string]bool, len(order))
	cleaned := make([]string, 0, len(order))
	for i, part := range order {
		id := strings.TrimSpace(part)
		name := fmt.Sprintf("order[%d]", i)
		switch {
		case !IsKnownSection(id):
			fields[name] = fmt.Sprintf("unknown section '%s'", part)
		case seen[id]:
			fields[name] = fmt.Sprintf("duplicate section '%s'", id)
		default:
			seen[id] = true
			cleaned = append(cleaned, id)
		}
	}
	if len(order) == 0 {
		fields["order"] = "is required"
	}
	if len(fields) > 0 {
		return pkgErrors.NewValidation(fields)
	}

	value := strings.Join(cleaned, constants.SectionsOrderSep)
	settings := "settings"
	err := s.content.UpsertBatch(ctx, []dto.ContentUpdate{
		dto.ValueUpdate(constants.KeyHomeSectionsOrder, value, &dto.ContentMeta{Section: &settings}),
	})
	if err != nil {
		return err
	}

	logger.Info("保存首页区块顺序", zap.String("order", value))
	return nil
}

// MoveSection 将区块移动到 to 位置, 超出范围时放到末尾
func (s *sectionService) MoveSection(ctx context.Context, id string, to int) ([]string, error) {
	if !IsKnownSection(id) {
		return nil, pkgErrors.NewValidation(map[string]string{"section": fmt.Sprintf("unknown section '%s'", id)})
	}

	layout, err := s.Layout(ctx)
	if err != nil {
		return nil, err
	}

	order := lo.Without(layout.Order, id)
	if to < 0 {
		to = 0
	}
	if to > len(order) {
		to = len(order)
	}
	order = append(order[:to], append([]string{id}, order[to:]...)...)

	if err := s.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// SetTheme 立即保存区块主题; 标题行不存在时先以空值创建
func (s *sectionService) SetTheme(ctx context.Context, id, theme string) error {
	def, ok := sectionByID[id]
	if !ok {
		return pkgErrors.NewValidation(map[string]string{"section": fmt.Sprintf("unknown section '%s'", id)})
	}

	existing, err := s.content.GetOne(ctx, def.TitleKey)
	if err != nil {
		return err
	}

	var updates []dto.ContentUpdate
	if existing == nil {
		section := def.ID
		updates = append(updates, dto.ValueUpdate(def.TitleKey, "", &dto.ContentMeta{Section: &section}))
	}
	updates = append(updates, dto.ThemeUpdate(def.TitleKey, theme))

	if err := s.content.UpsertBatch(ctx, updates); err != nil {
		return err
	}

	logger.Info("设置区块主题", zap.String("section", id), zap.String("theme", normalizeTheme(theme)))
	return nil
}
