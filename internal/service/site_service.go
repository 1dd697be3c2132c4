package service

import (
	"bytes"
	"context"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"site-cms/internal/dto"
	"site-cms/internal/pkg/logger"
	"site-cms/pkg/constants"
)

// SiteService 公开页面的数据
type SiteService interface {
	Home(ctx context.Context) (*dto.HomeResponse, error)
}

type siteService struct {
	content  ContentService
	sections SectionService
	projects ProjectService
	markdown goldmark.Markdown
}

func NewSiteService(content ContentService, sections SectionService, projects ProjectService) SiteService {
	return &siteService{
		content:  content,
		sections: sections,
		projects: projects,
		// 不开启 WithUnsafe, 原始 HTML 会被过滤
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

func (s *siteService) Home(ctx context.Context) (*dto.HomeResponse, error) {
	entries, err := s.content.List(ctx, &dto.ContentListQuery{})
	if err != nil {
		return nil, err
	}

	content := make(map[string]string, len(entries)*2)
	rendered := make(map[string]string)
	for _, entry := range entries {
		content[entry.Key] = entry.Value
		content[entry.Key+constants.ThemeSuffix] = normalizeTheme(entry.Theme)

		if entry.Type != constants.ContentTypeMarkdown || entry.Value == "" {
			continue
		}
		var buf bytes.Buffer
		if err := s.markdown.Convert([]byte(entry.Value), &buf); err != nil {
			logger.Warn("渲染 markdown 失败", zap.String("key", entry.Key), zap.Error(err))
			continue
		}
		rendered[entry.Key] = buf.String()
	}

	featured, err := s.projects.ListFeatured(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.HomeResponse{
		Content:          content,
		Rendered:         rendered,
		Sections:         s.sections.LayoutFrom(content).Sections,
		FeaturedProjects: featured,
	}, nil
}
