package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"site-cms/internal/api/handler"
	"site-cms/internal/api/middleware"
	"site-cms/internal/pkg/config"
	"site-cms/internal/pkg/imageprobe"
	"site-cms/internal/pkg/jwt"
	"site-cms/internal/pkg/storage"
	"site-cms/internal/repository"
	"site-cms/internal/scheduler"
	"site-cms/internal/service"
)

// Deps 路由依赖的外部资源
type Deps struct {
	DB     *gorm.DB
	Blobs  storage.BlobStore
	Prober imageprobe.Prober
	Seed   *service.SeedData
	Logger *zap.Logger
}

// Setup 设置路由, 返回的调度器由调用方启动和停止
func Setup(cfg *config.Config, deps *Deps) (*gin.Engine, *scheduler.Scheduler) {
	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.Server.AllowOrigins))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 上传的图片
	if cfg.Storage.ServeAssets && strings.HasPrefix(cfg.Storage.PublicBaseURL, "/") {
		r.StaticFS(cfg.Storage.PublicBaseURL, deps.Blobs.FileSystem())
	}

	db := deps.DB
	seed := deps.Seed
	if seed == nil {
		seed = service.BuiltinSeed()
	}

	// 初始化Repository
	contentRepo := repository.NewContentRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	// 初始化Service
	tokens := jwt.NewManager(&cfg.Auth.JWT)
	ldapService := service.NewLDAPService(&cfg.Auth.LDAP)
	authService := service.NewAuthService(&cfg.Auth, tokens, ldapService)
	contentService := service.NewContentService(db, contentRepo)
	sectionService := service.NewSectionService(contentService)
	projectService := service.NewProjectService(db, projectRepo)
	uploadService := service.NewUploadService(db, deps.Blobs, contentRepo, mediaRepo, projectRepo, &cfg.Storage, deps.Prober)
	siteService := service.NewSiteService(contentService, sectionService, projectService)
	sweepService := service.NewSweepService(deps.Blobs, contentRepo, mediaRepo, projectRepo,
		cfg.Storage.PublicBaseURL, cfg.Sweep.GraceDuration())
	taskScheduler := scheduler.NewScheduler(sweepService, deps.Logger)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService, cfg.Auth.JWT.SecureCookie)
	contentHandler := handler.NewContentHandler(contentService, seed)
	sectionHandler := handler.NewSectionHandler(sectionService)
	projectHandler := handler.NewProjectHandler(projectService, uploadService, cfg.Storage.MaxUploadBytes)
	imageHandler := handler.NewImageHandler(uploadService, taskScheduler, cfg.Storage.MaxUploadBytes)
	siteHandler := handler.NewSiteHandler(siteService, projectService)

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 公开接口
		siteGroup := v1.Group("/site")
		{
			siteGroup.GET("/home", siteHandler.Home)
			siteGroup.GET("/projects", siteHandler.Projects)
			siteGroup.GET("/projects/:id", siteHandler.Project) // id 或 slug
		}

		// 认证相关(无需token)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authHandler.Logout)
		}

		// 需要认证的路由
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(authService))
		{
			authed.GET("/auth/me", authHandler.GetMe)

			// 内容管理
			contentGroup := authed.Group("/content")
			{
				contentGroup.GET("", contentHandler.GetAll)             // key -> value, 附带 _theme
				contentGroup.GET("/item", contentHandler.GetOne)        // 单条（query参数key）
				contentGroup.GET("/entries", contentHandler.List)       // 按 page/section 筛选
				contentGroup.PUT("", contentHandler.UpsertMap)          // 旧结构批量保存
				contentGroup.POST("/batch", contentHandler.UpsertBatch) // tagged 批量写入
				contentGroup.POST("/seed", contentHandler.Seed)         // 写入默认内容
				contentGroup.DELETE("/:key", contentHandler.Delete)
			}

			// 首页区块
			sectionGroup := authed.Group("/sections")
			{
				sectionGroup.GET("", sectionHandler.Layout)
				sectionGroup.PUT("/order", sectionHandler.SaveOrder)
				sectionGroup.POST("/move", sectionHandler.Move)
				sectionGroup.PUT("/theme", sectionHandler.SetTheme)
			}

			// 项目管理
			groupProject := authed.Group("/project")
			groupProjects := authed.Group("/projects")
			{
				groupProject.POST("", projectHandler.Create)                // 创建项目
				groupProjects.GET("", projectHandler.List)                  // 列表查询（无参数返回全部，有分页参数返回分页数据）
				groupProject.GET("", projectHandler.GetByID)                // 获取详情（query参数id）
				groupProject.PUT("", projectHandler.Update)                 // 更新项目（JSON包含id）
				groupProject.DELETE("/:id", projectHandler.Delete)          // 删除项目
				groupProject.POST("/:id/image", projectHandler.UploadImage) // 上传项目图片
			}

			// 图片管理
			imageGroup := authed.Group("/images")
			{
				imageGroup.GET("", imageHandler.List)
				imageGroup.POST("", imageHandler.Upload)
				imageGroup.POST("/select", imageHandler.Select)
				imageGroup.POST("/sweep", imageHandler.Sweep)
				imageGroup.DELETE("/:name", imageHandler.Delete)
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "接口不存在"})
	})

	return r, taskScheduler
}
