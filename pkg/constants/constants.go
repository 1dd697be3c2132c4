package constants

// 主题
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ThemeSuffix 主题附属字段后缀, "<key>_theme" 指向 key 行的 theme 列
const ThemeSuffix = "_theme"

// 内容更新类型
const (
	ContentKindValue = "value"
	ContentKindTheme = "theme"
)

// 内容默认分类
const (
	DefaultContentPage    = "global"
	DefaultContentSection = "default"
	DefaultContentType    = "text"
)

// 内容类型
const (
	ContentTypeText     = "text"
	ContentTypeRichText = "richtext"
	ContentTypeMarkdown = "markdown"
	ContentTypeImage    = "image"
)

// 首页区块排序
const (
	KeyHomeSectionsOrder = "home_sections_order"
	SectionsOrderSep     = ","
)

// 首页区块
const (
	SectionHero     = "hero"
	SectionServices = "services"
	SectionProjects = "projects"
	SectionAbout    = "about"
	SectionContact  = "contact"
)

// 上传
const (
	DefaultPublicBaseURL  = "/assets"
	DefaultMaxUploadBytes = 5 * 1024 * 1024 // 5MB
	DefaultAllowedPrefix  = "image/"
)

// 认证类型
const (
	AuthTypeLDAP  = "ldap"
	AuthTypeLocal = "local"
)

// JWT 相关
const (
	JWTContextKey  = "jwt_user"
	JWTTypeAccess  = "access"
	JWTTypeRefresh = "refresh"
)

// 会话 Cookie
const (
	SessionCookieName   = "admin_session"
	SessionCookieMaxAge = 60 * 60 * 2 // 2小时
)

// HTTP Header
const (
	HeaderAuthorization = "Authorization"
	HeaderBearerPrefix  = "Bearer "
	HeaderRequestID     = "X-Request-ID"
)
