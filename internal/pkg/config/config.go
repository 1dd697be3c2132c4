package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"site-cms/pkg/constants"
)

var GlobalConfig *Config

// Config 全局配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Sweep    SweepConfig    `mapstructure:"sweep"`
	Site     SiteConfig     `mapstructure:"site"`
}

// ServerConfig 服务配置
type ServerConfig struct {
	Name         string   `mapstructure:"name"`
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
	Mode         string   `mapstructure:"mode"` // debug, release
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // mysql, postgres, sqlite
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Database        string `mapstructure:"database"` // sqlite 时为文件路径
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"ssl_mode"` // postgres
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
	LogLevel        string `mapstructure:"log_level"`         // SQL日志级别: silent/error/warn/info
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
}

// AuthConfig 认证配置
type AuthConfig struct {
	JWT   JWTConfig   `mapstructure:"jwt"`
	LDAP  LDAPConfig  `mapstructure:"ldap"`
	Local LocalConfig `mapstructure:"local"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret             string `mapstructure:"secret"`
	AccessTokenExpire  int    `mapstructure:"access_token_expire"`  // 秒
	RefreshTokenExpire int    `mapstructure:"refresh_token_expire"` // 秒
	SecureCookie       bool   `mapstructure:"secure_cookie"`
}

// LDAPConfig LDAP配置
type LDAPConfig struct {
	Enabled      bool           `mapstructure:"enabled"`
	Host         string         `mapstructure:"host"`
	Port         int            `mapstructure:"port"`
	UseSSL       bool           `mapstructure:"use_ssl"`
	BindDN       string         `mapstructure:"bind_dn"`
	BindPassword string         `mapstructure:"bind_password"`
	BaseDN       string         `mapstructure:"base_dn"`
	UserFilter   string         `mapstructure:"user_filter"`
	AdminGroupDN string         `mapstructure:"admin_group_dn"` // 为空时不校验组
	Attributes   LDAPAttributes `mapstructure:"attributes"`
}

// LDAPAttributes LDAP属性映射
type LDAPAttributes struct {
	Username    string `mapstructure:"username"`
	Email       string `mapstructure:"email"`
	DisplayName string `mapstructure:"display_name"`
	MemberOf    string `mapstructure:"member_of"`
}

// LocalConfig 本地管理员配置
type LocalConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"` // bcrypt
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`  // debug, info, warn, error
	Format   string `mapstructure:"format"` // json, console
	Output   string `mapstructure:"output"` // stdout, file
	FilePath string `mapstructure:"file_path"`
}

// StorageConfig 文件存储配置
type StorageConfig struct {
	Driver         string `mapstructure:"driver"` // local, memory
	Root           string `mapstructure:"root"`
	PublicBaseURL  string `mapstructure:"public_base_url"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
	AllowedPrefix  string `mapstructure:"allowed_prefix"` // 允许的 Content-Type 前缀
	ServeAssets    bool   `mapstructure:"serve_assets"`   // 是否由本服务直接提供 /assets
}

// SweepConfig 孤儿文件清理配置
type SweepConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"`  // 秒 分 时 日 月 周
	Grace   string `mapstructure:"grace"` // 文件最短存活时间, 如 24h
}

// SiteConfig 站点配置
type SiteConfig struct {
	SeedFile string `mapstructure:"seed_file"`
}

// Load 加载配置
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// 设置配置文件路径
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	// 读取环境变量, 例如 SITE_DATABASE_PASSWORD
	v.SetEnvPrefix("SITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 解析配置
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 设置全局配置
	GlobalConfig = config

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "site-cms")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.conn_max_lifetime", 3600)
	v.SetDefault("auth.jwt.access_token_expire", constants.SessionCookieMaxAge)
	v.SetDefault("auth.jwt.refresh_token_expire", 7*24*3600)
	v.SetDefault("auth.ldap.user_filter", "(uid=%s)")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.root", "data/assets")
	v.SetDefault("storage.public_base_url", constants.DefaultPublicBaseURL)
	v.SetDefault("storage.max_upload_bytes", constants.DefaultMaxUploadBytes)
	v.SetDefault("storage.allowed_prefix", constants.DefaultAllowedPrefix)
	v.SetDefault("storage.serve_assets", true)
	v.SetDefault("sweep.cron", "0 30 3 * * *")
	v.SetDefault("sweep.grace", "24h")
}

// GetDSN 获取数据库DSN
func (c *DatabaseConfig) GetDSN() string {
	switch c.Driver {
	case "postgres":
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.Username, c.Password, c.Database, sslMode)
	case "sqlite":
		return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", c.Database)
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.Username,
			c.Password,
			c.Host,
			c.Port,
			c.Database,
		)
	}
}

// GraceDuration 解析清理宽限期, 非法值时使用24小时
func (c *SweepConfig) GraceDuration() time.Duration {
	d, err := time.ParseDuration(c.Grace)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}
