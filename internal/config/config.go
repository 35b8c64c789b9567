package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 主配置结构
type Config struct {
	App       App      `yaml:"app"`
	Server    Server   `yaml:"server"`
	Database  DB       `yaml:"database"`
	Cache     Cache    `yaml:"cache"`
	RateLimit Limit    `yaml:"rate_limit"`
	Log       Log      `yaml:"log"`
	Identity  Identity `yaml:"identity"`
	Deeplink  Deeplink `yaml:"deeplink"`
	QRCode    QRCode   `yaml:"qrcode"`
}

// 应用配置
type App struct {
	Name    string `yaml:"name"`
	Mode    string `yaml:"mode"`
	Version string `yaml:"version"`
}

// 服务器配置
type Server struct {
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
	Templates    string `yaml:"templates"`
}

// 数据库配置，Driver 为 mysql 或 sqlite
type DB struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
	Path     string `yaml:"path"`
}

// 缓存配置（Redis）
type Cache struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	Prefix     string `yaml:"prefix"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// 限流配置
type Limit struct {
	Enabled   bool     `yaml:"enabled"`
	Requests  int64    `yaml:"requests_per_minute"`
	Burst     int64    `yaml:"burst"`
	SkipPaths []string `yaml:"skip_paths"`
}

// 日志配置
type Log struct {
	Level      string `yaml:"level"`
	Filename   string `yaml:"filename"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

// 作者身份配置：由前置代理写入的请求头
type Identity struct {
	Header      string `yaml:"header"`
	DefaultName string `yaml:"default_name"`
}

// 深链接配置
type Deeplink struct {
	Host string `yaml:"host"`
}

// 二维码配置
type QRCode struct {
	ModuleSize int  `yaml:"module_size"`
	NoBorder   bool `yaml:"no_border"`
}

// Default 返回带默认值的配置
func Default() *Config {
	return &Config{
		App:    App{Name: "deeplink-generator", Mode: "debug", Version: "1.0.0"},
		Server: Server{Port: 8080, ReadTimeout: 10, WriteTimeout: 10, Templates: "web/templates/*"},
		Database: DB{
			Driver:  "sqlite",
			Port:    3306,
			Charset: "utf8mb4",
			Path:    "deeplink.db",
		},
		Cache:     Cache{Port: 6379, Prefix: "deeplink:", TTLSeconds: 60},
		RateLimit: Limit{Requests: 120, Burst: 20, SkipPaths: []string{"/health", "/swagger"}},
		Log:       Log{Level: "info", Filename: "./logs/app.log", MaxSize: 10, MaxBackups: 5, MaxAge: 30},
		Identity:  Identity{Header: "X-Forwarded-User", DefaultName: "Unknown User"},
		Deeplink:  Deeplink{Host: "app.snowflake.com"},
		QRCode:    QRCode{ModuleSize: 10},
	}
}

// 加载配置：先读 .env，再读 YAML，最后用环境变量覆盖
func Load(path string) (*Config, error) {
	// .env 不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv 用 DEEPLINK_* 环境变量覆盖敏感信息和端口
func applyEnv(cfg *Config) {
	setString(&cfg.App.Mode, "DEEPLINK_MODE")
	setInt(&cfg.Server.Port, "DEEPLINK_PORT")
	setString(&cfg.Database.Driver, "DEEPLINK_DB_DRIVER")
	setString(&cfg.Database.Host, "DEEPLINK_DB_HOST")
	setInt(&cfg.Database.Port, "DEEPLINK_DB_PORT")
	setString(&cfg.Database.User, "DEEPLINK_DB_USER")
	setString(&cfg.Database.Password, "DEEPLINK_DB_PASSWORD")
	setString(&cfg.Database.Name, "DEEPLINK_DB_NAME")
	setString(&cfg.Database.Path, "DEEPLINK_DB_PATH")
	setString(&cfg.Cache.Host, "DEEPLINK_REDIS_HOST")
	setInt(&cfg.Cache.Port, "DEEPLINK_REDIS_PORT")
	setString(&cfg.Cache.Password, "DEEPLINK_REDIS_PASSWORD")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
