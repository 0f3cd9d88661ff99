package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the optional YAML file whose values act as defaults.
const ConfigFileEnv = "BIFPCL_CONFIG_FILE"

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string `yaml:"listen_addr"`
	Port              string `yaml:"port"`
	DatabasePath      string `yaml:"database_path"`
	DatabaseURL       string `yaml:"database_url"`
	SessionSecret     string `yaml:"session_secret"`
	GinMode           string `yaml:"gin_mode"`
	LogLevel          string `yaml:"log_level"`
	UploadDir         string `yaml:"upload_dir"`
	UploadURLPath     string `yaml:"upload_url_path"`
	StorageDriver     string `yaml:"storage_driver"`
	S3                S3     `yaml:"s3"`
	Gemini            Gemini `yaml:"gemini"`
	SuperRootUserName string `yaml:"super_root_user_name"`
	SuperRootPassword string `yaml:"super_root_password"`
	PageSize          int    `yaml:"page_size"`
}

// S3 holds object storage settings used when StorageDriver is "s3".
type S3 struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	PublicURL string `yaml:"public_url"`
	PathStyle bool   `yaml:"path_style"`
}

// Gemini configures the chatbot upstream.
type Gemini struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 若设置了 BIFPCL_CONFIG_FILE，则先读取该 YAML 文件作为默认值。
func Load() (AppConfig, error) {
	var cfg AppConfig
	if path := strings.TrimSpace(os.Getenv(ConfigFileEnv)); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	overlayEnv(&cfg)
	applyDefaults(&cfg)
	return cfg, nil
}

func overlayEnv(cfg *AppConfig) {
	envString(&cfg.Port, "PORT")
	envString(&cfg.ListenAddr, "LISTEN_ADDR")
	envString(&cfg.DatabasePath, "DATABASE_PATH")
	envString(&cfg.DatabaseURL, "DATABASE_URL")
	envString(&cfg.SessionSecret, "SESSION_SECRET")
	envString(&cfg.GinMode, "GIN_MODE")
	envString(&cfg.LogLevel, "LOG_LEVEL")
	envString(&cfg.UploadDir, "UPLOAD_DIR")
	envString(&cfg.UploadURLPath, "UPLOAD_URL_PATH")
	envString(&cfg.StorageDriver, "STORAGE_DRIVER")
	envString(&cfg.S3.Bucket, "S3_BUCKET")
	envString(&cfg.S3.Region, "S3_REGION")
	envString(&cfg.S3.Endpoint, "S3_ENDPOINT")
	envString(&cfg.S3.AccessKey, "S3_ACCESS_KEY")
	envString(&cfg.S3.SecretKey, "S3_SECRET_KEY")
	envString(&cfg.S3.PublicURL, "S3_PUBLIC_URL")
	envBool(&cfg.S3.PathStyle, "S3_PATH_STYLE")
	envString(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	envString(&cfg.Gemini.Model, "GEMINI_MODEL")
	envString(&cfg.Gemini.BaseURL, "GEMINI_BASE_URL")
	envString(&cfg.SuperRootUserName, "SUPER_ROOT_USER_NAME")
	envString(&cfg.SuperRootPassword, "SUPER_ROOT_PASSWORD")
	envInt(&cfg.PageSize, "PAGE_SIZE")
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == "" {
		cfg.Port = "8000"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = fmt.Sprintf(":%s", cfg.Port)
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "bifpcl.db"
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "bifpcl-dev-secret"
	}
	if cfg.GinMode == "" {
		cfg.GinMode = "release"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "media"
	}
	if cfg.UploadURLPath == "" {
		cfg.UploadURLPath = "/media"
	}
	cfg.StorageDriver = strings.ToLower(cfg.StorageDriver)
	if cfg.StorageDriver == "" {
		cfg.StorageDriver = "local"
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
}

func envString(dst *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
	}
}

func envBool(dst *bool, key string) {
	if parsed, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key))); err == nil {
		*dst = parsed
	}
}

func envInt(dst *int, key string) {
	if parsed, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil {
		*dst = parsed
	}
}
