package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Adrian140/prep-center-sub001/pkg/utils"
	"github.com/spf13/viper"
)

// Config 全部运行时配置
// 来源：.env 文件 + 环境变量（环境变量优先）
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	UPS        UPSConfig
	Storage    StorageConfig
	Encryption EncryptionConfig
}

type ServerConfig struct {
	Port        string
	Environment string
}

type DatabaseConfig struct {
	DSN        string
	ServiceKey string // 服务端角色密钥，下游存储/RLS 相关操作使用
	AnonKey    string
}

type JWTConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Issuer          string
}

type UPSConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string // e.g. https://onlinetools.ups.com
	Timeout      time.Duration
}

type StorageConfig struct {
	Provider  string // "s3" | "local"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	BasePath  string // s3 key 前缀或本地目录
	Endpoint  string
}

type EncryptionConfig struct {
	Secret string // Token 加密密钥
}

// Load 读取配置
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env 不存在时退回纯环境变量，其他错误照常报
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("读取配置失败: %w", err)
		}
	}

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("JWT_ACCESS_TTL_HOURS", 2)
	viper.SetDefault("JWT_REFRESH_TTL_HOURS", 168)
	viper.SetDefault("JWT_ISSUER", "prep-center")
	viper.SetDefault("UPS_BASE_URL", "https://onlinetools.ups.com")
	viper.SetDefault("UPS_TIMEOUT_SECONDS", 30)
	viper.SetDefault("STORAGE_PROVIDER", "local")
	viper.SetDefault("STORAGE_BASE_PATH", "./uploads")

	cfg := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			DSN:        viper.GetString("DATABASE_URL"),
			ServiceKey: viper.GetString("DB_SERVICE_ROLE_KEY"),
			AnonKey:    viper.GetString("DB_ANON_KEY"),
		},
		JWT: JWTConfig{
			Secret:          viper.GetString("JWT_SECRET"),
			AccessTokenTTL:  time.Duration(viper.GetInt("JWT_ACCESS_TTL_HOURS")) * time.Hour,
			RefreshTokenTTL: time.Duration(viper.GetInt("JWT_REFRESH_TTL_HOURS")) * time.Hour,
			Issuer:          viper.GetString("JWT_ISSUER"),
		},
		UPS: UPSConfig{
			ClientID:     viper.GetString("UPS_CLIENT_ID"),
			ClientSecret: viper.GetString("UPS_CLIENT_SECRET"),
			BaseURL:      viper.GetString("UPS_BASE_URL"),
			Timeout:      time.Duration(viper.GetInt("UPS_TIMEOUT_SECONDS")) * time.Second,
		},
		Storage: StorageConfig{
			Provider:  viper.GetString("STORAGE_PROVIDER"),
			Bucket:    viper.GetString("STORAGE_BUCKET"),
			Region:    viper.GetString("STORAGE_REGION"),
			AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
			BasePath:  viper.GetString("STORAGE_BASE_PATH"),
			Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
		},
		Encryption: EncryptionConfig{
			Secret: viper.GetString("TOKEN_ENCRYPTION_SECRET"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 启动前校验
// 数据库相关配置缺失直接拒绝启动；加密密钥太弱同样拒绝——
// 弱密钥静默退化成明文存储的老行为已废弃
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("配置缺失: DATABASE_URL")
	}
	if c.Database.ServiceKey == "" {
		return errors.New("配置缺失: DB_SERVICE_ROLE_KEY")
	}
	if c.JWT.Secret == "" {
		return errors.New("配置缺失: JWT_SECRET")
	}
	if len(c.Encryption.Secret) < utils.MinSecretLength {
		return fmt.Errorf("TOKEN_ENCRYPTION_SECRET 长度不足 %d 字节，拒绝启动", utils.MinSecretLength)
	}
	return nil
}
