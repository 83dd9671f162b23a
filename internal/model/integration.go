package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ==================== Integration 状态常量 ====================

const (
	IntegrationStatusActive = "active" // 正常
	IntegrationStatusError  = "error"  // Token 获取失败，需检查凭证
)

// ==================== Integration 承运商接入 ====================

// Integration 一个公司的 UPS 账号接入记录
// OAuth 元数据在每次 Token 刷新时整体覆写（last-writer-wins，无乐观锁）
type Integration struct {
	BaseModel
	CompanyID int64 `gorm:"index;not null"`

	UPSAccountNumber string `gorm:"size:32;not null"` // UPS Shipper Number，打单计费账号
	OAuthScope       string `gorm:"size:255"`

	Status string `gorm:"size:16;index;default:active"`

	// OAuth 元数据（PostgreSQL JSONB），结构见 UPSOAuthMetadata
	Metadata datatypes.JSON `gorm:"type:jsonb"`

	LastError    string `gorm:"type:text"`
	LastSyncedAt *time.Time
}

func (*Integration) TableName() string {
	return "integrations"
}

// ==================== OAuth 元数据 ====================

// UPSOAuthMetadata integrations.metadata 中 ups_oauth 的结构
// Token 字段可能是密文（iv.ciphertext）也可能是历史遗留的明文，由 Encrypted 区分
type UPSOAuthMetadata struct {
	AccessToken      string     `json:"access_token,omitempty"`
	RefreshToken     string     `json:"refresh_token,omitempty"`
	Encrypted        bool       `json:"encrypted,omitempty"`
	TokenType        string     `json:"token_type,omitempty"`
	Scope            string     `json:"scope,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	RefreshExpiresAt *time.Time `json:"refresh_expires_at,omitempty"`
}

type integrationMetadata struct {
	UPSOAuth *UPSOAuthMetadata `json:"ups_oauth,omitempty"`
}

// OAuthMetadata 解析存储的 OAuth 元数据，没有或解析失败时返回空结构
func (i *Integration) OAuthMetadata() *UPSOAuthMetadata {
	var meta integrationMetadata
	if len(i.Metadata) > 0 {
		if err := json.Unmarshal(i.Metadata, &meta); err == nil && meta.UPSOAuth != nil {
			return meta.UPSOAuth
		}
	}
	return &UPSOAuthMetadata{}
}

// SetOAuthMetadata 覆写 OAuth 元数据
// 保留 metadata 中 ups_oauth 以外的键（其他接入流程可能会写入自己的数据）
func (i *Integration) SetOAuthMetadata(oauth *UPSOAuthMetadata) error {
	full := map[string]json.RawMessage{}
	if len(i.Metadata) > 0 {
		// 解析失败时放弃旧数据，整体重建
		_ = json.Unmarshal(i.Metadata, &full)
	}
	raw, err := json.Marshal(oauth)
	if err != nil {
		return err
	}
	full["ups_oauth"] = raw

	merged, err := json.Marshal(full)
	if err != nil {
		return err
	}
	i.Metadata = merged
	return nil
}
