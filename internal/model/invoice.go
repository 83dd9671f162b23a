package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== InvoiceFile 账单记录 ====================

// 账单来源
const (
	InvoiceSourceUPSAuto = "ups-auto" // 打单时自动生成
)

// 账单状态
const (
	InvoiceStatusGenerated = "generated"
)

// InvoiceFile 每次打单派生的账单记录
// OrderID 唯一，同一订单重复打单只会更新已有账单（先查后更/插）
type InvoiceFile struct {
	BaseModel
	IntegrationID int64 `gorm:"index;not null"`
	OrderID       int64 `gorm:"uniqueIndex;not null"`

	// 账单号格式: UPS-{YYYYMMDD}-{订单主键}
	// 主键保证唯一，运单号只作为展示字段存在订单上
	InvoiceNumber string    `gorm:"size:64;index;not null"`
	InvoiceDate   time.Time `gorm:"index"`

	Currency    string `gorm:"size:8"`
	AmountTotal float64

	Source string `gorm:"size:32;default:ups-auto"`
	Status string `gorm:"size:32;default:generated"`

	// 打单时 UPS 响应快照（PostgreSQL JSONB）
	Payload datatypes.JSON `gorm:"type:jsonb"`
}

func (*InvoiceFile) TableName() string {
	return "invoice_files"
}
