package model

import (
	"regexp"
	"strconv"
	"strings"

	"gorm.io/datatypes"
)

// ==================== 订单状态常量 ====================

// OrderStatus 发货订单状态
// 状态只能单向推进：pending -> label_created/completed，或 -> error
// 不允许自动回退（打单失败后需人工介入或重新发起）
const (
	OrderStatusPending      = "pending"       // 待打单
	OrderStatusLabelCreated = "label_created" // 面单已生成
	OrderStatusCompleted    = "completed"     // 已完成（UPS 已出单，面单可能缺失）
	OrderStatusError        = "error"         // 打单失败
)

// UPS 默认服务代码
const (
	DefaultServiceCode   = "11" // UPS Standard
	DefaultPackagingType = "02" // Customer Supplied Package
	DefaultCountryCode   = "FR" // 默认发货国（法国仓）
)

// ==================== ShippingOrder 发货订单 ====================

// ShippingOrder 客户的发货订单
// 由客户（或管理员代客户）创建，打单 handler 是唯一的状态写入方
type ShippingOrder struct {
	BaseModel
	ExternalOrderID string `gorm:"size:64;index"` // 客户系统的订单号（FBA/FBM 货件号等）
	CompanyID       int64  `gorm:"index;not null"`
	UserID          int64  `gorm:"index;not null"`

	// 收发地址（PostgreSQL JSONB）
	// 字段约定: name, address, city, postal_code, country
	ShipFrom datatypes.JSONMap `gorm:"type:jsonb"`
	ShipTo   datatypes.JSONMap `gorm:"type:jsonb"`

	// 包裹信息
	WeightKg float64
	LengthCm float64
	WidthCm  float64
	HeightCm float64

	// UPS 参数
	ServiceCode   string `gorm:"size:8"`
	PackagingType string `gorm:"size:8"`

	// 状态
	Status string `gorm:"size:32;index;default:pending"`

	// 打单结果
	TrackingNumber string   `gorm:"size:64;index"`
	TotalCharge    *float64 // UPS 返回的总费用，解析失败时为空
	Currency       string   `gorm:"size:8"`
	LabelFilePath  string   `gorm:"size:500"` // 面单在对象存储中的路径，未上传成功则为空

	// UPS 原始响应（PostgreSQL JSONB）
	ResponsePayload datatypes.JSON `gorm:"type:jsonb"`

	// 最后一次错误
	LastError string `gorm:"type:text"`
}

func (*ShippingOrder) TableName() string {
	return "shipping_orders"
}

// CanIssueLabel 是否可以打单
// completed/error 状态允许重新发起（每一步都会重读当前数据，幂等）
func (o *ShippingOrder) CanIssueLabel() bool {
	return o.Status != OrderStatusLabelCreated
}

// GetAddressField 读取地址 JSONB 字段
func getAddressField(m datatypes.JSONMap, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// ShipFromField 读取发货地址字段
func (o *ShippingOrder) ShipFromField(key string) string {
	return getAddressField(o.ShipFrom, key)
}

// ShipToField 读取收货地址字段
func (o *ShippingOrder) ShipToField(key string) string {
	return getAddressField(o.ShipTo, key)
}

// CountryOrDefault 国家代码统一大写，缺省回落 FR
func CountryOrDefault(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCountryCode
	}
	return code
}

var labelNameSanitizer = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// SanitizedRef 返回可安全用作文件名的订单标识
// 优先使用客户订单号，没有则回落主键
func (o *ShippingOrder) SanitizedRef() string {
	ref := labelNameSanitizer.ReplaceAllString(o.ExternalOrderID, "_")
	ref = strings.Trim(ref, "_")
	if ref == "" {
		ref = "order-" + strconv.FormatInt(o.ID, 10)
	}
	return ref
}
