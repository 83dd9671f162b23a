package dto

import "time"

// ==================== 订单接口 ====================

// OrderAddress 订单收发地址
type OrderAddress struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country"`
}

// CreateOrderRequest 创建发货订单
type CreateOrderRequest struct {
	ExternalOrderID string       `json:"external_order_id"`
	ShipFrom        OrderAddress `json:"ship_from" binding:"required"`
	ShipTo          OrderAddress `json:"ship_to" binding:"required"`
	WeightKg        float64      `json:"weight_kg"`
	LengthCm        float64      `json:"length_cm"`
	WidthCm         float64      `json:"width_cm"`
	HeightCm        float64      `json:"height_cm"`
	ServiceCode     string       `json:"service_code"`
	PackagingType   string       `json:"packaging_type"`
}

// OrderResponse 订单详情
type OrderResponse struct {
	ID              int64     `json:"id"`
	ExternalOrderID string    `json:"external_order_id"`
	CompanyID       int64     `json:"company_id"`
	UserID          int64     `json:"user_id"`
	Status          string    `json:"status"`
	TrackingNumber  string    `json:"tracking_number,omitempty"`
	TotalCharge     *float64  `json:"total_charge,omitempty"`
	Currency        string    `json:"currency,omitempty"`
	LabelFilePath   string    `json:"label_file_path,omitempty"`
	LastError       string    `json:"last_error,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ==================== 账单接口 ====================

// InvoiceResponse 账单详情
type InvoiceResponse struct {
	ID            int64     `json:"id"`
	IntegrationID int64     `json:"integration_id"`
	OrderID       int64     `json:"order_id"`
	InvoiceNumber string    `json:"invoice_number"`
	InvoiceDate   time.Time `json:"invoice_date"`
	Currency      string    `json:"currency"`
	AmountTotal   float64   `json:"amount_total"`
	Source        string    `json:"source"`
	Status        string    `json:"status"`
}

// ==================== 接入接口 ====================

// CreateIntegrationRequest 登记 UPS 账号接入
type CreateIntegrationRequest struct {
	UPSAccountNumber string `json:"ups_account_number" binding:"required"`
	OAuthScope       string `json:"oauth_scope"`
}

// IntegrationResponse 接入详情（不含 Token 密文）
type IntegrationResponse struct {
	ID               int64      `json:"id"`
	CompanyID        int64      `json:"company_id"`
	UPSAccountNumber string     `json:"ups_account_number"`
	OAuthScope       string     `json:"oauth_scope,omitempty"`
	Status           string     `json:"status"`
	LastError        string     `json:"last_error,omitempty"`
	LastSyncedAt     *time.Time `json:"last_synced_at,omitempty"`
}
