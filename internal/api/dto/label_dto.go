package dto

// ==================== 打单接口 ====================

// CreateLabelRequest 打单请求
type CreateLabelRequest struct {
	OrderID int64 `json:"order_id" binding:"required"`
}

// CreateLabelResponse 打单成功响应
type CreateLabelResponse struct {
	OK             bool     `json:"ok"`
	OrderID        int64    `json:"order_id"`
	TrackingNumber string   `json:"tracking_number"`
	LabelFilePath  string   `json:"label_file_path"`
	TotalCharge    *float64 `json:"total_charge"`
	Currency       string   `json:"currency"`
	TokenSource    string   `json:"token_source"` // cached / refresh / client_credentials
}

// ErrorResponse 统一错误响应
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
}

// ==================== 解析后的面单结果 ====================

// LabelResult UPS 响应解析结果
type LabelResult struct {
	TrackingNumber string
	LabelBase64    string
	ChargeAmount   *float64 // 非数值时为空
	Currency       string
}
