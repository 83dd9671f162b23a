package dto

import "encoding/json"

// UPS Shipping API 的请求/响应结构
// 只映射我们用到的字段，数值字段按 UPS 的约定传字符串

// ==================== 请求 ====================

// UPSShipmentRequest 创建运单请求顶层
type UPSShipmentRequest struct {
	ShipmentRequest UPSShipmentRequestBody `json:"ShipmentRequest"`
}

type UPSShipmentRequestBody struct {
	Request            UPSRequestOption      `json:"Request"`
	Shipment           UPSShipment           `json:"Shipment"`
	LabelSpecification UPSLabelSpecification `json:"LabelSpecification"`
}

type UPSRequestOption struct {
	RequestOption string `json:"RequestOption"` // nonvalidate
}

type UPSShipment struct {
	Description        string                `json:"Description,omitempty"`
	Shipper            UPSParty              `json:"Shipper"`
	ShipTo             UPSParty              `json:"ShipTo"`
	PaymentInformation UPSPaymentInformation `json:"PaymentInformation"`
	Service            UPSCode               `json:"Service"`
	Package            UPSPackage            `json:"Package"`
}

type UPSParty struct {
	Name          string     `json:"Name"`
	ShipperNumber string     `json:"ShipperNumber,omitempty"` // 仅 Shipper 需要
	Address       UPSAddress `json:"Address"`
}

type UPSAddress struct {
	AddressLine []string `json:"AddressLine"`
	City        string   `json:"City"`
	PostalCode  string   `json:"PostalCode"`
	CountryCode string   `json:"CountryCode"`
}

type UPSPaymentInformation struct {
	ShipmentCharge UPSShipmentCharge `json:"ShipmentCharge"`
}

type UPSShipmentCharge struct {
	Type        string         `json:"Type"` // 01 = transportation
	BillShipper UPSBillShipper `json:"BillShipper"`
}

type UPSBillShipper struct {
	AccountNumber string `json:"AccountNumber"`
}

type UPSCode struct {
	Code string `json:"Code"`
}

type UPSPackage struct {
	Packaging     UPSCode          `json:"Packaging"`
	Dimensions    *UPSDimensions   `json:"Dimensions,omitempty"` // 三边都有效才发，否则整体省略
	PackageWeight UPSPackageWeight `json:"PackageWeight"`
}

type UPSDimensions struct {
	UnitOfMeasurement UPSCode `json:"UnitOfMeasurement"` // CM
	Length            string  `json:"Length"`
	Width             string  `json:"Width"`
	Height            string  `json:"Height"`
}

type UPSPackageWeight struct {
	UnitOfMeasurement UPSCode `json:"UnitOfMeasurement"` // KGS
	Weight            string  `json:"Weight"`
}

type UPSLabelSpecification struct {
	LabelImageFormat UPSCode `json:"LabelImageFormat"` // GIF
}

// ==================== 响应 ====================

// UPSShipmentResponse 创建运单响应顶层
type UPSShipmentResponse struct {
	ShipmentResponse UPSShipmentResponseBody `json:"ShipmentResponse"`
}

type UPSShipmentResponseBody struct {
	Response        UPSResponseStatus  `json:"Response"`
	ShipmentResults UPSShipmentResults `json:"ShipmentResults"`
}

type UPSResponseStatus struct {
	ResponseStatus UPSCodeDescription `json:"ResponseStatus"`
}

type UPSCodeDescription struct {
	Code        string `json:"Code"`
	Description string `json:"Description"`
}

type UPSShipmentResults struct {
	ShipmentCharges              *UPSShipmentCharges `json:"ShipmentCharges,omitempty"`
	ShipmentIdentificationNumber string              `json:"ShipmentIdentificationNumber,omitempty"`
	// UPS 这个字段一会儿返回对象一会儿返回数组，保持 RawMessage 延迟解析
	PackageResults json.RawMessage `json:"PackageResults,omitempty"`
	// 部分服务在 shipment 级别返回面单
	LabelImage *UPSShippingLabel `json:"LabelImage,omitempty"`
}

type UPSShipmentCharges struct {
	TotalCharges UPSMonetary `json:"TotalCharges"`
}

type UPSMonetary struct {
	CurrencyCode  string `json:"CurrencyCode"`
	MonetaryValue string `json:"MonetaryValue"`
}

// UPSPackageResult 单个包裹结果
type UPSPackageResult struct {
	TrackingNumber string            `json:"TrackingNumber,omitempty"`
	ShippingLabel  *UPSShippingLabel `json:"ShippingLabel,omitempty"`
}

type UPSShippingLabel struct {
	GraphicImage string `json:"GraphicImage,omitempty"`
	HTMLImage    string `json:"HTMLImage,omitempty"`
}

// ==================== OAuth ====================

// UPSTokenResponse OAuth Token 响应
// UPS 把秒数也当字符串返回，用 json.Number 兼容两种形态
type UPSTokenResponse struct {
	AccessToken      string      `json:"access_token"`
	RefreshToken     string      `json:"refresh_token,omitempty"`
	TokenType        string      `json:"token_type,omitempty"`
	Scope            string      `json:"scope,omitempty"`
	ExpiresIn        json.Number `json:"expires_in,omitempty"`
	RefreshExpiresIn json.Number `json:"refresh_expires_in,omitempty"`
	Error            string      `json:"error,omitempty"`
}

// ==================== 响应形态归一化 ====================

// NormalizePackageResults 把对象或数组形态的 PackageResults 统一成切片
// UPS 单包裹时返回对象、多包裹时返回数组，这里是唯一处理这个差异的地方
func NormalizePackageResults(raw json.RawMessage) []UPSPackageResult {
	if len(raw) == 0 {
		return nil
	}

	var list []UPSPackageResult
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var single UPSPackageResult
	if err := json.Unmarshal(raw, &single); err == nil {
		return []UPSPackageResult{single}
	}
	return nil
}
