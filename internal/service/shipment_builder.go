package service

import (
	"strconv"

	"github.com/Adrian140/prep-center-sub001/internal/api/dto"
	"github.com/Adrian140/prep-center-sub001/internal/model"
)

// MinWeightKg 最小计费重量
// UPS 不接受 0 重量，缺失或非正数一律按下限发
const MinWeightKg = 0.01

// BuildShipmentRequest 把内部订单映射成 UPS 运单请求
// 纯函数，不做任何 I/O
func BuildShipmentRequest(order *model.ShippingOrder, integration *model.Integration) *dto.UPSShipmentRequest {
	// 1. 重量兜底
	weight := order.WeightKg
	if weight < MinWeightKg {
		weight = MinWeightKg
	}

	// 2. 服务与包装类型缺省
	serviceCode := order.ServiceCode
	if serviceCode == "" {
		serviceCode = model.DefaultServiceCode
	}
	packagingType := order.PackagingType
	if packagingType == "" {
		packagingType = model.DefaultPackagingType
	}

	pkg := dto.UPSPackage{
		Packaging: dto.UPSCode{Code: packagingType},
		PackageWeight: dto.UPSPackageWeight{
			UnitOfMeasurement: dto.UPSCode{Code: "KGS"},
			Weight:            formatMeasure(weight),
		},
	}

	// 3. 三边都为正才带尺寸，否则让 UPS 按包装类型取默认值
	if order.LengthCm > 0 && order.WidthCm > 0 && order.HeightCm > 0 {
		pkg.Dimensions = &dto.UPSDimensions{
			UnitOfMeasurement: dto.UPSCode{Code: "CM"},
			Length:            formatMeasure(order.LengthCm),
			Width:             formatMeasure(order.WidthCm),
			Height:            formatMeasure(order.HeightCm),
		}
	}

	return &dto.UPSShipmentRequest{
		ShipmentRequest: dto.UPSShipmentRequestBody{
			Request: dto.UPSRequestOption{RequestOption: "nonvalidate"},
			Shipment: dto.UPSShipment{
				Description: order.ExternalOrderID,
				Shipper: dto.UPSParty{
					Name:          order.ShipFromField("name"),
					ShipperNumber: integration.UPSAccountNumber,
					Address:       buildAddress(order.ShipFrom),
				},
				ShipTo: dto.UPSParty{
					Name:    order.ShipToField("name"),
					Address: buildAddress(order.ShipTo),
				},
				PaymentInformation: dto.UPSPaymentInformation{
					ShipmentCharge: dto.UPSShipmentCharge{
						Type: "01", // bill shipper
						BillShipper: dto.UPSBillShipper{
							AccountNumber: integration.UPSAccountNumber,
						},
					},
				},
				Service: dto.UPSCode{Code: serviceCode},
				Package: pkg,
			},
			LabelSpecification: dto.UPSLabelSpecification{
				LabelImageFormat: dto.UPSCode{Code: "GIF"},
			},
		},
	}
}

func buildAddress(m map[string]interface{}) dto.UPSAddress {
	get := func(key string) string {
		if v, ok := m[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
		return ""
	}
	return dto.UPSAddress{
		AddressLine: []string{get("address")},
		City:        get("city"),
		PostalCode:  get("postal_code"),
		CountryCode: model.CountryOrDefault(get("country")),
	}
}

// formatMeasure 重量/尺寸统一两位小数字符串
func formatMeasure(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ==================== 响应提取 ====================

// ExtractLabelResult 从 UPS 响应中提取运单号、面单和费用
// 任何字段缺失都不报错，只给空值，让上层自行决定后续处理
func ExtractLabelResult(resp *dto.UPSShipmentResponse) *dto.LabelResult {
	result := &dto.LabelResult{}
	results := resp.ShipmentResponse.ShipmentResults

	// 1. 包裹结果归一化（对象/数组两种形态）
	packages := dto.NormalizePackageResults(results.PackageResults)
	var first *dto.UPSPackageResult
	if len(packages) > 0 {
		first = &packages[0]
	}

	// 2. 运单号：包裹级优先，回落 shipment 级
	if first != nil && first.TrackingNumber != "" {
		result.TrackingNumber = first.TrackingNumber
	} else {
		result.TrackingNumber = results.ShipmentIdentificationNumber
	}

	// 3. 面单：GraphicImage -> HTMLImage -> shipment 级 LabelImage
	if first != nil && first.ShippingLabel != nil {
		if first.ShippingLabel.GraphicImage != "" {
			result.LabelBase64 = first.ShippingLabel.GraphicImage
		} else if first.ShippingLabel.HTMLImage != "" {
			result.LabelBase64 = first.ShippingLabel.HTMLImage
		}
	}
	if result.LabelBase64 == "" && results.LabelImage != nil {
		if results.LabelImage.GraphicImage != "" {
			result.LabelBase64 = results.LabelImage.GraphicImage
		} else if results.LabelImage.HTMLImage != "" {
			result.LabelBase64 = results.LabelImage.HTMLImage
		}
	}

	// 4. 费用：非数值视为缺失
	if results.ShipmentCharges != nil {
		result.Currency = results.ShipmentCharges.TotalCharges.CurrencyCode
		if amount, err := strconv.ParseFloat(results.ShipmentCharges.TotalCharges.MonetaryValue, 64); err == nil {
			result.ChargeAmount = &amount
		}
	}

	return result
}
