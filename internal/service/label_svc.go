package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Adrian140/prep-center-sub001/internal/api/dto"
	"github.com/Adrian140/prep-center-sub001/internal/model"
	"github.com/Adrian140/prep-center-sub001/internal/repository"
	"github.com/Adrian140/prep-center-sub001/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LabelService 打单主流程
// 访问控制 -> 读订单/接入 -> 拿 Token -> 调 UPS -> 解析入库 -> 账单 upsert
type LabelService struct {
	orderRepo       repository.OrderRepository
	integrationRepo repository.IntegrationRepository
	invoiceRepo     repository.InvoiceRepository
	userRepo        repository.UserRepository
	tokenSvc        *TokenService
	ups             *UPSClient
	storage         StorageProvider
}

// NewLabelService 创建打单服务
func NewLabelService(
	orderRepo repository.OrderRepository,
	integrationRepo repository.IntegrationRepository,
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
	tokenSvc *TokenService,
	ups *UPSClient,
	storage StorageProvider,
) *LabelService {
	return &LabelService{
		orderRepo:       orderRepo,
		integrationRepo: integrationRepo,
		invoiceRepo:     invoiceRepo,
		userRepo:        userRepo,
		tokenSvc:        tokenSvc,
		ups:             ups,
		storage:         storage,
	}
}

// IssueLabel 为订单生成 UPS 面单
// 重复调用安全：每一步都重读当前状态，账单按订单幂等
func (s *LabelService) IssueLabel(ctx context.Context, userID, orderID int64) (*dto.CreateLabelResponse, error) {
	// 1. 调用方身份
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, NewAPIError(http.StatusUnauthorized, "用户不存在")
	}

	// 2. 订单
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewAPIError(http.StatusNotFound, "订单不存在")
		}
		return nil, NewAPIError(http.StatusInternalServerError, "订单查询失败: %v", err)
	}

	// 3. 访问控制：本人 / 同公司 / 非受限管理员
	if !user.CanAccessOrder(order) {
		return nil, NewAPIError(http.StatusForbidden, "无权操作该订单")
	}

	// 已出面单的订单不允许原样重打，先撤销再走新流程
	if !order.CanIssueLabel() {
		return nil, NewAPIError(http.StatusBadRequest, "订单已出面单")
	}

	// 4. 公司的 UPS 接入
	integration, err := s.integrationRepo.GetByCompanyID(ctx, order.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewAPIError(http.StatusBadRequest, "该公司未配置 UPS 接入")
		}
		return nil, NewAPIError(http.StatusInternalServerError, "接入查询失败: %v", err)
	}

	// 5. Token（缓存/刷新/client_credentials）
	// 拿不到 Token 直接 502 返回，订单不动
	token, tokenSource, err := s.tokenSvc.GetValidToken(ctx, integration)
	if err != nil {
		return nil, NewAPIError(http.StatusBadGateway, "UPS Token 获取失败: %v", err)
	}

	// 6. 调 UPS 打单
	payload := BuildShipmentRequest(order, integration)
	resp, raw, err := s.ups.CreateShipment(ctx, token, payload)
	if err != nil {
		// UPS 明确拒绝：订单标记 error，原文透传 502
		var upstream *UpstreamError
		if errors.As(err, &upstream) {
			if dbErr := s.orderRepo.MarkError(ctx, orderID, upstream.Body); dbErr != nil {
				logger.Error("订单错误状态写入失败", zap.Int64("order_id", orderID), zap.Error(dbErr))
			}
			return nil, NewAPIError(http.StatusBadGateway, "%s", upstream.Body)
		}
		if dbErr := s.orderRepo.MarkError(ctx, orderID, err.Error()); dbErr != nil {
			logger.Error("订单错误状态写入失败", zap.Int64("order_id", orderID), zap.Error(dbErr))
		}
		return nil, NewAPIError(http.StatusBadGateway, "UPS 请求失败: %v", err)
	}

	// 7. 解析响应
	result := ExtractLabelResult(resp)

	// 8. 面单落对象存储
	// 解码或上传失败都不阻塞打单结果，只是订单上没有 label_file_path
	labelPath := s.saveLabel(ctx, order, result.LabelBase64)

	// 9. 更新订单
	status := model.OrderStatusCompleted
	if labelPath != "" {
		status = model.OrderStatusLabelCreated
	}
	fields := map[string]interface{}{
		"status":           status,
		"tracking_number":  result.TrackingNumber,
		"currency":         result.Currency,
		"label_file_path":  labelPath,
		"response_payload": datatypes.JSON(raw),
		"last_error":       "",
	}
	if result.ChargeAmount != nil {
		fields["total_charge"] = *result.ChargeAmount
	}
	if err := s.orderRepo.UpdateFields(ctx, orderID, fields); err != nil {
		return nil, NewAPIError(http.StatusInternalServerError, "订单更新失败: %v", err)
	}

	// 10. 账单 upsert（同订单只有一条）
	if err := s.upsertInvoice(ctx, order, integration, result, raw); err != nil {
		return nil, NewAPIError(http.StatusInternalServerError, "账单写入失败: %v", err)
	}

	return &dto.CreateLabelResponse{
		OK:             true,
		OrderID:        orderID,
		TrackingNumber: result.TrackingNumber,
		LabelFilePath:  labelPath,
		TotalCharge:    result.ChargeAmount,
		Currency:       result.Currency,
		TokenSource:    tokenSource,
	}, nil
}

// saveLabel 面单 base64 解码后上传对象存储
// 返回存储路径，任何失败都返回空串（吞掉，不外抛）
func (s *LabelService) saveLabel(ctx context.Context, order *model.ShippingOrder, labelBase64 string) string {
	if labelBase64 == "" {
		return ""
	}

	data, err := base64.StdEncoding.DecodeString(labelBase64)
	if err != nil {
		logger.Warn("面单 base64 解码失败", zap.Int64("order_id", order.ID), zap.Error(err))
		return ""
	}

	// 路径按公司/用户隔离，文件名 = 净化后的订单号 + 时间戳
	key := fmt.Sprintf("labels/%d/%d/%s_%d.gif",
		order.CompanyID, order.UserID, order.SanitizedRef(), time.Now().Unix())

	path, err := s.storage.Upload(ctx, data, key, "image/gif")
	if err != nil {
		logger.Warn("面单上传失败，订单照常完成", zap.Int64("order_id", order.ID), zap.Error(err))
		return ""
	}
	return path
}

// upsertInvoice 写入/更新订单的派生账单
// 账单号用订单主键保证唯一，运单号只存在订单上作展示
func (s *LabelService) upsertInvoice(ctx context.Context, order *model.ShippingOrder, integration *model.Integration, result *dto.LabelResult, raw []byte) error {
	now := time.Now()

	amount := 0.0
	if result.ChargeAmount != nil {
		amount = *result.ChargeAmount
	}

	invoice := &model.InvoiceFile{
		IntegrationID: integration.ID,
		OrderID:       order.ID,
		InvoiceNumber: fmt.Sprintf("UPS-%s-%d", now.Format("20060102"), order.ID),
		InvoiceDate:   now,
		Currency:      result.Currency,
		AmountTotal:   amount,
		Source:        model.InvoiceSourceUPSAuto,
		Status:        model.InvoiceStatusGenerated,
		Payload:       datatypes.JSON(raw),
	}
	return s.invoiceRepo.Upsert(ctx, invoice)
}

// VoidLabel 取消已出的运单
// 只通知 UPS，不回退订单状态（状态单向推进，撤销后重打会走新流程）
func (s *LabelService) VoidLabel(ctx context.Context, userID, orderID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return NewAPIError(http.StatusUnauthorized, "用户不存在")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewAPIError(http.StatusNotFound, "订单不存在")
		}
		return NewAPIError(http.StatusInternalServerError, "订单查询失败: %v", err)
	}

	if !user.CanAccessOrder(order) {
		return NewAPIError(http.StatusForbidden, "无权操作该订单")
	}
	if order.TrackingNumber == "" {
		return NewAPIError(http.StatusBadRequest, "订单尚未打单")
	}

	integration, err := s.integrationRepo.GetByCompanyID(ctx, order.CompanyID)
	if err != nil {
		return NewAPIError(http.StatusBadRequest, "该公司未配置 UPS 接入")
	}

	token, _, err := s.tokenSvc.GetValidToken(ctx, integration)
	if err != nil {
		return NewAPIError(http.StatusBadGateway, "UPS Token 获取失败: %v", err)
	}

	if err := s.ups.VoidShipment(ctx, token, order.TrackingNumber); err != nil {
		return NewAPIError(http.StatusBadGateway, "UPS 取消运单失败: %v", err)
	}

	// 撤销记录并入订单的响应快照，留审计痕迹
	if err := s.recordVoid(ctx, order); err != nil {
		return NewAPIError(http.StatusInternalServerError, "撤销记录写入失败: %v", err)
	}

	logger.Info("运单已取消", zap.Int64("order_id", orderID), zap.String("tracking", order.TrackingNumber))
	return nil
}

// recordVoid 在 response_payload 里追加 void 节点
// 保留原有的 UPS 打单响应，撤销信息挂在同级的 "void" 键下
func (s *LabelService) recordVoid(ctx context.Context, order *model.ShippingOrder) error {
	payload := map[string]json.RawMessage{}
	if len(order.ResponsePayload) > 0 {
		// 解析失败时放弃旧快照，至少要把撤销记录写进去
		_ = json.Unmarshal(order.ResponsePayload, &payload)
	}

	voidInfo, err := json.Marshal(map[string]string{
		"tracking_number": order.TrackingNumber,
		"voided_at":       time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	payload["void"] = voidInfo

	merged, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.orderRepo.UpdateFields(ctx, order.ID, map[string]interface{}{
		"response_payload": datatypes.JSON(merged),
	})
}
