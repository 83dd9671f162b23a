package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/Adrian140/prep-center-sub001/internal/api/dto"
	"github.com/Adrian140/prep-center-sub001/pkg/utils"
	"github.com/go-resty/resty/v2"
)

// UPS API 路径
const (
	upsTokenPath = "/security/v1/oauth/token"
	upsShipPath  = "/api/shipments/v1/ship"
	upsVoidPath  = "/api/shipments/v1/void/cancel/"
)

// UPSConfig UPS 客户端配置
type UPSConfig struct {
	BaseURL      string // e.g. https://onlinetools.ups.com
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// UPSClient UPS API 客户端
type UPSClient struct {
	config UPSConfig
	client *resty.Client
}

// NewUPSClient 创建客户端
func NewUPSClient(cfg UPSConfig) *UPSClient {
	return &UPSClient{
		config: cfg,
		client: utils.NewAPIClient(cfg.Timeout),
	}
}

// ==================== 上游错误 ====================

// UpstreamError UPS 返回非 2xx
// 原文透传给调用方，最终以 502 暴露给客户端
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("UPS API 错误 [%d]: %s", e.StatusCode, e.Body)
}

// ==================== OAuth Token ====================

// FetchToken 请求 OAuth Token
// grant 由调用方组装（refresh_token 或 client_credentials），
// 认证方式固定为 HTTP Basic (client_id:client_secret)
func (c *UPSClient) FetchToken(ctx context.Context, grant url.Values) (*dto.UPSTokenResponse, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBasicAuth(c.config.ClientID, c.config.ClientSecret).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormDataFromValues(grant).
		Post(c.config.BaseURL + upsTokenPath)
	if err != nil {
		return nil, fmt.Errorf("token 请求失败: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var tokenResp dto.UPSTokenResponse
	if err := json.Unmarshal(resp.Body(), &tokenResp); err != nil {
		return nil, fmt.Errorf("token 响应解析失败: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, &UpstreamError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return &tokenResp, nil
}

// ==================== Shipment 运单 ====================

// CreateShipment 创建运单
// 返回解析后的响应和原始报文（原始报文要整体落到订单上）
func (c *UPSClient) CreateShipment(ctx context.Context, accessToken string, req *dto.UPSShipmentRequest) (*dto.UPSShipmentResponse, []byte, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(c.config.BaseURL + upsShipPath)
	if err != nil {
		return nil, nil, fmt.Errorf("创建运单失败: %w", err)
	}

	raw := resp.Body()
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, raw, &UpstreamError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var shipResp dto.UPSShipmentResponse
	if err := json.Unmarshal(raw, &shipResp); err != nil {
		return nil, raw, fmt.Errorf("运单响应解析失败: %w", err)
	}
	return &shipResp, raw, nil
}

// VoidShipment 取消运单
func (c *UPSClient) VoidShipment(ctx context.Context, accessToken, shipmentID string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Delete(c.config.BaseURL + upsVoidPath + shipmentID)
	if err != nil {
		return fmt.Errorf("取消运单失败: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return &UpstreamError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
