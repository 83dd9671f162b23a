package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Adrian140/prep-center-sub001/internal/api/dto"
	"github.com/Adrian140/prep-center-sub001/internal/model"
	"github.com/Adrian140/prep-center-sub001/internal/repository"
	"github.com/Adrian140/prep-center-sub001/pkg/logger"
	"github.com/Adrian140/prep-center-sub001/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Token 来源
const (
	TokenSourceCached            = "cached"
	TokenSourceRefresh           = "refresh"
	TokenSourceClientCredentials = "client_credentials"
)

// tokenExpiryMargin 缓存 Token 的提前量
// 过期前 60 秒内就视为过期，避免拿着临界 Token 去打单
const tokenExpiryMargin = 60 * time.Second

// TokenService UPS OAuth Token 管理
// 缓存在 integration 的 JSONB 元数据里，带 TTL；
// 刷新按 integration 做 single-flight，并发请求共享同一次上游调用
type TokenService struct {
	integrationRepo repository.IntegrationRepository
	ups             *UPSClient
	cipher          *utils.TokenCipher

	group singleflight.Group
}

// NewTokenService 创建 Token 服务
func NewTokenService(integrationRepo repository.IntegrationRepository, ups *UPSClient, cipher *utils.TokenCipher) *TokenService {
	return &TokenService{
		integrationRepo: integrationRepo,
		ups:             ups,
		cipher:          cipher,
	}
}

type tokenResult struct {
	token  string
	source string
}

// GetValidToken 拿一个可用的 access token
// 返回值 source: cached / refresh / client_credentials
func (s *TokenService) GetValidToken(ctx context.Context, integration *model.Integration) (string, string, error) {
	// 1. 缓存命中直接用，不走网络
	meta := integration.OAuthMetadata()
	if token, ok := s.cachedToken(meta); ok {
		return token, TokenSourceCached, nil
	}

	// 2. single-flight 刷新，同一 integration 的并发请求共享结果
	key := strconv.FormatInt(integration.ID, 10)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.refreshToken(ctx, integration.ID)
	})
	if err != nil {
		return "", "", err
	}

	result := v.(tokenResult)
	return result.token, result.source, nil
}

// cachedToken 检查缓存 Token 是否还在有效期内（含提前量）
func (s *TokenService) cachedToken(meta *model.UPSOAuthMetadata) (string, bool) {
	if meta.AccessToken == "" || meta.ExpiresAt == nil {
		return "", false
	}
	if time.Until(*meta.ExpiresAt) <= tokenExpiryMargin {
		return "", false
	}

	token, err := s.cipher.Decrypt(meta.AccessToken, meta.Encrypted)
	if err != nil {
		// 解不开就当缓存失效，走刷新
		logger.Warn("缓存 Token 解密失败，转刷新", zap.Error(err))
		return "", false
	}
	return token, true
}

// refreshToken single-flight 内的实际刷新逻辑
// 重读最新的 integration 行：排队等锁的请求可能拿着已被刷新过的旧快照
func (s *TokenService) refreshToken(ctx context.Context, integrationID int64) (tokenResult, error) {
	integration, err := s.integrationRepo.GetByID(ctx, integrationID)
	if err != nil {
		return tokenResult{}, fmt.Errorf("读取接入失败: %w", err)
	}

	// 双重检查：前一个请求可能刚刷新完
	meta := integration.OAuthMetadata()
	if token, ok := s.cachedToken(meta); ok {
		return tokenResult{token: token, source: TokenSourceCached}, nil
	}

	// 1. 有 refresh token 先试刷新授权
	var tokenResp *dto.UPSTokenResponse
	source := TokenSourceClientCredentials

	if meta.RefreshToken != "" {
		refreshToken, decErr := s.cipher.Decrypt(meta.RefreshToken, meta.Encrypted)
		if decErr == nil {
			grant := url.Values{}
			grant.Set("grant_type", "refresh_token")
			grant.Set("refresh_token", refreshToken)

			resp, fetchErr := s.ups.FetchToken(ctx, grant)
			if fetchErr == nil && resp.AccessToken != "" {
				tokenResp = resp
				source = TokenSourceRefresh
			} else {
				logger.Warn("refresh_token 授权失败，回落 client_credentials",
					zap.Int64("integration_id", integration.ID), zap.Error(fetchErr))
			}
		}
	}

	// 2. 回落 client_credentials
	if tokenResp == nil {
		grant := url.Values{}
		grant.Set("grant_type", "client_credentials")

		resp, fetchErr := s.ups.FetchToken(ctx, grant)
		if fetchErr != nil {
			s.markFailed(ctx, integration.ID, fetchErr)
			return tokenResult{}, fetchErr
		}
		tokenResp = resp
	}

	// 3. 成功，落库
	if err := s.persistToken(ctx, integration, tokenResp); err != nil {
		return tokenResult{}, err
	}

	return tokenResult{token: tokenResp.AccessToken, source: source}, nil
}

// persistToken 重新加密 Token 并整体覆写元数据
func (s *TokenService) persistToken(ctx context.Context, integration *model.Integration, resp *dto.UPSTokenResponse) error {
	now := time.Now()

	encAccess, err := s.cipher.Encrypt(resp.AccessToken)
	if err != nil {
		return fmt.Errorf("token 加密失败: %w", err)
	}

	meta := &model.UPSOAuthMetadata{
		AccessToken: encAccess,
		Encrypted:   true,
		TokenType:   resp.TokenType,
		Scope:       resp.Scope,
	}

	if seconds, err := resp.ExpiresIn.Int64(); err == nil && seconds > 0 {
		expiresAt := now.Add(time.Duration(seconds) * time.Second)
		meta.ExpiresAt = &expiresAt
	}

	if resp.RefreshToken != "" {
		encRefresh, err := s.cipher.Encrypt(resp.RefreshToken)
		if err != nil {
			return fmt.Errorf("refresh token 加密失败: %w", err)
		}
		meta.RefreshToken = encRefresh

		if seconds, err := resp.RefreshExpiresIn.Int64(); err == nil && seconds > 0 {
			refreshExpiresAt := now.Add(time.Duration(seconds) * time.Second)
			meta.RefreshExpiresAt = &refreshExpiresAt
		}
	}

	if err := integration.SetOAuthMetadata(meta); err != nil {
		return err
	}
	integration.Status = model.IntegrationStatusActive
	integration.LastError = ""
	integration.LastSyncedAt = &now

	// last-writer-wins，无乐观锁
	return s.integrationRepo.Update(ctx, integration)
}

// markFailed Token 彻底拿不到时标记接入异常
func (s *TokenService) markFailed(ctx context.Context, integrationID int64, cause error) {
	err := s.integrationRepo.UpdateFields(ctx, integrationID, map[string]interface{}{
		"status":     model.IntegrationStatusError,
		"last_error": cause.Error(),
	})
	if err != nil {
		logger.Error("接入状态更新失败", zap.Int64("integration_id", integrationID), zap.Error(err))
	}
}
