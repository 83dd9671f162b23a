package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/Adrian140/prep-center-sub001/internal/api/dto"
	"github.com/Adrian140/prep-center-sub001/internal/model"
	"github.com/Adrian140/prep-center-sub001/internal/repository"
	"gorm.io/gorm"
)

// IntegrationService UPS 接入管理
type IntegrationService struct {
	integrationRepo repository.IntegrationRepository
	userRepo        repository.UserRepository
	tokenSvc        *TokenService
}

// NewIntegrationService 创建接入服务
func NewIntegrationService(integrationRepo repository.IntegrationRepository, userRepo repository.UserRepository, tokenSvc *TokenService) *IntegrationService {
	return &IntegrationService{
		integrationRepo: integrationRepo,
		userRepo:        userRepo,
		tokenSvc:        tokenSvc,
	}
}

// Create 登记公司的 UPS 账号
// OAuth 凭证（client id/secret）是服务级配置，这里只存账号归属信息
func (s *IntegrationService) Create(ctx context.Context, userID int64, req *dto.CreateIntegrationRequest) (*model.Integration, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, NewAPIError(http.StatusUnauthorized, "用户不存在")
	}
	if user.CompanyID == 0 && !user.IsFullAdmin() {
		return nil, NewAPIError(http.StatusForbidden, "用户未归属公司")
	}

	// 一个公司只允许一条接入
	if _, err := s.integrationRepo.GetByCompanyID(ctx, user.CompanyID); err == nil {
		return nil, NewAPIError(http.StatusBadRequest, "该公司已配置 UPS 接入")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewAPIError(http.StatusInternalServerError, "接入查询失败: %v", err)
	}

	integration := &model.Integration{
		CompanyID:        user.CompanyID,
		UPSAccountNumber: req.UPSAccountNumber,
		OAuthScope:       req.OAuthScope,
		Status:           model.IntegrationStatusActive,
	}
	if err := s.integrationRepo.Create(ctx, integration); err != nil {
		return nil, NewAPIError(http.StatusInternalServerError, "接入创建失败: %v", err)
	}
	return integration, nil
}

// ListForUser 查自己公司的接入（管理员看全部时传 companyID=0 不限制的场景暂不开放）
func (s *IntegrationService) ListForUser(ctx context.Context, userID int64) ([]model.Integration, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, NewAPIError(http.StatusUnauthorized, "用户不存在")
	}
	return s.integrationRepo.ListByCompanyID(ctx, user.CompanyID)
}

// GetForUser 查接入详情，越权访问和不存在分别给 403/404
func (s *IntegrationService) GetForUser(ctx context.Context, userID, integrationID int64) (*model.Integration, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, NewAPIError(http.StatusUnauthorized, "用户不存在")
	}

	integration, err := s.integrationRepo.GetByID(ctx, integrationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewAPIError(http.StatusNotFound, "接入不存在")
		}
		return nil, NewAPIError(http.StatusInternalServerError, "接入查询失败: %v", err)
	}

	if !user.IsFullAdmin() && user.CompanyID != integration.CompanyID {
		return nil, NewAPIError(http.StatusForbidden, "无权查看该接入")
	}
	return integration, nil
}

// TestConnection 强制走一次 Token 获取来验证凭证
func (s *IntegrationService) TestConnection(ctx context.Context, userID, integrationID int64) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", NewAPIError(http.StatusUnauthorized, "用户不存在")
	}

	integration, err := s.integrationRepo.GetByID(ctx, integrationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", NewAPIError(http.StatusNotFound, "接入不存在")
		}
		return "", NewAPIError(http.StatusInternalServerError, "接入查询失败: %v", err)
	}

	if !user.IsFullAdmin() && user.CompanyID != integration.CompanyID {
		return "", NewAPIError(http.StatusForbidden, "无权操作该接入")
	}

	_, source, err := s.tokenSvc.GetValidToken(ctx, integration)
	if err != nil {
		return "", NewAPIError(http.StatusBadGateway, "UPS Token 获取失败: %v", err)
	}
	return source, nil
}
