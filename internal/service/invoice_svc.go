package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/Adrian140/prep-center-sub001/internal/model"
	"github.com/Adrian140/prep-center-sub001/internal/repository"
	"gorm.io/gorm"
)

// ==================== InvoiceService 账单服务 ====================

type InvoiceService struct {
	invoiceRepo     repository.InvoiceRepository
	integrationRepo repository.IntegrationRepository
	userRepo        repository.UserRepository
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	integrationRepo repository.IntegrationRepository,
	userRepo repository.UserRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:     invoiceRepo,
		integrationRepo: integrationRepo,
		userRepo:        userRepo,
	}
}

// ListForUser 按用户可见范围分页查询账单
// 完整管理员可见全部，其余用户只能看到自己公司接入产生的账单
func (s *InvoiceService) ListForUser(ctx context.Context, userID int64, page, pageSize int) ([]model.InvoiceFile, int64, error) {
	// 1. 查询用户
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, 0, NewAPIError(http.StatusUnauthorized, "用户不存在")
	}

	// 2. 完整管理员不做范围限制
	if user.IsFullAdmin() {
		return s.invoiceRepo.ListByIntegrationIDs(ctx, nil, page, pageSize)
	}

	// 3. 其余用户按公司接入收敛范围
	integrations, err := s.integrationRepo.ListByCompanyID(ctx, user.CompanyID)
	if err != nil {
		return nil, 0, err
	}
	if len(integrations) == 0 {
		return []model.InvoiceFile{}, 0, nil
	}

	ids := make([]int64, 0, len(integrations))
	for _, it := range integrations {
		ids = append(ids, it.ID)
	}
	return s.invoiceRepo.ListByIntegrationIDs(ctx, ids, page, pageSize)
}

// GetForOrder 查询某订单的账单
func (s *InvoiceService) GetForOrder(ctx context.Context, userID, orderID int64) (*model.InvoiceFile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, NewAPIError(http.StatusUnauthorized, "用户不存在")
	}

	invoice, err := s.invoiceRepo.GetByOrderID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewAPIError(http.StatusNotFound, "账单不存在")
	}
	if err != nil {
		return nil, err
	}

	if !user.IsFullAdmin() {
		integrations, err := s.integrationRepo.ListByCompanyID(ctx, user.CompanyID)
		if err != nil {
			return nil, err
		}
		allowed := false
		for _, it := range integrations {
			if it.ID == invoice.IntegrationID {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, NewAPIError(http.StatusForbidden, "无权查看该账单")
		}
	}
	return invoice, nil
}
