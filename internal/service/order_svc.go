package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/Adrian140/prep-center-sub001/internal/api/dto"
	"github.com/Adrian140/prep-center-sub001/internal/model"
	"github.com/Adrian140/prep-center-sub001/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderService 发货订单管理
type OrderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, userRepo repository.UserRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, userRepo: userRepo}
}

// Create 创建发货订单
// 归属取调用方的公司/用户，管理员也一样（代客下单走客户账号）
func (s *OrderService) Create(ctx context.Context, userID int64, req *dto.CreateOrderRequest) (*model.ShippingOrder, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, NewAPIError(http.StatusUnauthorized, "用户不存在")
	}

	order := &model.ShippingOrder{
		ExternalOrderID: req.ExternalOrderID,
		CompanyID:       user.CompanyID,
		UserID:          user.ID,
		ShipFrom:        addressToMap(req.ShipFrom),
		ShipTo:          addressToMap(req.ShipTo),
		WeightKg:        req.WeightKg,
		LengthCm:        req.LengthCm,
		WidthCm:         req.WidthCm,
		HeightCm:        req.HeightCm,
		ServiceCode:     req.ServiceCode,
		PackagingType:   req.PackagingType,
		Status:          model.OrderStatusPending,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, NewAPIError(http.StatusInternalServerError, "订单创建失败: %v", err)
	}
	return order, nil
}

// GetForUser 查单（带访问控制）
func (s *OrderService) GetForUser(ctx context.Context, userID, orderID int64) (*model.ShippingOrder, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, NewAPIError(http.StatusUnauthorized, "用户不存在")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewAPIError(http.StatusNotFound, "订单不存在")
		}
		return nil, NewAPIError(http.StatusInternalServerError, "订单查询失败: %v", err)
	}

	if !user.CanAccessOrder(order) {
		return nil, NewAPIError(http.StatusForbidden, "无权查看该订单")
	}
	return order, nil
}

// List 订单列表
// 非受限管理员不受公司限制，其他人只能看本公司
func (s *OrderService) List(ctx context.Context, userID int64, filter repository.OrderFilter) ([]model.ShippingOrder, int64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, 0, NewAPIError(http.StatusUnauthorized, "用户不存在")
	}

	if !user.IsFullAdmin() {
		filter.CompanyID = user.CompanyID
	}

	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, NewAPIError(http.StatusInternalServerError, "订单查询失败: %v", err)
	}
	return orders, total, nil
}

func addressToMap(a dto.OrderAddress) datatypes.JSONMap {
	return datatypes.JSONMap{
		"name":        a.Name,
		"address":     a.Address,
		"city":        a.City,
		"postal_code": a.PostalCode,
		"country":     model.CountryOrDefault(a.Country),
	}
}
