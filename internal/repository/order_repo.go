package repository

import (
	"context"
	"time"

	"github.com/Adrian140/prep-center-sub001/internal/model"
	"gorm.io/gorm"
)

// ==================== OrderFilter 过滤条件 ====================

// OrderFilter 订单查询条件
type OrderFilter struct {
	CompanyID int64
	UserID    int64
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// ==================== OrderRepository 订单仓库 ====================

// OrderRepository 发货订单仓库接口
type OrderRepository interface {
	Create(ctx context.Context, order *model.ShippingOrder) error
	GetByID(ctx context.Context, id int64) (*model.ShippingOrder, error)
	List(ctx context.Context, filter OrderFilter) ([]model.ShippingOrder, int64, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	MarkError(ctx context.Context, id int64, errMsg string) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.ShippingOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.ShippingOrder, error) {
	var order model.ShippingOrder
	err := r.db.WithContext(ctx).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]model.ShippingOrder, int64, error) {
	var orders []model.ShippingOrder
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ShippingOrder{})

	if filter.CompanyID > 0 {
		db = db.Where("company_id = ?", filter.CompanyID)
	}
	if filter.UserID > 0 {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.StartDate != nil {
		db = db.Where("created_at >= ?", filter.StartDate)
	}
	if filter.EndDate != nil {
		db = db.Where("created_at <= ?", filter.EndDate)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	err := db.Order("created_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	return r.db.WithContext(ctx).Model(&model.ShippingOrder{}).Where("id = ?", id).Updates(fields).Error
}

// MarkError 标记打单失败
// 只写 status/last_error，不清空已有的打单结果字段
func (r *orderRepository) MarkError(ctx context.Context, id int64, errMsg string) error {
	return r.UpdateFields(ctx, id, map[string]interface{}{
		"status":     model.OrderStatusError,
		"last_error": errMsg,
	})
}
