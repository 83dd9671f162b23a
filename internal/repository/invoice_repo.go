package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Adrian140/prep-center-sub001/internal/model"
	"gorm.io/gorm"
)

// ==================== InvoiceRepository 账单仓库 ====================

// InvoiceRepository 账单仓库接口
type InvoiceRepository interface {
	GetByOrderID(ctx context.Context, orderID int64) (*model.InvoiceFile, error)
	Upsert(ctx context.Context, invoice *model.InvoiceFile) error
	ListByIntegrationIDs(ctx context.Context, integrationIDs []int64, page, pageSize int) ([]model.InvoiceFile, int64, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository 创建账单仓库
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) GetByOrderID(ctx context.Context, orderID int64) (*model.InvoiceFile, error) {
	var invoice model.InvoiceFile
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Upsert 按订单幂等写入账单
// 先查后更/插：同一订单重复打单只更新已有行，绝不产生第二条
func (r *invoiceRepository) Upsert(ctx context.Context, invoice *model.InvoiceFile) error {
	var existing model.InvoiceFile
	err := r.db.WithContext(ctx).Where("order_id = ?", invoice.OrderID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(invoice).Error
	}
	if err != nil {
		return err
	}

	invoice.ID = existing.ID
	invoice.CreatedAt = existing.CreatedAt
	invoice.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) ListByIntegrationIDs(ctx context.Context, integrationIDs []int64, page, pageSize int) ([]model.InvoiceFile, int64, error) {
	var invoices []model.InvoiceFile
	var total int64

	db := r.db.WithContext(ctx).Model(&model.InvoiceFile{})
	if len(integrationIDs) > 0 {
		db = db.Where("integration_id IN ?", integrationIDs)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	err := db.Order("invoice_date DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&invoices).Error

	return invoices, total, err
}
