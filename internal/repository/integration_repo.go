package repository

import (
	"context"
	"time"

	"github.com/Adrian140/prep-center-sub001/internal/model"
	"gorm.io/gorm"
)

// ==================== IntegrationRepository 接入仓库 ====================

// IntegrationRepository UPS 接入仓库接口
type IntegrationRepository interface {
	Create(ctx context.Context, integration *model.Integration) error
	GetByID(ctx context.Context, id int64) (*model.Integration, error)
	GetByCompanyID(ctx context.Context, companyID int64) (*model.Integration, error)
	ListByCompanyID(ctx context.Context, companyID int64) ([]model.Integration, error)
	Update(ctx context.Context, integration *model.Integration) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	FindExpiring(ctx context.Context, within time.Duration) ([]model.Integration, error)
}

type integrationRepository struct {
	db *gorm.DB
}

// NewIntegrationRepository 创建接入仓库
func NewIntegrationRepository(db *gorm.DB) IntegrationRepository {
	return &integrationRepository{db: db}
}

func (r *integrationRepository) Create(ctx context.Context, integration *model.Integration) error {
	return r.db.WithContext(ctx).Create(integration).Error
}

func (r *integrationRepository) GetByID(ctx context.Context, id int64) (*model.Integration, error) {
	var integration model.Integration
	err := r.db.WithContext(ctx).First(&integration, id).Error
	if err != nil {
		return nil, err
	}
	return &integration, nil
}

// GetByCompanyID 取公司的 UPS 接入
// 一个公司目前只允许一条 active 接入，取最新一条
func (r *integrationRepository) GetByCompanyID(ctx context.Context, companyID int64) (*model.Integration, error) {
	var integration model.Integration
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		First(&integration).Error
	if err != nil {
		return nil, err
	}
	return &integration, nil
}

func (r *integrationRepository) ListByCompanyID(ctx context.Context, companyID int64) ([]model.Integration, error) {
	var list []model.Integration
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// Update 整行保存
// Token 元数据就是这里的 last-writer-wins 写入点，没有乐观锁
func (r *integrationRepository) Update(ctx context.Context, integration *model.Integration) error {
	return r.db.WithContext(ctx).Save(integration).Error
}

func (r *integrationRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	return r.db.WithContext(ctx).Model(&model.Integration{}).Where("id = ?", id).Updates(fields).Error
}

// FindExpiring 找出 Token 即将过期的接入，给保活任务用
// 过期时间存在 JSONB 里，这里只按状态粗筛，精确判断交给 TokenService
func (r *integrationRepository) FindExpiring(ctx context.Context, within time.Duration) ([]model.Integration, error) {
	var list []model.Integration
	err := r.db.WithContext(ctx).
		Where("status = ?", model.IntegrationStatusActive).
		Find(&list).Error
	return list, err
}
