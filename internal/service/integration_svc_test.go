package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/Adrian140/prep-center-sub001/internal/api/dto"
	"github.com/Adrian140/prep-center-sub001/internal/model"
	"github.com/Adrian140/prep-center-sub001/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ==================== 测试辅助 ====================

func setupIntegrationTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.SysUser{}, &model.Integration{}); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	return db
}

// Get/Create/List 不涉及 Token 流程，tokenSvc 传 nil
func newTestIntegrationService(t *testing.T, db *gorm.DB) *IntegrationService {
	t.Helper()
	return NewIntegrationService(
		repository.NewIntegrationRepository(db),
		repository.NewUserRepository(db),
		nil,
	)
}

func createIntegrationTestUser(t *testing.T, db *gorm.DB, companyID int64, role string, limited bool) *model.SysUser {
	t.Helper()
	user := &model.SysUser{
		Email:     fmt.Sprintf("it-user-%d-%s-%v@test.local", companyID, role, limited),
		CompanyID: companyID,
		Role:      role,
		Limited:   limited,
		Status:    model.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return user
}

func createCompanyIntegration(t *testing.T, db *gorm.DB, companyID int64) *model.Integration {
	t.Helper()
	integration := &model.Integration{
		CompanyID:        companyID,
		UPSAccountNumber: fmt.Sprintf("ACC%03d", companyID),
		Status:           model.IntegrationStatusActive,
	}
	if err := db.Create(integration).Error; err != nil {
		t.Fatalf("创建接入失败: %v", err)
	}
	return integration
}

// ==================== IntegrationService 测试 ====================

func TestIntegrationService_GetForUser(t *testing.T) {
	db := setupIntegrationTestDB(t)
	svc := newTestIntegrationService(t, db)
	ctx := context.Background()

	integration := createCompanyIntegration(t, db, 1)
	owner := createIntegrationTestUser(t, db, 1, model.RoleClient, false)
	outsider := createIntegrationTestUser(t, db, 2, model.RoleClient, false)
	admin := createIntegrationTestUser(t, db, 0, model.RoleAdmin, false)

	// 同公司用户可以看
	got, err := svc.GetForUser(ctx, owner.ID, integration.ID)
	if err != nil {
		t.Fatalf("同公司用户查询失败: %v", err)
	}
	if got.UPSAccountNumber != integration.UPSAccountNumber {
		t.Errorf("UPSAccountNumber = %q, want %q", got.UPSAccountNumber, integration.UPSAccountNumber)
	}

	// 其他公司用户 403
	if _, err := svc.GetForUser(ctx, outsider.ID, integration.ID); apiStatus(t, err) != http.StatusForbidden {
		t.Errorf("跨公司查询 status = %d, want 403", apiStatus(t, err))
	}

	// 全局管理员不受公司限制
	if _, err := svc.GetForUser(ctx, admin.ID, integration.ID); err != nil {
		t.Errorf("管理员查询失败: %v", err)
	}

	// 不存在 404
	if _, err := svc.GetForUser(ctx, owner.ID, 9999); apiStatus(t, err) != http.StatusNotFound {
		t.Errorf("不存在接入 status = %d, want 404", apiStatus(t, err))
	}
}

func TestIntegrationService_CreateOnePerCompany(t *testing.T) {
	db := setupIntegrationTestDB(t)
	svc := newTestIntegrationService(t, db)
	ctx := context.Background()

	user := createIntegrationTestUser(t, db, 1, model.RoleClient, false)

	first, err := svc.Create(ctx, user.ID, &dto.CreateIntegrationRequest{UPSAccountNumber: "A1B2C3"})
	if err != nil {
		t.Fatalf("首次登记失败: %v", err)
	}
	if first.CompanyID != 1 || first.Status != model.IntegrationStatusActive {
		t.Errorf("接入归属/状态错误: company=%d status=%s", first.CompanyID, first.Status)
	}

	// 同公司第二条被拒
	if _, err := svc.Create(ctx, user.ID, &dto.CreateIntegrationRequest{UPSAccountNumber: "X9Y8Z7"}); apiStatus(t, err) != http.StatusBadRequest {
		t.Errorf("重复登记 status = %d, want 400", apiStatus(t, err))
	}
}

func TestIntegrationService_ListScopedToCompany(t *testing.T) {
	db := setupIntegrationTestDB(t)
	svc := newTestIntegrationService(t, db)
	ctx := context.Background()

	createCompanyIntegration(t, db, 1)
	createCompanyIntegration(t, db, 2)
	user := createIntegrationTestUser(t, db, 1, model.RoleClient, false)

	list, err := svc.ListForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(list) != 1 || list[0].CompanyID != 1 {
		t.Fatalf("接入列表 = %+v, want 仅本公司 1 条", list)
	}
}
