package task

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Adrian140/prep-center-sub001/internal/model"
	"github.com/Adrian140/prep-center-sub001/internal/repository"
	"github.com/Adrian140/prep-center-sub001/internal/service"
	"github.com/Adrian140/prep-center-sub001/pkg/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ==================== 辅助函数 ====================

const taskTestSecret = "token-task-test-secret-012345678"

func setupTaskTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Integration{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

// taskTokenServer 模拟 UPS OAuth 端点，记录调用次数
func taskTokenServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"task-fresh-token","token_type":"Bearer","expires_in":"14399"}`))
	}))
}

func newTestTokenTask(t *testing.T, db *gorm.DB, baseURL string) (*TokenTask, repository.IntegrationRepository, *utils.TokenCipher) {
	t.Helper()
	cipher, err := utils.NewTokenCipher(taskTestSecret)
	if err != nil {
		t.Fatalf("初始化加密器失败: %v", err)
	}
	repo := repository.NewIntegrationRepository(db)
	ups := service.NewUPSClient(service.UPSConfig{
		BaseURL:      baseURL,
		ClientID:     "task-client",
		ClientSecret: "task-secret",
		Timeout:      5 * time.Second,
	})
	tokenSvc := service.NewTokenService(repo, ups, cipher)

	task := NewTokenTask(repo, tokenSvc)
	task.sleepTime = 0 // 测试里不需要平滑波峰
	return task, repo, cipher
}

// ==================== TokenTask 测试 ====================

func TestTokenTask_RefreshJobPersistsToken(t *testing.T) {
	db := setupTaskTestDB(t)

	var calls int32
	server := taskTokenServer(t, &calls)
	defer server.Close()

	task, repo, cipher := newTestTokenTask(t, db, server.URL)

	// 还没拿过 Token 的活跃接入
	integration := &model.Integration{
		CompanyID:        1,
		UPSAccountNumber: "A1B2C3",
		Status:           model.IntegrationStatusActive,
	}
	if err := db.Create(integration).Error; err != nil {
		t.Fatalf("创建接入失败: %v", err)
	}

	task.refreshJob(context.Background())

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("上游调用次数 = %d, want 1", n)
	}

	// 刷新结果必须加密落库
	updated, err := repo.GetByID(context.Background(), integration.ID)
	if err != nil {
		t.Fatalf("读取接入失败: %v", err)
	}
	meta := updated.OAuthMetadata()
	if !meta.Encrypted || meta.AccessToken == "" {
		t.Fatalf("Token 未加密落库: encrypted=%v access_token=%q", meta.Encrypted, meta.AccessToken)
	}
	if meta.AccessToken == "task-fresh-token" {
		t.Error("落库的 Token 不应是明文")
	}
	plain, err := cipher.Decrypt(meta.AccessToken, meta.Encrypted)
	if err != nil {
		t.Fatalf("解密落库 Token 失败: %v", err)
	}
	if plain != "task-fresh-token" {
		t.Errorf("解密后 Token = %q, want %q", plain, "task-fresh-token")
	}
	if meta.ExpiresAt == nil || !meta.ExpiresAt.After(time.Now()) {
		t.Error("过期时间未写入或已过期")
	}
}

func TestTokenTask_RefreshJobSkipsErrorIntegrations(t *testing.T) {
	db := setupTaskTestDB(t)

	var calls int32
	server := taskTokenServer(t, &calls)
	defer server.Close()

	task, _, _ := newTestTokenTask(t, db, server.URL)

	// 凭证已失效的接入不参与保活，人工修复前不再反复打上游
	broken := &model.Integration{
		CompanyID:        1,
		UPSAccountNumber: "BROKEN",
		Status:           model.IntegrationStatusError,
		LastError:        "invalid_client",
	}
	if err := db.Create(broken).Error; err != nil {
		t.Fatalf("创建接入失败: %v", err)
	}

	task.refreshJob(context.Background())

	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("上游调用次数 = %d, want 0", n)
	}
}

func TestTokenTask_RefreshJobReusesFreshToken(t *testing.T) {
	db := setupTaskTestDB(t)

	var calls int32
	server := taskTokenServer(t, &calls)
	defer server.Close()

	task, repo, cipher := newTestTokenTask(t, db, server.URL)

	// 缓存里还有远未过期的 Token，保活任务不应打上游
	encToken, err := cipher.Encrypt("still-valid-token")
	if err != nil {
		t.Fatalf("加密失败: %v", err)
	}
	expiresAt := time.Now().Add(3 * time.Hour)
	integration := &model.Integration{
		CompanyID:        1,
		UPSAccountNumber: "A1B2C3",
		Status:           model.IntegrationStatusActive,
	}
	if err := integration.SetOAuthMetadata(&model.UPSOAuthMetadata{
		AccessToken: encToken,
		Encrypted:   true,
		ExpiresAt:   &expiresAt,
	}); err != nil {
		t.Fatalf("写入元数据失败: %v", err)
	}
	if err := db.Create(integration).Error; err != nil {
		t.Fatalf("创建接入失败: %v", err)
	}

	task.refreshJob(context.Background())

	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("上游调用次数 = %d, want 0", n)
	}

	updated, err := repo.GetByID(context.Background(), integration.ID)
	if err != nil {
		t.Fatalf("读取接入失败: %v", err)
	}
	meta := updated.OAuthMetadata()
	if meta.AccessToken != encToken {
		t.Error("未过期的 Token 不应被覆写")
	}
}
