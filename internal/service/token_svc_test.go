package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Adrian140/prep-center-sub001/internal/model"
	"github.com/Adrian140/prep-center-sub001/internal/repository"
	"github.com/Adrian140/prep-center-sub001/pkg/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ==================== 测试辅助 ====================

const tokenTestSecret = "token-svc-test-secret-0123456789"

func setupTokenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Integration{}); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	return db
}

// tokenServer 模拟 UPS OAuth 端点
// refuseRefresh=true 时对 refresh_token 授权返回 401，验证回落路径
func tokenServer(t *testing.T, calls *int32, refuseRefresh bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)

		// 认证必须是 HTTP Basic
		if user, pass, ok := r.BasicAuth(); !ok || user != "test-client" || pass != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		grantType := r.FormValue("grant_type")
		if grantType == "refresh_token" && refuseRefresh {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}

		resp := map[string]interface{}{
			"access_token":  "fresh-token-" + grantType,
			"refresh_token": "new-refresh-token",
			"token_type":    "Bearer",
			"expires_in":    "3600", // UPS 把秒数当字符串返回
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestTokenService(t *testing.T, db *gorm.DB, baseURL string) (*TokenService, repository.IntegrationRepository) {
	t.Helper()
	cipher, err := utils.NewTokenCipher(tokenTestSecret)
	if err != nil {
		t.Fatalf("创建加密器失败: %v", err)
	}
	ups := NewUPSClient(UPSConfig{
		BaseURL:      baseURL,
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		Timeout:      5 * time.Second,
	})
	repo := repository.NewIntegrationRepository(db)
	return NewTokenService(repo, ups, cipher), repo
}

func createTestIntegration(t *testing.T, db *gorm.DB, meta *model.UPSOAuthMetadata) *model.Integration {
	t.Helper()
	integration := &model.Integration{
		CompanyID:        1,
		UPSAccountNumber: "A1B2C3",
		Status:           model.IntegrationStatusActive,
	}
	if meta != nil {
		if err := integration.SetOAuthMetadata(meta); err != nil {
			t.Fatalf("写入元数据失败: %v", err)
		}
	}
	if err := db.Create(integration).Error; err != nil {
		t.Fatalf("创建接入失败: %v", err)
	}
	return integration
}

// ==================== 单元测试 ====================

func TestTokenService_CachedTokenReuse(t *testing.T) {
	db := setupTokenTestDB(t)
	var calls int32
	server := tokenServer(t, &calls, false)
	defer server.Close()

	svc, _ := newTestTokenService(t, db, server.URL)
	cipher, _ := utils.NewTokenCipher(tokenTestSecret)

	// 有效期还剩 1 小时的缓存 Token
	encrypted, _ := cipher.Encrypt("cached-access-token")
	expiresAt := time.Now().Add(time.Hour)
	integration := createTestIntegration(t, db, &model.UPSOAuthMetadata{
		AccessToken: encrypted,
		Encrypted:   true,
		ExpiresAt:   &expiresAt,
	})

	token, source, err := svc.GetValidToken(context.Background(), integration)
	if err != nil {
		t.Fatalf("取 Token 失败: %v", err)
	}
	if token != "cached-access-token" {
		t.Errorf("token = %q", token)
	}
	if source != TokenSourceCached {
		t.Errorf("source = %q, want cached", source)
	}
	// 缓存命中不应有任何网络请求
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("上游调用次数 = %d, want 0", n)
	}
}

func TestTokenService_ExpiringSoonTriggersRefresh(t *testing.T) {
	db := setupTokenTestDB(t)
	var calls int32
	server := tokenServer(t, &calls, false)
	defer server.Close()

	svc, _ := newTestTokenService(t, db, server.URL)
	cipher, _ := utils.NewTokenCipher(tokenTestSecret)

	// 过期前 60 秒以内：视为过期
	encAccess, _ := cipher.Encrypt("stale-token")
	encRefresh, _ := cipher.Encrypt("the-refresh-token")
	expiresAt := time.Now().Add(30 * time.Second)
	integration := createTestIntegration(t, db, &model.UPSOAuthMetadata{
		AccessToken:  encAccess,
		RefreshToken: encRefresh,
		Encrypted:    true,
		ExpiresAt:    &expiresAt,
	})

	token, source, err := svc.GetValidToken(context.Background(), integration)
	if err != nil {
		t.Fatalf("取 Token 失败: %v", err)
	}
	if source != TokenSourceRefresh {
		t.Errorf("source = %q, want refresh", source)
	}
	if token != "fresh-token-refresh_token" {
		t.Errorf("token = %q", token)
	}
}

func TestTokenService_ClientCredentialsWhenNoRefreshToken(t *testing.T) {
	db := setupTokenTestDB(t)
	var calls int32
	server := tokenServer(t, &calls, false)
	defer server.Close()

	svc, repo := newTestTokenService(t, db, server.URL)

	// 全新接入：没有任何 Token，直接 client_credentials
	integration := createTestIntegration(t, db, nil)

	token, source, err := svc.GetValidToken(context.Background(), integration)
	if err != nil {
		t.Fatalf("取 Token 失败: %v", err)
	}
	if source != TokenSourceClientCredentials {
		t.Errorf("source = %q, want client_credentials", source)
	}
	if token != "fresh-token-client_credentials" {
		t.Errorf("token = %q", token)
	}

	// 落库后的元数据必须是密文且带过期时间
	stored, err := repo.GetByID(context.Background(), integration.ID)
	if err != nil {
		t.Fatalf("重读接入失败: %v", err)
	}
	meta := stored.OAuthMetadata()
	if !meta.Encrypted {
		t.Error("落库 Token 应标记为已加密")
	}
	if meta.AccessToken == token {
		t.Error("落库的 access token 不应是明文")
	}
	if meta.ExpiresAt == nil || time.Until(*meta.ExpiresAt) < 50*time.Minute {
		t.Errorf("ExpiresAt = %v, 过期时间未正确写入", meta.ExpiresAt)
	}
	if stored.Status != model.IntegrationStatusActive {
		t.Errorf("Status = %q", stored.Status)
	}
	if stored.LastSyncedAt == nil {
		t.Error("LastSyncedAt 未写入")
	}

	// 第二次调用走缓存，不应产生新的上游请求
	before := atomic.LoadInt32(&calls)
	_, source2, err := svc.GetValidToken(context.Background(), stored)
	if err != nil {
		t.Fatalf("第二次取 Token 失败: %v", err)
	}
	if source2 != TokenSourceCached {
		t.Errorf("第二次 source = %q, want cached", source2)
	}
	if after := atomic.LoadInt32(&calls); after != before {
		t.Errorf("第二次调用产生了上游请求: %d -> %d", before, after)
	}
}

func TestTokenService_RefreshFailureFallsBack(t *testing.T) {
	db := setupTokenTestDB(t)
	var calls int32
	server := tokenServer(t, &calls, true) // refresh_token 授权被拒
	defer server.Close()

	svc, _ := newTestTokenService(t, db, server.URL)
	cipher, _ := utils.NewTokenCipher(tokenTestSecret)

	encRefresh, _ := cipher.Encrypt("rejected-refresh-token")
	integration := createTestIntegration(t, db, &model.UPSOAuthMetadata{
		RefreshToken: encRefresh,
		Encrypted:    true,
	})

	token, source, err := svc.GetValidToken(context.Background(), integration)
	if err != nil {
		t.Fatalf("回落路径不应报错: %v", err)
	}
	if source != TokenSourceClientCredentials {
		t.Errorf("source = %q, want client_credentials", source)
	}
	if token != "fresh-token-client_credentials" {
		t.Errorf("token = %q", token)
	}
	// refresh 一次 + client_credentials 一次
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("上游调用次数 = %d, want 2", n)
	}
}

func TestTokenService_ConcurrentRefreshSharesOneUpstreamCall(t *testing.T) {
	db := setupTokenTestDB(t)

	// 慢响应的 Token 端点：并发请求全部撞进同一个刷新窗口
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(150 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"shared-token","token_type":"Bearer","expires_in":3600}`))
	}))
	defer server.Close()

	svc, _ := newTestTokenService(t, db, server.URL)
	integration := createTestIntegration(t, db, nil)

	const workers = 8
	var wg sync.WaitGroup
	tokens := make([]string, workers)
	errs := make([]error, workers)
	start := make(chan struct{})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			tokens[i], _, errs[i] = svc.GetValidToken(context.Background(), integration)
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d 取 Token 失败: %v", i, errs[i])
		}
		if tokens[i] != "shared-token" {
			t.Errorf("worker %d token = %q", i, tokens[i])
		}
	}

	// 同一接入的并发刷新共享一次上游调用
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("上游调用次数 = %d, want 1", n)
	}
}

func TestTokenService_TotalFailureMarksIntegration(t *testing.T) {
	db := setupTokenTestDB(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"down"}`))
	}))
	defer server.Close()

	svc, repo := newTestTokenService(t, db, server.URL)
	integration := createTestIntegration(t, db, nil)

	_, _, err := svc.GetValidToken(context.Background(), integration)
	if err == nil {
		t.Fatal("上游全挂时应该报错")
	}

	stored, _ := repo.GetByID(context.Background(), integration.ID)
	if stored.Status != model.IntegrationStatusError {
		t.Errorf("Status = %q, want error", stored.Status)
	}
	if stored.LastError == "" {
		t.Error("LastError 未写入")
	}
}
