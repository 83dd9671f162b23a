package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Adrian140/prep-center-sub001/internal/middleware"
	"github.com/Adrian140/prep-center-sub001/internal/model"
	"github.com/Adrian140/prep-center-sub001/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupUserTest(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:       "user-svc-test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "prep-center-test",
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.SysUser{}); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	return NewUserService(repository.NewUserRepository(db)), db
}

func createLoginUser(t *testing.T, db *gorm.DB, email, password string, status int) *model.SysUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	user := &model.SysUser{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "测试用户",
		CompanyID:    1,
		Role:         model.RoleClient,
		Status:       status,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return user
}

func TestUserService_Login(t *testing.T) {
	svc, db := setupUserTest(t)
	createLoginUser(t, db, "ok@test.local", "correct-password", model.UserStatusActive)

	user, access, refresh, err := svc.Login(context.Background(), "ok@test.local", "correct-password")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if user.Email != "ok@test.local" {
		t.Errorf("Email = %q", user.Email)
	}
	if access == "" || refresh == "" {
		t.Error("Token 对为空")
	}

	// access token 可被中间件解析
	claims, err := middleware.ParseToken(access)
	if err != nil {
		t.Fatalf("解析签发的 token 失败: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %d, want %d", claims.UserID, user.ID)
	}
}

func TestUserService_LoginRejections(t *testing.T) {
	svc, db := setupUserTest(t)
	createLoginUser(t, db, "ok@test.local", "correct-password", model.UserStatusActive)
	createLoginUser(t, db, "off@test.local", "correct-password", model.UserStatusDisabled)

	// 密码错误和账号不存在必须是同一个 401 提示
	_, _, _, errWrongPass := svc.Login(context.Background(), "ok@test.local", "wrong")
	_, _, _, errNoUser := svc.Login(context.Background(), "ghost@test.local", "whatever")

	if apiStatus(t, errWrongPass) != http.StatusUnauthorized {
		t.Errorf("密码错误应 401")
	}
	if apiStatus(t, errNoUser) != http.StatusUnauthorized {
		t.Errorf("账号不存在应 401")
	}
	if errWrongPass.Error() != errNoUser.Error() {
		t.Errorf("两种失败的提示应一致: %q vs %q", errWrongPass.Error(), errNoUser.Error())
	}

	// 停用账号 403
	_, _, _, errDisabled := svc.Login(context.Background(), "off@test.local", "correct-password")
	if apiStatus(t, errDisabled) != http.StatusForbidden {
		t.Errorf("停用账号应 403")
	}
}

func TestUserService_Refresh(t *testing.T) {
	svc, db := setupUserTest(t)
	createLoginUser(t, db, "ok@test.local", "correct-password", model.UserStatusActive)

	_, access, refresh, err := svc.Login(context.Background(), "ok@test.local", "correct-password")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	// refresh token 换新对
	user, newAccess, newRefresh, err := svc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("刷新失败: %v", err)
	}
	if user.Email != "ok@test.local" || newAccess == "" || newRefresh == "" {
		t.Error("刷新结果不完整")
	}

	// access token 不能当 refresh token 用
	_, _, _, err = svc.Refresh(context.Background(), access)
	if apiStatus(t, err) != http.StatusUnauthorized {
		t.Error("access token 冒充 refresh 应 401")
	}

	// 乱源 token
	_, _, _, err = svc.Refresh(context.Background(), "garbage.token.value")
	if apiStatus(t, err) != http.StatusUnauthorized {
		t.Error("垃圾 token 应 401")
	}
}
