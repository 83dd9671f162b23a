package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func setupTestJWT() {
	SetJWTConfig(&JWTConfig{
		SecretKey:       "jwt-middleware-test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "prep-center-test",
	})
}

func TestGenerateTokenPair_AndParse(t *testing.T) {
	setupTestJWT()

	access, refresh, err := GenerateTokenPair(42, "user@test.local", "client")
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}

	// access token
	claims, err := ParseToken(access)
	if err != nil {
		t.Fatalf("解析 access token 失败: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "user@test.local" || claims.Role != "client" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Subject != "access" {
		t.Errorf("Subject = %q, want access", claims.Subject)
	}

	// refresh token 的 subject 必须区分开
	refreshClaims, err := ParseToken(refresh)
	if err != nil {
		t.Fatalf("解析 refresh token 失败: %v", err)
	}
	if refreshClaims.Subject != "refresh" {
		t.Errorf("refresh Subject = %q", refreshClaims.Subject)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	setupTestJWT()
	access, _, _ := GenerateTokenPair(1, "a@b.c", "client")

	SetJWTConfig(&JWTConfig{SecretKey: "a-different-secret", AccessTokenTTL: time.Hour})
	if _, err := ParseToken(access); err == nil {
		t.Error("换密钥后旧 token 应该解析失败")
	}
}

// ==================== 中间件行为 ====================

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_RejectsBeforeHandler(t *testing.T) {
	setupTestJWT()
	r := setupAuthRouter()

	// 未带 token：401
	if w := doRequest(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("无 token status = %d, want 401", w.Code)
	}

	// 格式错误
	if w := doRequest(r, "Token abc"); w.Code != http.StatusUnauthorized {
		t.Errorf("坏格式 status = %d, want 401", w.Code)
	}

	// 乱七八糟的 token
	if w := doRequest(r, "Bearer not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("坏 token status = %d, want 401", w.Code)
	}
}

func TestJWTAuth_RefreshTokenNotAcceptedAsAccess(t *testing.T) {
	setupTestJWT()
	r := setupAuthRouter()

	_, refresh, _ := GenerateTokenPair(7, "u@test.local", "client")
	if w := doRequest(r, "Bearer "+refresh); w.Code != http.StatusUnauthorized {
		t.Errorf("refresh token 当 access 用 status = %d, want 401", w.Code)
	}
}

func TestJWTAuth_PassesValidToken(t *testing.T) {
	setupTestJWT()
	r := setupAuthRouter()

	access, _, _ := GenerateTokenPair(7, "u@test.local", "client")
	w := doRequest(r, "Bearer "+access)
	if w.Code != http.StatusOK {
		t.Fatalf("有效 token status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); body != `{"user_id":7}` {
		t.Errorf("body = %s", body)
	}
}
