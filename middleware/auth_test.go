package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zerofake/zerofake/utils"
)

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthRequired(), func(ctx *gin.Context) {
		id, ok := UserID(ctx)
		if !ok {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r
}

func TestAuthRequired_MissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-test-secret")
	r := newAuthTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthRequired_MalformedHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-test-secret")
	r := newAuthTestRouter()

	for _, header := range []string{"Token abc", "Bearer", "bearer-no-space"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want %d", header, w.Code, http.StatusUnauthorized)
		}
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-test-secret")
	r := newAuthTestRouter()

	token, err := utils.GenerateToken(99, "trainee", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestAuthRequired_RevokedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-test-secret")
	r := newAuthTestRouter()

	token, err := utils.GenerateToken(100, "revoked", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	utils.BlacklistToken(token, time.Now().Add(time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
