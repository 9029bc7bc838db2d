package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace/internal/middleware"

	"github.com/gin-gonic/gin"
)

// The tests below exercise the validation paths, which all fail before any
// storage call is made, so handlers are wired with a nil *gorm.DB.

// asUser injects an authenticated user the way the auth middleware would.
func asUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", RegisterHandler(nil))

	tests := []struct {
		name string
		body any
		want int
	}{
		{"missing fields", gin.H{"username": "alice"}, http.StatusBadRequest},
		{"username too short", gin.H{"username": "a", "email": "a@example.com", "password": "pw"}, http.StatusBadRequest},
		{"username too long", gin.H{"username": "abcdefghijklmnopqrstu", "email": "a@example.com", "password": "pw"}, http.StatusBadRequest},
		{"malformed email", gin.H{"username": "alice", "email": "not-an-email", "password": "pw"}, http.StatusBadRequest},
		{"email without domain dot", gin.H{"username": "alice", "email": "a@b", "password": "pw"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, r, http.MethodPost, "/register", tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestLoginRejectsMalformedRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", LoginHandler(nil, "secret"))

	w := performJSON(t, r, http.MethodPost, "/login", gin.H{"email": "a@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestPostItemValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unauthenticated", func(t *testing.T) {
		r := gin.New()
		r.POST("/post", PostItemHandler(nil, nil))
		w := performJSON(t, r, http.MethodPost, "/post", gin.H{"name": "Bike", "description": "red", "price": 50})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	r := gin.New()
	r.POST("/post", asUser(1), PostItemHandler(nil, nil))

	tests := []struct {
		name string
		body any
	}{
		{"missing name", gin.H{"description": "red", "price": 50}},
		{"missing price", gin.H{"name": "Bike", "description": "red"}},
		{"zero price", gin.H{"name": "Bike", "description": "red", "price": 0}},
		{"negative price", gin.H{"name": "Bike", "description": "red", "price": -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, r, http.MethodPost, "/post", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestBlockValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unauthenticated", func(t *testing.T) {
		r := gin.New()
		r.GET("/block/:user_id", BlockUserHandler(nil))
		w := performJSON(t, r, http.MethodGet, "/block/2", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	r := gin.New()
	r.GET("/block/:user_id", asUser(3), BlockUserHandler(nil))

	t.Run("self block rejected", func(t *testing.T) {
		w := performJSON(t, r, http.MethodGet, "/block/3", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
		}
	})
	t.Run("non numeric target", func(t *testing.T) {
		w := performJSON(t, r, http.MethodGet, "/block/bob", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestSendMoneyValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unauthenticated", func(t *testing.T) {
		r := gin.New()
		r.POST("/send/:user_id", SendMoneyHandler(nil))
		w := performJSON(t, r, http.MethodPost, "/send/2", gin.H{"amount": 10})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	r := gin.New()
	r.POST("/send/:user_id", asUser(1), SendMoneyHandler(nil))

	tests := []struct {
		name string
		path string
		body any
	}{
		{"zero amount", "/send/2", gin.H{"amount": 0}},
		{"negative amount", "/send/2", gin.H{"amount": -25.5}},
		{"non numeric amount", "/send/2", gin.H{"amount": "lots"}},
		{"non numeric target", "/send/bob", gin.H{"amount": 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, r, http.MethodPost, tt.path, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestAdminMiddlewareRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// No auth middleware in front, so no userID lands in the context
	r.GET("/admin", middleware.AdminOnlyMiddleware(nil), AdminPanelHandler(nil, nil))

	w := performJSON(t, r, http.MethodGet, "/admin", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware("secret", nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	t.Run("missing header", func(t *testing.T) {
		w := performJSON(t, r, http.MethodGet, "/me", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}
