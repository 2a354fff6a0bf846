package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	"github.com/loop2cod/SNAZ-sub000/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddlewareAndRequireRole(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, time.Hour)
	staffToken, _ := jwtManager.GenerateAccessToken(uuid.New(), "staff@example.com", entity.RoleStaff)
	adminToken, _ := jwtManager.GenerateAccessToken(uuid.New(), "admin@example.com", entity.RoleAdmin)

	r := gin.New()
	r.Use(AuthMiddleware(jwtManager))
	r.GET("/me", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("user_role")) })
	r.POST("/bills", RequireRole(entity.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusCreated) })

	tests := []struct {
		name   string
		method string
		path   string
		header string
		want   int
	}{
		{"no header", http.MethodGet, "/me", "", http.StatusUnauthorized},
		{"wrong scheme", http.MethodGet, "/me", "Basic " + staffToken, http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/me", "Bearer nope", http.StatusUnauthorized},
		{"valid token", http.MethodGet, "/me", "Bearer " + staffToken, http.StatusOK},
		{"staff on admin route", http.MethodPost, "/bills", "Bearer " + staffToken, http.StatusForbidden},
		{"admin on admin route", http.MethodPost, "/bills", "Bearer " + adminToken, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

type memIdempotency struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
}

func (m *memIdempotency) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, ok := m.keys[userID.String()+key]
	if !ok {
		return nil, nil
	}
	return &k, nil
}

func (m *memIdempotency) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[ikey.UserID.String()+ikey.Key] = *ikey
	return nil
}

func (m *memIdempotency) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func TestIdempotencyRequired(t *testing.T) {
	repo := &memIdempotency{keys: map[string]entity.IdempotencyKey{}}
	userID := uuid.New()
	calls := 0

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.POST("/payments", IdempotencyRequired(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"success": true, "call": calls})
	})

	send := func(key, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := send("", `{"amount":10}`); w.Code != http.StatusBadRequest {
		t.Errorf("missing key status = %d, want 400", w.Code)
	}

	first := send("k1", `{"amount":10}`)
	if first.Code != http.StatusCreated || calls != 1 {
		t.Fatalf("first status = %d, calls = %d", first.Code, calls)
	}

	replay := send("k1", `{"amount":10}`)
	if replay.Code != http.StatusCreated || calls != 1 {
		t.Errorf("replay status = %d, calls = %d; want cached 201", replay.Code, calls)
	}
	if replay.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("replay should be marked")
	}

	if w := send("k1", `{"amount":99}`); w.Code != http.StatusUnprocessableEntity || calls != 1 {
		t.Errorf("reused key with new body status = %d, calls = %d", w.Code, calls)
	}

	if w := send("k2", `{"amount":99}`); w.Code != http.StatusCreated || calls != 2 {
		t.Errorf("new key status = %d, calls = %d", w.Code, calls)
	}
}

func TestUserRateLimiter(t *testing.T) {
	limiter := NewUserRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Hour,
		EntryTTL:          time.Hour,
	})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-User"); id != "" {
			c.Set("user_id", uuid.MustParse(id))
		}
	})
	r.Use(limiter.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if user != "" {
			req.Header.Set("X-User", user)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	alice, bob := uuid.NewString(), uuid.NewString()
	for i := 0; i < 2; i++ {
		if code := hit(alice); code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, code)
		}
	}
	if code := hit(alice); code != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", code)
	}
	if code := hit(bob); code != http.StatusOK {
		t.Errorf("other user status = %d, want 200", code)
	}
}

func TestRateLimiterConfigFor(t *testing.T) {
	cfg := RateLimiterConfigFor(120, 60)
	if cfg.RequestsPerSecond != 2 || cfg.BurstSize != 120 {
		t.Errorf("cfg = %+v", cfg)
	}
	if def := RateLimiterConfigFor(0, 0); def.BurstSize != DefaultRateLimiterConfig().BurstSize {
		t.Errorf("zero config should fall back to defaults, got %+v", def)
	}
}
