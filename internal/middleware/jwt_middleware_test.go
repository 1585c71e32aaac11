package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kvinchris/GymManagement/internal/middleware"
	"github.com/kvinchris/GymManagement/internal/utils"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTAuthMiddleware(t *testing.T) {
	utils.InitJwtSecret("test-secret")
	protected := middleware.JWTAuthMiddleware(okHandler())

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/members", nil)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/members", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("valid token passes", func(t *testing.T) {
		token, err := utils.GenerateJWT("user-123", "admin")
		if err != nil {
			t.Fatalf("GenerateJWT: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/members", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	utils.InitJwtSecret("test-secret")

	chain := func(roles ...string) http.Handler {
		return middleware.JWTAuthMiddleware(middleware.RequireRole(roles...)(okHandler()))
	}

	request := func(role string) *http.Request {
		token, _ := utils.GenerateJWT("user-123", role)
		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		return req
	}

	t.Run("allowed role passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		chain("admin").ServeHTTP(w, request("admin"))
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("role outside allow-list rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		chain("admin").ServeHTTP(w, request("trainer"))
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", w.Code)
		}
	})

	t.Run("multiple allowed roles", func(t *testing.T) {
		w := httptest.NewRecorder()
		chain("admin", "trainer").ServeHTTP(w, request("trainer"))
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})
}
