package utils_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kvinchris/GymManagement/internal/repositories"
	"github.com/kvinchris/GymManagement/internal/utils"
)

func TestRepositoryError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			"validation maps to bad request",
			fmt.Errorf("%w: member name is required", repositories.ErrValidation),
			http.StatusBadRequest,
			"member name is required",
		},
		{
			"not found maps to 404",
			fmt.Errorf("member: %w", repositories.ErrNotFound),
			http.StatusNotFound,
			"member",
		},
		{
			"unclassified maps to a fixed 500 message",
			errors.New("connection(localhost:27017) socket was unexpectedly closed"),
			http.StatusInternalServerError,
			"Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			utils.RepositoryError(w, tt.err)

			res := w.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", res.StatusCode, tt.wantStatus)
			}

			var body map[string]string
			if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if !strings.Contains(body["error"], tt.wantBody) {
				t.Errorf("body %q does not contain %q", body["error"], tt.wantBody)
			}
		})
	}
}

func TestRepositoryErrorHidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	utils.RepositoryError(w, errors.New("auth error: sasl conversation error"))

	res := w.Result()
	defer res.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if strings.Contains(body["error"], "sasl") {
		t.Errorf("driver detail leaked into response: %q", body["error"])
	}
}
