package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rkampati/carekb/internal/handlers"
)

func TestGetHandler_Healthy(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	handlers.GetHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 from the health endpoint, got %d", rec.Code)
	}
}
