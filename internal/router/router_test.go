package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"cryptoalerts/internal/assets"
	"cryptoalerts/internal/events"
	"cryptoalerts/internal/handlers"
)

// stubDirectory implements handlers.AssetDirectory with fixed data.
type stubDirectory struct{}

func (stubDirectory) Map(ctx context.Context) ([]assets.AssetMeta, error) {
	return []assets.AssetMeta{{ID: 1, Name: "Bitcoin", Symbol: "BTC", IsActive: 1}}, nil
}

func (stubDirectory) GetMeta(ctx context.Context, assetID string) (*assets.AssetMeta, error) {
	return &assets.AssetMeta{ID: 1, Name: "Bitcoin", Symbol: "BTC", IsActive: 1}, nil
}

func (stubDirectory) GetQuote(ctx context.Context, assetID string) (*assets.Quote, error) {
	return &assets.Quote{AssetID: assetID, Name: "Bitcoin", Symbol: "BTC",
		Price: decimal.RequireFromString("50000")}, nil
}

// stubPublisher implements handlers.AlertPublisher.
type stubPublisher struct{}

func (stubPublisher) Publish(ctx context.Context, created *events.AlertCreated) error {
	return nil
}

func testHandler() http.Handler {
	h := handlers.NewHandlers(stubDirectory{}, stubPublisher{})
	return NewRouter(h).Handler()
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{"create alert", http.MethodPost, "/api/v1/alerts",
			`{"user_id":"u-1","asset_id":"1","target_price":"60000","condition":"above","channel":"email"}`,
			http.StatusCreated},
		{"create alert wrong method", http.MethodGet, "/api/v1/alerts", "", http.StatusMethodNotAllowed},
		{"list assets", http.MethodGet, "/api/v1/assets", "", http.StatusOK},
		{"list assets wrong method", http.MethodDelete, "/api/v1/assets", "", http.StatusMethodNotAllowed},
		{"get price", http.MethodGet, "/api/v1/prices?asset_id=1", "", http.StatusOK},
		{"get price wrong method", http.MethodPut, "/api/v1/prices", "", http.StatusMethodNotAllowed},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/v1/unknown", "", http.StatusNotFound},
	}

	handler := testHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d, body: %s", rec.Code, tt.expectedStatus, rec.Body.String())
			}
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	handler := testHandler()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/alerts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestNewServer_Timeouts(t *testing.T) {
	h := handlers.NewHandlers(stubDirectory{}, stubPublisher{})
	server := NewServer("8080", h)

	if server.Addr != ":8080" {
		t.Errorf("addr = %s", server.Addr)
	}
	if server.ReadTimeout == 0 || server.WriteTimeout == 0 || server.IdleTimeout == 0 {
		t.Error("server timeouts must be configured")
	}
}
