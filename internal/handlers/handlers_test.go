// Package handlers provides tests for the intake API HTTP handlers.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cryptoalerts/internal/assets"
	"cryptoalerts/internal/events"
)

func TestHandlers_CreateAlert(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		directory      *mockDirectory
		publisher      *mockPublisher
		expectedStatus int
	}{
		{
			name:           "successful create",
			body:           `{"user_id":"u-1","asset_id":"1","target_price":"60000","condition":"above","channel":"email","email":"u1@example.com"}`,
			directory:      &mockDirectory{},
			publisher:      &mockPublisher{},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "successful create without email",
			body:           `{"user_id":"u-1","asset_id":"1","target_price":"60000","condition":"below","channel":"email"}`,
			directory:      &mockDirectory{},
			publisher:      &mockPublisher{},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid JSON body",
			body:           `{"user_id":`,
			directory:      &mockDirectory{},
			publisher:      &mockPublisher{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing user_id",
			body:           `{"asset_id":"1","target_price":"60000","condition":"above","channel":"email"}`,
			directory:      &mockDirectory{},
			publisher:      &mockPublisher{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero target price",
			body:           `{"user_id":"u-1","asset_id":"1","target_price":"0","condition":"above","channel":"email"}`,
			directory:      &mockDirectory{},
			publisher:      &mockPublisher{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative target price",
			body:           `{"user_id":"u-1","asset_id":"1","target_price":"-5","condition":"above","channel":"email"}`,
			directory:      &mockDirectory{},
			publisher:      &mockPublisher{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid condition",
			body:           `{"user_id":"u-1","asset_id":"1","target_price":"60000","condition":"near","channel":"email"}`,
			directory:      &mockDirectory{},
			publisher:      &mockPublisher{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid channel",
			body:           `{"user_id":"u-1","asset_id":"1","target_price":"60000","condition":"above","channel":"pigeon"}`,
			directory:      &mockDirectory{},
			publisher:      &mockPublisher{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed email",
			body:           `{"user_id":"u-1","asset_id":"1","target_price":"60000","condition":"above","channel":"email","email":"not-an-address"}`,
			directory:      &mockDirectory{},
			publisher:      &mockPublisher{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown asset",
			body: `{"user_id":"u-1","asset_id":"424242","target_price":"60000","condition":"above","channel":"email"}`,
			directory: &mockDirectory{
				GetMetaFn: func(ctx context.Context, assetID string) (*assets.AssetMeta, error) {
					return nil, fmt.Errorf("%w: %s", assets.ErrAssetNotFound, assetID)
				},
			},
			publisher:      &mockPublisher{},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "price API down",
			body: `{"user_id":"u-1","asset_id":"1","target_price":"60000","condition":"above","channel":"email"}`,
			directory: &mockDirectory{
				GetQuoteFn: func(ctx context.Context, assetID string) (*assets.Quote, error) {
					return nil, assets.ErrUnavailable
				},
			},
			publisher:      &mockPublisher{},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name: "rate limited upstream",
			body: `{"user_id":"u-1","asset_id":"1","target_price":"60000","condition":"above","channel":"email"}`,
			directory: &mockDirectory{
				GetQuoteFn: func(ctx context.Context, assetID string) (*assets.Quote, error) {
					return nil, assets.ErrRateLimited
				},
			},
			publisher:      &mockPublisher{},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:      "publish failure",
			body:      `{"user_id":"u-1","asset_id":"1","target_price":"60000","condition":"above","channel":"email"}`,
			directory: &mockDirectory{},
			publisher: &mockPublisher{
				PublishFn: func(ctx context.Context, created *events.AlertCreated) error {
					return errors.New("broker unreachable")
				},
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandlers(tt.directory, tt.publisher)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			h.CreateAlert(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d, body: %s", rec.Code, tt.expectedStatus, rec.Body.String())
			}
		})
	}
}

func TestHandlers_CreateAlert_PublishesEvent(t *testing.T) {
	publisher := &mockPublisher{}
	h := NewHandlers(&mockDirectory{}, publisher)

	body := `{"user_id":"u-7","asset_id":"1","target_price":"60000.50","condition":"above","channel":"email","email":"u7@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.CreateAlert(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.published))
	}
	event := publisher.published[0]
	if event.AlertID == "" {
		t.Error("alert_id must be assigned before publishing")
	}
	if event.SchemaVersion != events.SchemaVersion {
		t.Errorf("schema_version = %d, want %d", event.SchemaVersion, events.SchemaVersion)
	}
	if event.UserID != "u-7" || event.AssetID != "1" || event.Email != "u7@example.com" {
		t.Errorf("unexpected event %+v", event)
	}
	if event.TargetPrice.String() != "60000.5" {
		t.Errorf("target_price = %s, want 60000.5", event.TargetPrice)
	}
	if event.CurrentPrice.String() != "50000" {
		t.Errorf("current_price = %s, want snapshot 50000", event.CurrentPrice)
	}

	var resp CreateAlertResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.AlertID != event.AlertID {
		t.Errorf("response alert_id %s does not match event %s", resp.AlertID, event.AlertID)
	}
	if resp.AssetName != "Bitcoin" || resp.AssetSymbol != "BTC" {
		t.Errorf("unexpected asset fields in response: %+v", resp)
	}
}

func TestHandlers_ListAssets(t *testing.T) {
	directory := &mockDirectory{
		MapFn: func(ctx context.Context) ([]assets.AssetMeta, error) {
			return []assets.AssetMeta{
				{ID: 5426, Name: "Solana", Symbol: "SOL", IsActive: 1},
				{ID: 825, Name: "Tether", Symbol: "USDT", IsActive: 1},
				{ID: 2010, Name: "Cardano", Symbol: "ADA", IsActive: 1},
				{ID: 1, Name: "Bitcoin", Symbol: "BTC", IsActive: 1},
				{ID: 1027, Name: "Ethereum", Symbol: "ETH", IsActive: 1},
				{ID: 9999, Name: "Defunct Coin", Symbol: "DEAD", IsActive: 0},
			}, nil
		},
	}
	h := NewHandlers(directory, &mockPublisher{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil)
	rec := httptest.NewRecorder()
	h.ListAssets(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Assets []AssetListEntry `json:"assets"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}

	var gotNames []string
	for _, a := range resp.Assets {
		gotNames = append(gotNames, a.Name)
	}
	// Priority assets first sorted by name, then the rest by name; the
	// inactive asset is filtered out.
	want := []string{"Bitcoin", "Ethereum", "Tether", "Cardano", "Solana"}
	if len(gotNames) != len(want) {
		t.Fatalf("assets = %v, want %v", gotNames, want)
	}
	for i := range want {
		if gotNames[i] != want[i] {
			t.Fatalf("assets = %v, want %v", gotNames, want)
		}
	}
}

func TestHandlers_ListAssets_UpstreamDown(t *testing.T) {
	directory := &mockDirectory{
		MapFn: func(ctx context.Context) ([]assets.AssetMeta, error) {
			return nil, assets.ErrUnavailable
		},
	}
	h := NewHandlers(directory, &mockPublisher{})

	rec := httptest.NewRecorder()
	h.ListAssets(rec, httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHandlers_GetPrice(t *testing.T) {
	h := NewHandlers(&mockDirectory{}, &mockPublisher{})

	rec := httptest.NewRecorder()
	h.GetPrice(rec, httptest.NewRequest(http.MethodGet, "/api/v1/prices?asset_id=1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var resp PriceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.AssetID != "1" || resp.Price.String() != "50000" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestHandlers_GetPrice_MissingParam(t *testing.T) {
	h := NewHandlers(&mockDirectory{}, &mockPublisher{})

	rec := httptest.NewRecorder()
	h.GetPrice(rec, httptest.NewRequest(http.MethodGet, "/api/v1/prices", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandlers_GetPrice_UnknownAsset(t *testing.T) {
	directory := &mockDirectory{
		GetQuoteFn: func(ctx context.Context, assetID string) (*assets.Quote, error) {
			return nil, assets.ErrAssetNotFound
		},
	}
	h := NewHandlers(directory, &mockPublisher{})

	rec := httptest.NewRecorder()
	h.GetPrice(rec, httptest.NewRequest(http.MethodGet, "/api/v1/prices?asset_id=424242", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
