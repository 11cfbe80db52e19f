package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cryptoalerts/internal/assets"
	"cryptoalerts/internal/events"
)

// priorityAssetIDs are pinned to the top of the asset listing.
var priorityAssetIDs = map[string]struct{}{
	"1":    {}, // Bitcoin
	"1027": {}, // Ethereum
	"825":  {}, // Tether
}

// Handlers holds the dependencies for the intake API endpoints.
type Handlers struct {
	directory AssetDirectory
	publisher AlertPublisher
	metrics   MetricsRecorder
}

// NewHandlers creates handlers with no-op metrics.
func NewHandlers(directory AssetDirectory, publisher AlertPublisher) *Handlers {
	return NewHandlersWithMetrics(directory, publisher, nil)
}

// NewHandlersWithMetrics creates handlers with an optional metrics recorder.
func NewHandlersWithMetrics(directory AssetDirectory, publisher AlertPublisher, recorder MetricsRecorder) *Handlers {
	if recorder == nil {
		recorder = NoOpMetrics{}
	}
	return &Handlers{
		directory: directory,
		publisher: publisher,
		metrics:   recorder,
	}
}

// CreateAlertRequest is the request payload for alert creation.
type CreateAlertRequest struct {
	UserID      string          `json:"user_id"`
	AssetID     string          `json:"asset_id"`
	TargetPrice decimal.Decimal `json:"target_price"`
	Condition   string          `json:"condition"`
	Channel     string          `json:"channel"`
	Email       string          `json:"email,omitempty"`
}

// CreateAlertResponse is returned on successful alert creation.
type CreateAlertResponse struct {
	AlertID      string          `json:"alert_id"`
	AssetID      string          `json:"asset_id"`
	AssetName    string          `json:"asset_name"`
	AssetSymbol  string          `json:"asset_symbol"`
	TargetPrice  decimal.Decimal `json:"target_price"`
	Condition    string          `json:"condition"`
	Channel      string          `json:"channel"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	CreatedAt    int64           `json:"created_at"`
}

// CreateAlert handles POST /api/v1/alerts. It validates the request,
// confirms the asset exists, snapshots the current price, and publishes
// the alert for asynchronous persistence.
func (h *Handlers) CreateAlert(w http.ResponseWriter, r *http.Request) {
	h.metrics.RecordReceived()

	var req CreateAlertRequest
	if !decodeJSON(w, r, &req) {
		h.metrics.RecordError()
		return
	}

	if msg, ok := validateCreateAlert(&req); !ok {
		h.metrics.RecordError()
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	meta, err := h.directory.GetMeta(ctx, req.AssetID)
	if err != nil {
		h.metrics.RecordError()
		if errors.Is(err, assets.ErrAssetNotFound) {
			http.Error(w, "Asset not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to look up asset", "asset_id", req.AssetID, "error", err)
		http.Error(w, "Price API unavailable", http.StatusServiceUnavailable)
		return
	}

	quote, err := h.directory.GetQuote(ctx, req.AssetID)
	if err != nil {
		h.metrics.RecordError()
		if errors.Is(err, assets.ErrAssetNotFound) {
			http.Error(w, "Asset not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to fetch current price", "asset_id", req.AssetID, "error", err)
		http.Error(w, "Price API unavailable", http.StatusServiceUnavailable)
		return
	}

	event := &events.AlertCreated{
		AlertID:       uuid.NewString(),
		SchemaVersion: events.SchemaVersion,
		UserID:        req.UserID,
		AssetID:       req.AssetID,
		TargetPrice:   req.TargetPrice,
		Condition:     req.Condition,
		Channel:       req.Channel,
		Email:         req.Email,
		CurrentPrice:  quote.Price,
		CreatedAt:     time.Now().Unix(),
	}

	if err := h.publisher.Publish(ctx, event); err != nil {
		h.metrics.RecordError()
		slog.Error("Failed to publish alert", "alert_id", event.AlertID, "error", err)
		http.Error(w, "Failed to create alert", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordProcessed()
	slog.Info("Alert created",
		"alert_id", event.AlertID,
		"user_id", event.UserID,
		"asset_id", event.AssetID,
		"condition", event.Condition,
	)

	writeJSON(w, http.StatusCreated, CreateAlertResponse{
		AlertID:      event.AlertID,
		AssetID:      event.AssetID,
		AssetName:    meta.Name,
		AssetSymbol:  meta.Symbol,
		TargetPrice:  event.TargetPrice,
		Condition:    event.Condition,
		Channel:      event.Channel,
		CurrentPrice: event.CurrentPrice,
		CreatedAt:    event.CreatedAt,
	})
}

// validateCreateAlert checks required fields and enum values.
func validateCreateAlert(req *CreateAlertRequest) (string, bool) {
	if req.UserID == "" {
		return "user_id is required", false
	}
	if req.AssetID == "" {
		return "asset_id is required", false
	}
	if !req.TargetPrice.IsPositive() {
		return "target_price must be positive", false
	}
	if !isValidCondition(req.Condition) {
		return "condition must be 'above' or 'below'", false
	}
	if !isValidChannel(req.Channel) {
		return "channel must be 'email' or 'sms'", false
	}
	if req.Email != "" && !isPlausibleEmail(req.Email) {
		return "email is not a valid address", false
	}
	return "", true
}

// AssetListEntry is one row of the asset listing.
type AssetListEntry struct {
	AssetID string `json:"asset_id"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// ListAssets handles GET /api/v1/assets. Priority assets come first,
// the rest sorted by name.
func (h *Handlers) ListAssets(w http.ResponseWriter, r *http.Request) {
	h.metrics.RecordReceived()

	metas, err := h.directory.Map(r.Context())
	if err != nil {
		h.metrics.RecordError()
		slog.Error("Failed to fetch asset directory", "error", err)
		http.Error(w, "Price API unavailable", http.StatusServiceUnavailable)
		return
	}

	entries := make([]AssetListEntry, 0, len(metas))
	for _, m := range metas {
		if m.IsActive == 0 {
			continue
		}
		entries = append(entries, AssetListEntry{
			AssetID: strconv.Itoa(m.ID),
			Name:    m.Name,
			Symbol:  m.Symbol,
		})
	}
	sortAssets(entries)

	h.metrics.RecordProcessed()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assets": entries,
	})
}

// sortAssets orders priority assets first, then the rest by name.
func sortAssets(entries []AssetListEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		_, pi := priorityAssetIDs[entries[i].AssetID]
		_, pj := priorityAssetIDs[entries[j].AssetID]
		if pi != pj {
			return pi
		}
		return entries[i].Name < entries[j].Name
	})
}

// PriceResponse is returned by the price lookup endpoint.
type PriceResponse struct {
	AssetID     string          `json:"asset_id"`
	Name        string          `json:"name"`
	Symbol      string          `json:"symbol"`
	Price       decimal.Decimal `json:"price"`
	LastUpdated string          `json:"last_updated"`
}

// GetPrice handles GET /api/v1/prices?asset_id=<id>.
func (h *Handlers) GetPrice(w http.ResponseWriter, r *http.Request) {
	h.metrics.RecordReceived()

	assetID, ok := requireQueryParam(w, r, "asset_id")
	if !ok {
		h.metrics.RecordError()
		return
	}

	quote, err := h.directory.GetQuote(r.Context(), assetID)
	if err != nil {
		h.metrics.RecordError()
		if errors.Is(err, assets.ErrAssetNotFound) {
			http.Error(w, "Asset not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to fetch price", "asset_id", assetID, "error", err)
		http.Error(w, "Price API unavailable", http.StatusServiceUnavailable)
		return
	}

	h.metrics.RecordProcessed()
	writeJSON(w, http.StatusOK, PriceResponse{
		AssetID:     quote.AssetID,
		Name:        quote.Name,
		Symbol:      quote.Symbol,
		Price:       quote.Price,
		LastUpdated: quote.LastUpdated,
	})
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
