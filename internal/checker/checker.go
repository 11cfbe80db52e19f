package checker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"cryptoalerts/internal/assets"
	"cryptoalerts/internal/notify/strategy"
	"cryptoalerts/internal/store"
)

// Summary reports the outcome of one check cycle.
type Summary struct {
	Evaluated int `json:"evaluated"`
	Triggered int `json:"triggered"`
	Skipped   int `json:"skipped"`
}

// Checker runs evaluation cycles over active alerts.
type Checker struct {
	store    AlertStore
	prices   PriceFetcher
	notifier Notifier
	metrics  MetricsRecorder
}

// New creates a checker with no-op metrics.
func New(alertStore AlertStore, prices PriceFetcher, notifier Notifier) *Checker {
	return NewWithMetrics(alertStore, prices, notifier, nil)
}

// NewWithMetrics creates a checker with the provided metrics recorder.
// If m is nil, a no-op implementation is used.
func NewWithMetrics(alertStore AlertStore, prices PriceFetcher, notifier Notifier, m MetricsRecorder) *Checker {
	if m == nil {
		m = NoOpMetrics{}
	}
	return &Checker{
		store:    alertStore,
		prices:   prices,
		notifier: notifier,
		metrics:  m,
	}
}

// RunCycle executes one evaluation pass over all active alerts.
//
// Only two failures are cycle-fatal: the active-alert listing and the
// batched price fetch. Everything after that is isolated per alert; a
// failing alert is logged, counted, and left for the next cycle.
func (c *Checker) RunCycle(ctx context.Context) (Summary, error) {
	var summary Summary

	alerts, err := c.store.ListActiveAlerts(ctx)
	if err != nil {
		c.metrics.RecordError()
		return summary, fmt.Errorf("failed to list active alerts: %w", err)
	}
	if len(alerts) == 0 {
		slog.Info("No active alerts, cycle is a no-op")
		return summary, nil
	}

	assetIDs := distinctAssetIDs(alerts)
	slog.Info("Starting check cycle",
		"active_alerts", len(alerts),
		"distinct_assets", len(assetIDs),
	)

	quotes, err := c.prices.FetchPrices(ctx, assetIDs)
	if err != nil {
		c.metrics.RecordError()
		return summary, fmt.Errorf("failed to fetch prices: %w", err)
	}

	for _, alert := range alerts {
		summary.Evaluated++
		c.metrics.RecordEvaluated()

		fired, err := c.checkAlert(ctx, alert, quotes)
		if fired {
			// The notification went out even if the deactivation write
			// failed afterwards.
			summary.Triggered++
			c.metrics.RecordTriggered()
		}
		if err != nil {
			// Per-alert failures never abort the cycle.
			if !fired {
				summary.Skipped++
				c.metrics.RecordSkipped()
			}
			slog.Warn("Alert not fully processed this cycle",
				"alert_id", alert.AlertID,
				"asset_id", alert.AssetID,
				"error", err,
			)
		}
	}

	slog.Info("Check cycle completed",
		"evaluated", summary.Evaluated,
		"triggered", summary.Triggered,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

// checkAlert evaluates one alert against the batch quotes and, when the
// condition is met, notifies the owner and deactivates the alert. The
// returned error means the alert stays active and is retried next cycle.
func (c *Checker) checkAlert(ctx context.Context, alert *store.Alert, quotes map[string]assets.Quote) (bool, error) {
	quote, ok := quotes[alert.AssetID]
	if !ok {
		return false, fmt.Errorf("no quote for asset %s", alert.AssetID)
	}

	slog.Debug("Evaluating alert",
		"alert_id", alert.AlertID,
		"asset_id", alert.AssetID,
		"condition", alert.Condition,
		"target", alert.TargetPrice,
		"price", quote.Price,
	)

	if !conditionMet(alert.Condition, quote.Price, alert.TargetPrice) {
		return false, nil
	}

	contact, err := c.store.GetUserContact(ctx, alert.UserID)
	if err != nil {
		c.metrics.RecordError()
		return false, fmt.Errorf("contact lookup for user %s: %w", alert.UserID, err)
	}
	if !contact.Notifiable() {
		// Never deactivate an alert whose owner cannot be reached; it is
		// re-evaluated next cycle in case the contact gets fixed.
		return false, fmt.Errorf("user %s has no usable contact", alert.UserID)
	}

	trigger := &strategy.Trigger{
		AlertID:      alert.AlertID,
		AssetID:      alert.AssetID,
		AssetName:    quote.Name,
		AssetSymbol:  quote.Symbol,
		Condition:    alert.Condition,
		TargetPrice:  alert.TargetPrice,
		CurrentPrice: quote.Price,
	}
	if err := c.notifier.Notify(ctx, alert.Channel, contact.Email, trigger); err != nil {
		c.metrics.RecordError()
		return false, fmt.Errorf("notification send: %w", err)
	}

	// Deactivate only after a successful send. If this write fails the
	// alert stays active and the owner may be notified again next cycle;
	// at-least-once delivery is the accepted tradeoff.
	deactivated, err := c.store.MarkTriggered(ctx, alert.AlertID)
	if err != nil {
		c.metrics.RecordError()
		return true, fmt.Errorf("deactivation after send: %w", err)
	}
	if !deactivated {
		slog.Warn("Alert was already inactive when deactivating",
			"alert_id", alert.AlertID,
		)
	}

	slog.Info("Alert fired",
		"alert_id", alert.AlertID,
		"asset_id", alert.AssetID,
		"condition", alert.Condition,
		"target", alert.TargetPrice,
		"price", quote.Price,
		"channel", alert.Channel,
	)
	return true, nil
}

// conditionMet applies the boundary-inclusive trigger policy: equality
// fires in both directions.
func conditionMet(condition string, price, target decimal.Decimal) bool {
	switch condition {
	case store.ConditionAbove:
		return price.GreaterThanOrEqual(target)
	case store.ConditionBelow:
		return price.LessThanOrEqual(target)
	default:
		return false
	}
}

// distinctAssetIDs collects the unique asset ids referenced by the alerts.
func distinctAssetIDs(alerts []*store.Alert) []string {
	seen := make(map[string]bool, len(alerts))
	ids := make([]string, 0, len(alerts))
	for _, alert := range alerts {
		if !seen[alert.AssetID] {
			seen[alert.AssetID] = true
			ids = append(ids, alert.AssetID)
		}
	}
	return ids
}
