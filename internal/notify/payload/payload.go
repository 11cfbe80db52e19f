// Package payload renders notification content for fired alerts.
package payload

import (
	"fmt"
	"strings"

	"cryptoalerts/internal/notify/strategy"
)

// EmailPayload represents email message content.
type EmailPayload struct {
	Subject string
	Body    string // plain text body
	HTML    string // HTML body
}

// BuildEmailPayload builds the email subject and bodies for a fired alert.
func BuildEmailPayload(t *strategy.Trigger) EmailPayload {
	subject := fmt.Sprintf("Crypto Alert: %s price %s %s",
		t.AssetSymbol, titleCase(t.Condition), t.TargetPrice.StringFixed(2))
	return EmailPayload{
		Subject: subject,
		Body:    buildTextBody(t),
		HTML:    buildHTMLBody(t),
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func buildTextBody(t *strategy.Trigger) string {
	var sb strings.Builder
	sb.WriteString("Cryptocurrency Price Alert\n")
	sb.WriteString("==========================\n\n")
	sb.WriteString("Your alert condition has been triggered:\n\n")
	sb.WriteString(fmt.Sprintf("Asset: %s (%s)\n", t.AssetName, t.AssetSymbol))
	sb.WriteString(fmt.Sprintf("Target Price: $%s\n", t.TargetPrice.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Current Price: $%s\n", t.CurrentPrice.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Condition: price went %s target\n\n", t.Condition))
	sb.WriteString("This alert is now deactivated. You can create a new alert through the API.\n")
	return sb.String()
}

func buildHTMLBody(t *strategy.Trigger) string {
	var sb strings.Builder
	sb.WriteString("<h2>Cryptocurrency Price Alert</h2>")
	sb.WriteString("<p>Your alert condition has been triggered:</p><ul>")
	sb.WriteString(fmt.Sprintf("<li>Asset: %s (%s)</li>", t.AssetName, t.AssetSymbol))
	sb.WriteString(fmt.Sprintf("<li>Target Price: $%s</li>", t.TargetPrice.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("<li>Current Price: $%s</li>", t.CurrentPrice.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("<li>Condition: price went %s target</li>", t.Condition))
	sb.WriteString("</ul><p>This alert is now deactivated. You can create a new alert through the API.</p>")
	return sb.String()
}
