package kafka

import (
	"testing"

	kafkago "github.com/segmentio/kafka-go"
)

func TestParseBrokers(t *testing.T) {
	tests := []struct {
		name    string
		brokers string
		want    []string
	}{
		{"single broker", "localhost:9092", []string{"localhost:9092"}},
		{"multiple brokers", "a:9092,b:9092", []string{"a:9092", "b:9092"}},
		{"whitespace trimmed", " a:9092 , b:9092 ", []string{"a:9092", "b:9092"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseBrokers(tt.brokers)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseBrokers(%q) = %v, want %v", tt.brokers, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ParseBrokers(%q)[%d] = %q, want %q", tt.brokers, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidateProducerParams(t *testing.T) {
	if err := ValidateProducerParams("localhost:9092", "alerts.created"); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}
	if err := ValidateProducerParams("", "alerts.created"); err == nil {
		t.Error("empty brokers accepted")
	}
	if err := ValidateProducerParams("localhost:9092", ""); err == nil {
		t.Error("empty topic accepted")
	}
}

func TestValidateConsumerParams(t *testing.T) {
	if err := ValidateConsumerParams("localhost:9092", "alerts.created", "g"); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}
	if err := ValidateConsumerParams("localhost:9092", "alerts.created", ""); err == nil {
		t.Error("empty group id accepted")
	}
}

func TestNewReaderConfig(t *testing.T) {
	cfg := NewReaderConfig([]string{"localhost:9092"}, "alerts.created", "alert-writer-group")

	if cfg.Topic != "alerts.created" || cfg.GroupID != "alert-writer-group" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.StartOffset != kafkago.FirstOffset {
		t.Error("readers must start at the first offset when no commit exists")
	}
	// A non-zero interval would flush offsets in the background and could
	// commit a message whose write failed. Commits must stay synchronous
	// and explicit.
	if cfg.CommitInterval != 0 {
		t.Errorf("commit interval = %v, want 0 (synchronous explicit commits)", cfg.CommitInterval)
	}
}
