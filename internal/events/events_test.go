package events

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := LogPublisher{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	err := p.Publish(context.Background(), TopicLowStock, "12", LowStock{ProductID: 12, Name: "Milk", Quantity: 2, Threshold: 5})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "topic=inventory.low_stock") || !strings.Contains(out, "key=12") {
		t.Errorf("Unexpected log output %q", out)
	}
}

func TestKafkaPublisherRejectsUnencodableEvent(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"})
	defer p.Close()

	err := p.Publish(context.Background(), TopicSaleCreated, "1", make(chan int))
	if err == nil || !strings.Contains(err.Error(), "marshal") {
		t.Errorf("Expected marshal error, got %v", err)
	}
}

func TestKafkaPublisherFlushesPromptly(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"})
	defer p.Close()

	if p.writer.BatchTimeout != PublishBatchTimeout || p.writer.Async {
		t.Errorf("Expected a synchronous writer flushing after %v, got %v (async=%v)",
			PublishBatchTimeout, p.writer.BatchTimeout, p.writer.Async)
	}
}
