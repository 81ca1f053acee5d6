package server

import (
	"encoding/json"
	"testing"
	"time"
)

func receive(t *testing.T, ch <-chan ConsoleMessage) ConsoleMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for console message")
		return ConsoleMessage{}
	}
}

func TestWebLogger_ForwardsMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("render-123", messageChan)

	logger.Printf("Pass %d completed (coverage %.1f%%)\n", 2, 37.5)

	msg := receive(t, messageChan)
	if msg.Message != "Pass 2 completed (coverage 37.5%)\n" {
		t.Errorf("Expected formatted message, got %q", msg.Message)
	}
	if msg.RenderID != "render-123" {
		t.Errorf("Expected render ID render-123, got %q", msg.RenderID)
	}
	if msg.Level != "info" {
		t.Errorf("Expected level info, got %q", msg.Level)
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
	}
}

func TestWebLogger_KeepsOrder(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("render-456", messageChan)

	messages := []string{"Message 1\n", "Message 2\n", "Message 3\n"}
	for _, m := range messages {
		logger.Printf("%s", m)
	}

	for i, expected := range messages {
		if got := receive(t, messageChan).Message; got != expected {
			t.Errorf("Message %d: expected %q, got %q", i, expected, got)
		}
	}
}

func TestWebLogger_DoesNotBlock(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("render-789", messageChan)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			logger.Printf("Message %d\n", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Logger blocked on a full channel")
	}
	if got := receive(t, messageChan).Message; got != "Message 0\n" {
		t.Errorf("Expected the first message to be kept, got %q", got)
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("render-nil", nil)
	logger.Printf("Test message with nil channel\n")
}

func TestMessageLevel(t *testing.T) {
	tests := []struct {
		message  string
		expected string
	}{
		{"Starting progressive rendering with 7 passes...\n", "info"},
		{"Error encoding tile\n", "error"},
		{"Rendering failed: boom\n", "error"},
		{"Warning: large image\n", "warning"},
		{"  warn: slow render\n", "warning"},
		{"", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := messageLevel(tt.message); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestConsoleMessage_JSON(t *testing.T) {
	msg := ConsoleMessage{RenderID: "r1", Message: "hello", Level: "info", Timestamp: time.Unix(0, 0).UTC()}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	for _, key := range []string{"renderId", "message", "timestamp", "level"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("Expected %q in JSON, got %s", key, data)
		}
	}
}
