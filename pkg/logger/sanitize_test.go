package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSanitizeFields_MasksSensitiveKeys(t *testing.T) {
	fields := SanitizeFields([]zap.Field{
		zap.String("edit_code", "super-secret"),
		zap.String("email", "a@b.com"),
		zap.String("title", "Room for rent"),
	})

	if fields[0].String != "***" {
		t.Fatalf("expected edit_code masked, got %q", fields[0].String)
	}
	if fields[1].String != "***" {
		t.Fatalf("expected email masked, got %q", fields[1].String)
	}
	if fields[2].String != "Room for rent" {
		t.Fatalf("expected title untouched, got %q", fields[2].String)
	}
}

func TestSanitizeFields_MasksNestedValues(t *testing.T) {
	field := zap.Any("query", map[string]interface{}{
		"editCode": []interface{}{"secret"},
		"keyword":  []interface{}{"room"},
	})

	sanitized := SanitizeFields([]zap.Field{field})

	enc := zapcore.NewMapObjectEncoder()
	sanitized[0].AddTo(enc)
	query, ok := enc.Fields["query"].(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected encoded shape: %#v", enc.Fields["query"])
	}
	if query["editCode"] != "***" {
		t.Fatalf("expected nested editCode masked, got %v", query["editCode"])
	}
	if kw, ok := query["keyword"].([]interface{}); !ok || kw[0] != "room" {
		t.Fatalf("expected keyword untouched, got %v", query["keyword"])
	}
}
