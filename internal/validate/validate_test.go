package validate

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Backend string `toml:"backend" validate:"oneof=file sqlite"`
	Months  int    `toml:"history_months" validate:"min=1"`
	Name    string `json:"name" validate:"required"`
	Plain   string `validate:"max=3"`
}

func TestStructValid(t *testing.T) {
	if err := Struct(sample{Backend: "file", Months: 6, Name: "x", Plain: "ab"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructJoinsMessages(t *testing.T) {
	err := Struct(sample{Backend: "redis", Months: 0, Plain: "toolong"})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if len(verr.Messages) != 4 {
		t.Fatalf("messages = %v, want 4", verr.Messages)
	}
	msg := err.Error()
	for _, field := range []string{"backend", "history_months", "name", "Plain"} {
		if !strings.Contains(msg, field) {
			t.Errorf("message %q does not mention %s", msg, field)
		}
	}
}
