package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("missing_content", "Content is required"), KindValidation},
		{"authorization", Authorization("forbidden", "No"), KindAuthorization},
		{"not found", NotFound("message_not_found", "Message not found"), KindNotFound},
		{"storage", Storage("query_failed", errors.New("connection refused")), KindStorage},
		{"wrapped", fmt.Errorf("handler: %w", NotFound("message_not_found", "")), KindNotFound},
		{"plain error", errors.New("something"), 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	err := Validation("missing_receiver", "receiver_id is required")
	if got := CodeOf(err); got != "missing_receiver" {
		t.Errorf("CodeOf() = %q, want %q", got, "missing_receiver")
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain error) = %q, want empty", got)
	}
}

func TestStorageRetainsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Storage("query_failed", cause)
	if !errors.Is(err, cause) {
		t.Error("Storage error does not unwrap to its cause")
	}
}

func TestErrorString(t *testing.T) {
	err := Validation("missing_content", "Content is required")
	want := "validation: missing_content: Content is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
