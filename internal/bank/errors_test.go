package bank

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"typed unavailable", &APIError{Kind: KindUnavailable, Status: 503, Message: "down"}, true},
		{"typed timeout", &APIError{Kind: KindTimeout, Message: "deadline"}, true},
		{"typed bad content type", &APIError{Kind: KindBadContentType, Message: "text/html"}, true},
		{"typed auth", &APIError{Kind: KindAuth, Status: 401, Message: "rejected"}, false},
		{"typed other", &APIError{Kind: KindOther, Status: 500, Message: "boom"}, false},
		{"wrapped typed", fmt.Errorf("fetch failed: %w", &APIError{Kind: KindUnavailable, Message: "down"}), true},
		{"untyped 503", errors.New("server returned 503"), true},
		{"untyped timeout", errors.New("request Timeout exceeded"), true},
		{"untyped connection", errors.New("connection refused"), true},
		{"untyped mimetype", errors.New("unexpected mimetype text/html"), true},
		{"untyped other", errors.New("invalid account number"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Kind: KindUnavailable, Status: 503, Message: "maintenance"}
	want := "bank API error (status 503): maintenance"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
