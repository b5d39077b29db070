package browser

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsTimeout(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		timeout bool
	}{
		{
			name:    "bare sentinel",
			err:     ErrTimeout,
			timeout: true,
		},
		{
			name:    "wrapped with selector context",
			err:     fmt.Errorf("waiting for %q: %w", "#login_email", ErrTimeout),
			timeout: true,
		},
		{
			name:    "doubly wrapped",
			err:     fmt.Errorf("scraping schedule: %w", fmt.Errorf("clicking %q: %w", "#menu", ErrTimeout)),
			timeout: true,
		},
		{
			name:    "unrelated error",
			err:     errors.New("connection refused"),
			timeout: false,
		},
		{
			name:    "nil",
			err:     nil,
			timeout: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTimeout(tt.err); got != tt.timeout {
				t.Errorf("IsTimeout(%v) = %v, want %v", tt.err, got, tt.timeout)
			}
		})
	}
}
