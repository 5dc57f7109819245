package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanResolveTerminalLog(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pending to confirmed", TerminalLogStatusPending, TerminalLogStatusConfirmed, true},
		{"pending to rejected", TerminalLogStatusPending, TerminalLogStatusRejected, true},
		{"pending to pending", TerminalLogStatusPending, TerminalLogStatusPending, false},
		{"confirmed is final", TerminalLogStatusConfirmed, TerminalLogStatusRejected, false},
		{"rejected is final", TerminalLogStatusRejected, TerminalLogStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanResolveTerminalLog(tt.from, tt.to))
		})
	}
}
