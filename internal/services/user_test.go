package services

import (
	"testing"

	"pasahero-backend/internal/errs"

	"github.com/stretchr/testify/assert"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ngPass", false},
		{"too short", "Ab1", true},
		{"no uppercase", "weakpass1", true},
		{"no lowercase", "WEAKPASS1", true},
		{"no digit", "WeakPassword", true},
		{"exactly eight chars", "Abcdefg1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.Equal(t, errs.KindValidation, errs.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
