package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "guestcomplaints/internal/errors"
	"guestcomplaints/internal/shared/testutil"
	"guestcomplaints/pkg/contracts/domain"
)

func TestValidator_ValidateStruct(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	v := NewValidator(logger)

	tests := []struct {
		name   string
		filter domain.Filter
		field  string
	}{
		{
			name:   "valid",
			filter: domain.Filter{Months: []string{"Janeiro"}, Location: "Portugal", Topics: []string{"Limpeza"}},
		},
		{
			name:   "empty filter",
			filter: domain.Filter{},
		},
		{
			name:   "blank month",
			filter: domain.Filter{Months: []string{""}},
			field:  "months[0]",
		},
		{
			name:   "control character",
			filter: domain.Filter{Units: []string{"Hotel\x00A"}},
			field:  "units[0]",
		},
		{
			name:   "three years of month sheets",
			filter: domain.Filter{Months: monthNames(36)},
		},
		{
			name:   "too many months",
			filter: domain.Filter{Months: monthNames(201)},
			field:  "months",
		},
		{
			name:   "location too long",
			filter: domain.Filter{Location: strings.Repeat("x", 65)},
			field:  "location",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.filter)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var apiErr *apierrors.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			assert.Equal(t, "VALIDATION_FAILED", apiErr.ErrorCode)

			details, ok := apiErr.Details.([]apierrors.ValidationError)
			require.True(t, ok)
			require.NotEmpty(t, details)
			assert.Equal(t, tt.field, details[0].Field)
		})
	}
}

func monthNames(n int) []string {
	months := make([]string, n)
	for i := range months {
		months[i] = fmt.Sprintf("Mes %d", i+1)
	}
	return months
}
