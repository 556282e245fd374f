package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digibistro/digibistro-api/models"
)

func TestAccumulateCart(t *testing.T) {
	catalog := models.DefaultCatalog()

	tests := []struct {
		name         string
		raw          map[string]string
		expectedCart Cart
		expectedErr  string
	}{
		{
			name:         "valid quantities",
			raw:          map[string]string{"Pasta": "2", "Momo": "1"},
			expectedCart: Cart{"Pasta": 2, "Momo": 1},
		},
		{
			name:         "zero and negative quantities dropped silently",
			raw:          map[string]string{"Pasta": "2", "Tea": "0", "Burger": "-3"},
			expectedCart: Cart{"Pasta": 2},
		},
		{
			name:        "non-integer quantity rejects the whole cart",
			raw:         map[string]string{"Pasta": "2", "Momo": "two"},
			expectedErr: "invalid quantity for Momo: not an integer",
		},
		{
			name:        "all quantities zero is an empty cart",
			raw:         map[string]string{"Pasta": "0", "Momo": "0"},
			expectedErr: "empty cart",
		},
		{
			name:        "no quantities at all is an empty cart",
			raw:         map[string]string{},
			expectedErr: "empty cart",
		},
		{
			name:         "unknown items are ignored",
			raw:          map[string]string{"Pizza": "4", "Momo": "1"},
			expectedCart: Cart{"Momo": 1},
		},
		{
			name:         "blank values are skipped",
			raw:          map[string]string{"Pasta": "", "Momo": "3"},
			expectedCart: Cart{"Momo": 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart, err := AccumulateCart(catalog, tt.raw)
			if tt.expectedErr != "" {
				require.Error(t, err)
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.EqualError(t, err, tt.expectedErr)
				assert.Nil(t, cart)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCart, cart)
		})
	}
}

func TestAccumulateCartDoesNotMutateInput(t *testing.T) {
	catalog := models.DefaultCatalog()
	raw := map[string]string{"Pasta": "2"}

	_, err := AccumulateCart(catalog, raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Pasta": "2"}, raw)
}
