package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/cardvault/internal/errors"
)

func TestMask(t *testing.T) {
	t.Run("Success_Example", func(t *testing.T) {
		masked, err := Mask("0123456789012345")
		require.NoError(t, err)
		assert.Equal(t, "**** **** **** 2345", masked)
	})

	t.Run("Success_KeepsLastFour", func(t *testing.T) {
		for _, number := range []string{"4111111111111111", "0000000000009876", "9999999999990000"} {
			masked, err := Mask(number)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(masked, "**** **** **** "))
			assert.True(t, strings.HasSuffix(masked, number[12:]))
			assert.Len(t, masked, 19)
		}
	})

	t.Run("Error_WrongLength", func(t *testing.T) {
		for _, number := range []string{"", "1234", "012345678901234", "01234567890123456"} {
			masked, err := Mask(number)
			assert.Empty(t, masked)
			assert.ErrorIs(t, err, ErrInvalidCardNumber)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		}
	})
}
