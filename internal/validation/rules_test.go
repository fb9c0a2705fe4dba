package validation

import (
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/cardvault/internal/errors"
)

func TestPasswordStrength(t *testing.T) {
	strict := PasswordStrength{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}

	t.Run("Success_AllClasses", func(t *testing.T) {
		assert.NoError(t, strict.Validate("Card$vault9"))
		assert.NoError(t, strict.Validate("MyP@ssw0rd"))
	})

	rejected := map[string]string{
		"Sh0rt!":      "at least 8 characters",
		"cardvault9!": "uppercase letter",
		"CARDVAULT9!": "lowercase letter",
		"Cardvault!!": "number",
		"Cardvault99": "special character",
	}
	for password, msg := range rejected {
		t.Run("Error_"+msg, func(t *testing.T) {
			err := strict.Validate(password)
			require.Error(t, err)
			assert.Contains(t, err.Error(), msg)
		})
	}

	t.Run("Error_NotAString", func(t *testing.T) {
		assert.Error(t, strict.Validate(42))
	})

	t.Run("Success_LengthOnly", func(t *testing.T) {
		lengthOnly := PasswordStrength{MinLength: 10}
		assert.NoError(t, lengthOnly.Validate("lowercase1"))
		assert.Error(t, lengthOnly.Validate("short"))
	})
}

func TestEmail(t *testing.T) {
	for _, email := range []string{"alice@example.com", "a.b+cards@bank.co.uk", ""} {
		assert.NoError(t, Email.Validate(email), email)
	}
	for _, email := range []string{"alice", "alice@", "@example.com", "alice@example", "al ice@example.com"} {
		assert.Error(t, Email.Validate(email), email)
	}
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("Alice Holder"))
	assert.Error(t, NotBlank.Validate("   "))
	assert.Error(t, NotBlank.Validate("\t\n"))
}

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(validation.Errors{"username": validation.ErrRequired})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "username")
}

func TestUsername(t *testing.T) {
	assert.NoError(t, Username.Validate("alice.smith-01_x"))
	assert.Error(t, Username.Validate("alice smith"))
	assert.Error(t, Username.Validate("alice@example"))
}

func TestDigits(t *testing.T) {
	assert.NoError(t, Digits.Validate("2345"))
	assert.NoError(t, Digits.Validate(""))
	assert.Error(t, Digits.Validate("23a5"))
	assert.Error(t, Digits.Validate("**** 2345"))
}

func TestUUID(t *testing.T) {
	assert.NoError(t, UUID.Validate("0190a6f1-7c7b-7a4e-9d1e-2f3a4b5c6d7e"))
	assert.NoError(t, UUID.Validate(""))
	assert.Error(t, UUID.Validate("card-1"))
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{name: "integer", input: "100"},
		{name: "two decimals", input: "100.25"},
		{name: "negative is parsed", input: "-5"},
		{name: "empty left to required", input: ""},
		{name: "three decimals", input: "1.005", shouldErr: true},
		{name: "not a number", input: "ten", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.input, Amount)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNonNegativeAmount(t *testing.T) {
	assert.NoError(t, validation.Validate("0", NonNegativeAmount))
	assert.NoError(t, validation.Validate("10.50", NonNegativeAmount))
	assert.Error(t, validation.Validate("-0.01", NonNegativeAmount))
}
