package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := generateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit", code)
		}
		seen[code] = true
	}
	// 100 draws from a 900000-value space should not all collide.
	assert.Greater(t, len(seen), 1)
}

func TestOTPKeyIsScopedByType(t *testing.T) {
	assert.NotEqual(t,
		otpKey("patient", "a@example.com"),
		otpKey("doctor", "a@example.com"),
	)
}
