package cryptox

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	code, expiresAt, err := GenerateOTP()
	require.NoError(t, err)

	require.Len(t, code, 6)

	n, err := strconv.Atoi(code)
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, otpMin)
	require.LessOrEqual(t, n, otpMax)

	require.WithinDuration(t, time.Now().Add(OTPTTL), expiresAt, time.Second)
}

func TestGenerateOTP_AlwaysSixDigits(t *testing.T) {
	// The range starts at 100000, so no code can lose its leading digit.
	for range 200 {
		code, _, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
	}
}
