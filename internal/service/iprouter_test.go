package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/puzzlebox/internal/apperror"
)

func TestDest4(t *testing.T) {
	testCases := []struct {
		from, key, expected string
	}{
		{"10.0.0.0", "1.2.3.255", "11.2.3.255"},
		{"128.128.33.0", "255.0.255.33", "127.128.32.33"},
		{"192.168.0.1", "72.96.8.7", "8.8.8.8"},
	}

	for _, tc := range testCases {
		dest, err := Dest4(tc.from, tc.key)

		require.NoError(t, err)
		assert.Equal(t, tc.expected, dest)
	}
}

func TestKey4(t *testing.T) {
	testCases := []struct {
		from, to, expected string
	}{
		{"10.0.0.0", "11.2.3.255", "1.2.3.255"},
		{"128.128.33.0", "127.128.32.33", "255.0.255.33"},
		{"192.168.0.1", "8.8.8.8", "72.96.8.7"},
	}

	for _, tc := range testCases {
		key, err := Key4(tc.from, tc.to)

		require.NoError(t, err)
		assert.Equal(t, tc.expected, key)

		// Then: routing with the recovered key lands on the destination
		dest, err := Dest4(tc.from, key)
		require.NoError(t, err)
		assert.Equal(t, tc.to, dest)
	}
}

func TestXor6(t *testing.T) {
	dest, err := Xor6("fe80::1", "5:6:7::3333")
	require.NoError(t, err)
	assert.Equal(t, "fe85:6:7::3332", dest)

	key, err := Xor6("aaaa::aaaa", "5555:ffff:c:0:0:c1a9:0:c")
	require.NoError(t, err)
	assert.Equal(t, "ffff:ffff:c::c1a9:0:aaa6", key)

	back, err := Xor6("fe80::1", dest)
	require.NoError(t, err)
	assert.Equal(t, "5:6:7::3333", back)
}

func TestIPRouter_InvalidInput(t *testing.T) {
	_, err := Dest4("10.0.0", "1.2.3.4")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = Dest4("10.0.0.1", "")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = Key4("10.0.0.1", "::1")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = Xor6("10.0.0.1", "::1")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = Xor6("fe80::1%eth0", "::1")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
