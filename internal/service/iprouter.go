package service

import (
	"fmt"
	"net/netip"

	"github.com/rocketscienceinc/puzzlebox/internal/apperror"
)

// Dest4 adds key to from octet by octet, wrapping at 256.
func Dest4(from, key string) (string, error) {
	a, b, err := parsePair(from, key, true)
	if err != nil {
		return "", err
	}

	x, y := a.As4(), b.As4()
	var out [4]byte
	for i := range out {
		out[i] = x[i] + y[i]
	}

	return netip.AddrFrom4(out).String(), nil
}

// Key4 recovers the key that routes from to to.
func Key4(from, to string) (string, error) {
	a, b, err := parsePair(from, to, true)
	if err != nil {
		return "", err
	}

	x, y := a.As4(), b.As4()
	var out [4]byte
	for i := range out {
		out[i] = y[i] - x[i]
	}

	return netip.AddrFrom4(out).String(), nil
}

// Xor6 combines two IPv6 addresses bit by bit. It serves both directions.
func Xor6(left, right string) (string, error) {
	a, b, err := parsePair(left, right, false)
	if err != nil {
		return "", err
	}

	x, y := a.As16(), b.As16()
	var out [16]byte
	for i := range out {
		out[i] = x[i] ^ y[i]
	}

	return netip.AddrFrom16(out).String(), nil
}

func parsePair(left, right string, v4 bool) (netip.Addr, netip.Addr, error) {
	a, err := parseAddr(left, v4)
	if err != nil {
		return netip.Addr{}, netip.Addr{}, err
	}

	b, err := parseAddr(right, v4)
	if err != nil {
		return netip.Addr{}, netip.Addr{}, err
	}

	return a, b, nil
}

func parseAddr(raw string, v4 bool) (netip.Addr, error) {
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %w", apperror.ErrInvalidInput, err)
	}

	if addr.Zone() != "" {
		return netip.Addr{}, fmt.Errorf("%w: zoned address %q", apperror.ErrInvalidInput, raw)
	}

	if v4 != addr.Is4() {
		return netip.Addr{}, fmt.Errorf("%w: wrong address family %q", apperror.ErrInvalidInput, raw)
	}

	return addr, nil
}
