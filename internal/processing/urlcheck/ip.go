package urlcheck

import (
	"math"
	"net/netip"
	"strconv"
	"strings"
)

// privatePrefixes lists every range a short link must never point at.
var privatePrefixes = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),      // "this" network
	netip.MustParsePrefix("10.0.0.0/8"),     // RFC 1918
	netip.MustParsePrefix("100.64.0.0/10"),  // carrier-grade NAT
	netip.MustParsePrefix("127.0.0.0/8"),    // loopback
	netip.MustParsePrefix("169.254.0.0/16"), // link-local
	netip.MustParsePrefix("172.16.0.0/12"),  // RFC 1918
	netip.MustParsePrefix("192.168.0.0/16"), // RFC 1918
	netip.MustParsePrefix("224.0.0.0/4"),    // multicast
	netip.MustParsePrefix("240.0.0.0/4"),    // reserved, includes 255.255.255.255
	netip.MustParsePrefix("::/128"),
	netip.MustParsePrefix("::1/128"),
	netip.MustParsePrefix("::/96"),     // IPv4-compatible, deprecated
	netip.MustParsePrefix("fc00::/7"),  // unique local
	netip.MustParsePrefix("fe80::/10"), // link-local
	netip.MustParsePrefix("ff00::/8"),  // multicast
}

// IsPrivateIP reports whether ip is a loopback, private, link-local,
// unique-local, multicast or reserved address. Strings that are not IP
// literals are not private.
func IsPrivateIP(ip string) bool {
	addr, err := netip.ParseAddr(strings.Trim(ip, "[]"))
	if err != nil {
		return false
	}
	return isPrivateAddr(addr)
}

func isPrivateAddr(addr netip.Addr) bool {
	addr = addr.WithZone("").Unmap()
	for _, p := range privatePrefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// parseLiteralIP recognises the host forms a browser treats as an IP address:
// bracketed IPv6, dotted quads, and the legacy IPv4 shorthands (single
// integer, hex and octal parts) that URL parsers still accept. ok is false
// for ordinary hostnames; valid is false when the host looks numeric but does
// not form an address.
func parseLiteralIP(host string) (addr netip.Addr, ok, valid bool) {
	if strings.Contains(host, ":") {
		a, err := netip.ParseAddr(host)
		if err != nil {
			return netip.Addr{}, true, false
		}
		return a, true, true
	}

	parts := strings.Split(strings.TrimSuffix(host, "."), ".")
	if len(parts) == 0 || len(parts) > 4 {
		return netip.Addr{}, false, false
	}

	values := make([]uint64, len(parts))
	for i, part := range parts {
		v, numeric, inRange := parseIPv4Part(part)
		if !numeric {
			return netip.Addr{}, false, false
		}
		if !inRange {
			return netip.Addr{}, true, false
		}
		values[i] = v
	}

	var n uint64
	for i, v := range values[:len(values)-1] {
		if v > 255 {
			return netip.Addr{}, true, false
		}
		n |= v << (8 * (3 - uint(i)))
	}
	last := values[len(values)-1]
	if last >= uint64(1)<<(8*(5-uint(len(values)))) {
		return netip.Addr{}, true, false
	}
	n |= last

	return netip.AddrFrom4([4]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}), true, true
}

// parseIPv4Part parses one dot-separated component in decimal, 0x hex or
// leading-zero octal.
func parseIPv4Part(part string) (value uint64, numeric, inRange bool) {
	if part == "" {
		return 0, false, false
	}

	base := 10
	digits := part
	switch {
	case len(part) > 1 && (strings.HasPrefix(part, "0x") || strings.HasPrefix(part, "0X")):
		base = 16
		digits = part[2:]
		if digits == "" {
			return 0, true, true
		}
	case len(part) > 1 && part[0] == '0':
		base = 8
		digits = part[1:]
	}

	for _, c := range digits {
		switch {
		case c >= '0' && c <= '7':
		case c >= '8' && c <= '9' && base >= 10:
		case base == 16 && ((c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')):
		default:
			return 0, false, false
		}
	}

	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil || v > math.MaxUint32 {
		return 0, true, false
	}
	return v, true, true
}
