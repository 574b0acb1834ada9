package urlcheck

import "testing"

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"127.0.0.1", true},
		{"127.255.0.9", true},
		{"10.0.0.1", true},
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"192.168.1.1", true},
		{"169.254.169.254", true},
		{"0.0.0.0", true},
		{"224.0.0.1", true},
		{"240.0.0.1", true},
		{"255.255.255.255", true},
		{"::1", true},
		{"[::1]", true},
		{"::", true},
		{"fe80::1", true},
		{"fc00::1", true},
		{"fd12:3456::1", true},
		{"::ffff:127.0.0.1", true},
		{"::ffff:10.1.2.3", true},
		{"::127.0.0.1", true},
		{"::8.8.8.8", true},
		{"100.64.0.1", true},
		{"100.127.255.254", true},

		{"8.8.8.8", false},
		{"1.1.1.1", false},
		{"172.15.0.1", false},
		{"172.32.0.1", false},
		{"192.169.0.1", false},
		{"100.63.255.255", false},
		{"100.128.0.1", false},
		{"2001:4860:4860::8888", false},
		{"::ffff:8.8.8.8", false},
		{"example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := IsPrivateIP(tt.ip); got != tt.want {
				t.Errorf("IsPrivateIP(%q) = %v, want %v", tt.ip, got, tt.want)
			}
		})
	}
}

func TestParseLiteralIP(t *testing.T) {
	tests := []struct {
		host      string
		want      string
		wantOK    bool
		wantValid bool
	}{
		{"8.8.8.8", "8.8.8.8", true, true},
		{"2130706433", "127.0.0.1", true, true},
		{"0x7f.1", "127.0.0.1", true, true},
		{"0177.0.0.1", "127.0.0.1", true, true},
		{"10.1", "10.0.0.1", true, true},
		{"::1", "::1", true, true},
		{"1.2.3.4.", "1.2.3.4", true, true},
		{"256.1.1.1", "", true, false},
		{"4294967296", "", true, false},
		{"example.com", "", false, false},
		{"1.2.3.com", "", false, false},
		{"deadbeef", "", false, false},
		{"1.2.3.4.5", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			addr, ok, valid := parseLiteralIP(tt.host)
			if ok != tt.wantOK || valid != tt.wantValid {
				t.Fatalf("parseLiteralIP(%q) ok=%v valid=%v, want ok=%v valid=%v", tt.host, ok, valid, tt.wantOK, tt.wantValid)
			}
			if tt.want != "" && addr.String() != tt.want {
				t.Errorf("parseLiteralIP(%q) = %s, want %s", tt.host, addr, tt.want)
			}
		})
	}
}
