package features

import (
	"strings"
	"testing"
)

func urlOfLength(n int) string {
	base := "http://example.com/"
	return base + strings.Repeat("a", n-len(base))
}

func TestLexicalRules(t *testing.T) {
	tests := []struct {
		name string
		fn   func(raw string) Value
		raw  string
		want Value
	}{
		{"ip literal", IPAddress, "http://192.168.1.1/login", Suspicious},
		{"ip in path", IPAddress, "http://example.com/redirect/10.0.0.1", Suspicious},
		{"no ip", IPAddress, "http://example.com", Legit},

		{"length 53", Length, urlOfLength(53), Legit},
		{"length 54", Length, urlOfLength(54), Neutral},
		{"length 75", Length, urlOfLength(75), Neutral},
		{"length 76", Length, urlOfLength(76), Suspicious},
		{"length counts runes", Length, "http://example.com/" + strings.Repeat("é", 34), Legit},

		{"bit.ly", Shortener, "http://bit.ly/abc", Suspicious},
		{"tinyurl upper", Shortener, "HTTPS://TINYURL.COM/xyz", Suspicious},
		{"no shortener", Shortener, "https://example.com/home", Legit},

		{"at symbol", AtSymbol, "http://a@b.com", Suspicious},
		{"no at", AtSymbol, "http://b.com", Legit},

		{"redirect slashes", DoubleSlash, "http://example.com//http://evil.com", Suspicious},
		{"https scheme only", DoubleSlash, "https://example.com", Legit},
		{"http scheme only", DoubleSlash, "http://example.com/a/b", Legit},
		{"no slashes", DoubleSlash, "example.com", Legit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.raw); got != tt.want {
				t.Errorf("%s(%q) = %d, want %d", tt.name, tt.raw, got, tt.want)
			}
		})
	}
}

func TestHostRules(t *testing.T) {
	tests := []struct {
		name string
		fn   func(ParsedURL) Value
		raw  string
		want Value
	}{
		{"dash", PrefixSuffixDash, "http://secure-bank-login.com", Suspicious},
		{"no dash", PrefixSuffixDash, "http://bank.com", Legit},
		{"dash in path only", PrefixSuffixDash, "http://bank.com/my-account", Legit},

		{"one dot", SubDomain, "http://example.com", Legit},
		{"one dot after www", SubDomain, "http://www.example.com", Legit},
		{"two dots", SubDomain, "http://mail.example.com", Neutral},
		{"three dots", SubDomain, "http://a.b.example.com", Suspicious},
		{"four dots", SubDomain, "http://a.b.c.example.com", Suspicious},
		{"no dots", SubDomain, "http://localhost", Suspicious},
		{"no host", SubDomain, "example.com", Suspicious},

		{"https", SSLState, "https://example.com", Legit},
		{"http", SSLState, "http://example.com", Suspicious},
		{"no scheme", SSLState, "example.com", Suspicious},

		{"custom port", NonStandardPort, "http://example.com:8080/", Suspicious},
		{"port 80", NonStandardPort, "http://example.com:80/", Legit},
		{"port 443", NonStandardPort, "https://example.com:443/", Legit},
		{"port 0", NonStandardPort, "http://example.com:0/", Legit},
		{"no port", NonStandardPort, "http://example.com/", Legit},
		{"bad port", NonStandardPort, "http://example.com:http/", Legit},

		{"https token", HTTPSInHost, "http://https-example.com", Suspicious},
		{"https token after www", HTTPSInHost, "http://www.https.com", Suspicious},
		{"https scheme only", HTTPSInHost, "https://example.com/https", Legit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(ParseURL(tt.raw)); got != tt.want {
				t.Errorf("%s(%q) = %d, want %d", tt.name, tt.raw, got, tt.want)
			}
		})
	}
}

func TestAbnormal(t *testing.T) {
	if got := Abnormal("http://www.example.com/x", ParseURL("http://www.example.com/x")); got != Legit {
		t.Errorf("host present in URL: got %d", got)
	}
	if got := Abnormal("http://other.com/", ParseURL("http://example.com/")); got != Suspicious {
		t.Errorf("host missing from URL: got %d", got)
	}
}

func TestLexicalIsTotal(t *testing.T) {
	inputs := []string{
		"", " ", "http://", "://", "http://[", "http://[::1", "%zz", "javascript:alert(1)",
		"http://例え.jp/パス", "\x00\x01", strings.Repeat("/", 300), "http://a:b:c@d:e:f/",
	}
	for _, raw := range inputs {
		got := Lexical(raw, ParseURL(raw))
		if len(got) != 11 {
			t.Errorf("Lexical(%q) returned %d indicators", raw, len(got))
		}
		for name, v := range got {
			if !v.Valid() {
				t.Errorf("Lexical(%q)[%s] = %d out of range", raw, name, v)
			}
		}
	}
}

func TestLexicalIdempotent(t *testing.T) {
	raw := "http://login-secure.paypal.com.verify-account.example.net:8080//redirect@x"
	a := Lexical(raw, ParseURL(raw))
	b := Lexical(raw, ParseURL(raw))
	for k, v := range a {
		if b[k] != v {
			t.Errorf("%s differs between runs: %d vs %d", k, v, b[k])
		}
	}
}
