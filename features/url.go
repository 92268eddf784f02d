package features

import (
	"strconv"
	"strings"
)

// ParsedURL is a lenient decomposition of a raw URL. Host keeps the network
// location exactly as written (user-info and port included) so substring
// checks see what the user typed.
type ParsedURL struct {
	Scheme string
	Host   string
	Port   *int
	Rest   string
}

// ParseURL splits raw into scheme, network location, port and remainder.
// It never fails: malformed parts come back empty or absent. A URL without
// a "//" authority (e.g. "example.com/path") has an empty Host.
func ParseURL(raw string) ParsedURL {
	var p ParsedURL
	rest := raw

	if i := strings.IndexByte(rest, ':'); i > 0 && validScheme(rest[:i]) {
		p.Scheme = strings.ToLower(rest[:i])
		rest = rest[i+1:]
	}

	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		end := strings.IndexAny(rest, "/?#")
		if end < 0 {
			end = len(rest)
		}
		p.Host = rest[:end]
		rest = rest[end:]
	}

	p.Rest = rest
	p.Port = parsePort(p.Host)
	return p
}

// HostWithoutWWW drops one leading literal "www." from Host.
func (p ParsedURL) HostWithoutWWW() string {
	return strings.TrimPrefix(p.Host, "www.")
}

// Hostname is Host lower-cased with user-info, port and IPv6 brackets removed.
func (p ParsedURL) Hostname() string {
	h := hostinfo(p.Host)
	if strings.HasPrefix(h, "[") {
		if end := strings.IndexByte(h, ']'); end > 0 {
			return strings.ToLower(h[1:end])
		}
		return strings.ToLower(strings.TrimPrefix(h, "["))
	}
	if i := strings.IndexByte(h, ':'); i >= 0 {
		h = h[:i]
	}
	return strings.ToLower(h)
}

func hostinfo(netloc string) string {
	if i := strings.LastIndexByte(netloc, '@'); i >= 0 {
		return netloc[i+1:]
	}
	return netloc
}

func parsePort(netloc string) *int {
	h := hostinfo(netloc)

	var port string
	if strings.HasPrefix(h, "[") {
		end := strings.IndexByte(h, ']')
		if end < 0 {
			return nil
		}
		after := h[end+1:]
		if !strings.HasPrefix(after, ":") {
			return nil
		}
		port = after[1:]
	} else {
		i := strings.IndexByte(h, ':')
		if i < 0 {
			return nil
		}
		port = h[i+1:]
	}

	if port == "" || strings.TrimLeft(port, "0123456789") != "" {
		return nil
	}
	n, err := strconv.Atoi(port)
	if err != nil || n > 65535 {
		return nil
	}
	return &n
}

func validScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return s != ""
}
