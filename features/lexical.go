package features

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	reDottedQuad = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

	// Known URL shortening services, matched anywhere in the URL.
	reShortener = regexp.MustCompile(`(?i)` +
		`bit\.ly|goo\.gl|shorte\.st|go2l\.ink|x\.co|ow\.ly|t\.co|tinyurl|tr\.im|is\.gd|cli\.gs|` +
		`yfrog\.com|migre\.me|ff\.im|tiny\.cc|url4\.eu|twit\.ac|su\.pr|twurl\.nl|snipurl\.com|` +
		`short\.to|BudURL\.com|ping\.fm|post\.ly|Just\.as|bkite\.com|snipr\.com|fic\.kr|loopt\.us|` +
		`doiop\.com|short\.ie|kl\.am|wp\.me|rubyurl\.com|om\.ly|to\.ly|bit\.do|t\.co|lnkd\.in|db\.tt|` +
		`qr\.ae|adf\.ly|goo\.gl|bitly\.com|cur\.lv|tinyurl\.com|ow\.ly|bit\.ly|ity\.im|q\.gs|is\.gd|` +
		`po\.st|bc\.vc|twitthis\.com|u\.to|j\.mp|buzurl\.com|cutt\.us|u\.bb|yourls\.org|x\.co|` +
		`prettylinkpro\.com|scrnch\.me|filoops\.info|vzturl\.com|qr\.net|1url\.com|tweez\.me|v\.gd|` +
		`tr\.im|link\.zip\.net`)
)

const (
	shortURLMax = 54
	longURLMax  = 75
)

// Lexical computes every indicator derivable from the URL text alone.
func Lexical(raw string, p ParsedURL) map[string]Value {
	return map[string]Value{
		HavingIPAddress:        IPAddress(raw),
		URLLength:              Length(raw),
		ShortiningService:      Shortener(raw),
		HavingAtSymbol:         AtSymbol(raw),
		DoubleSlashRedirecting: DoubleSlash(raw),
		PrefixSuffix:           PrefixSuffixDash(p),
		HavingSubDomain:        SubDomain(p),
		SSLFinalState:          SSLState(p),
		Port:                   NonStandardPort(p),
		HTTPSToken:             HTTPSInHost(p),
		AbnormalURL:            Abnormal(raw, p),
	}
}

func suspiciousIf(suspicious bool) Value {
	if suspicious {
		return Suspicious
	}
	return Legit
}

// IPAddress flags a dotted-quad anywhere in the URL.
func IPAddress(raw string) Value {
	return suspiciousIf(reDottedQuad.MatchString(raw))
}

// Length buckets the URL by character count: <54 legit, 54..75 neutral,
// longer suspicious.
func Length(raw string) Value {
	n := utf8.RuneCountInString(raw)
	switch {
	case n < shortURLMax:
		return Legit
	case n <= longURLMax:
		return Neutral
	default:
		return Suspicious
	}
}

func Shortener(raw string) Value {
	return suspiciousIf(reShortener.MatchString(raw))
}

func AtSymbol(raw string) Value {
	return suspiciousIf(strings.Contains(raw, "@"))
}

// DoubleSlash flags a "//" past the scheme separator.
func DoubleSlash(raw string) Value {
	return suspiciousIf(strings.LastIndex(raw, "//") > 7)
}

func PrefixSuffixDash(p ParsedURL) Value {
	return suspiciousIf(strings.Contains(p.Host, "-"))
}

// SubDomain counts dots in the host (minus "www."): one is legit, two is
// neutral, anything else suspicious.
func SubDomain(p ParsedURL) Value {
	switch strings.Count(p.HostWithoutWWW(), ".") {
	case 1:
		return Legit
	case 2:
		return Neutral
	default:
		return Suspicious
	}
}

// SSLState only looks at the scheme; certificates are not inspected.
func SSLState(p ParsedURL) Value {
	return suspiciousIf(p.Scheme != "https")
}

func NonStandardPort(p ParsedURL) Value {
	if p.Port == nil || *p.Port == 0 {
		return Legit
	}
	return suspiciousIf(*p.Port != 80 && *p.Port != 443)
}

func HTTPSInHost(p ParsedURL) Value {
	return suspiciousIf(strings.Contains(p.HostWithoutWWW(), "https"))
}

func Abnormal(raw string, p ParsedURL) Value {
	return suspiciousIf(!strings.Contains(raw, p.HostWithoutWWW()))
}
