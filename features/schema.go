package features

// SchemaVersion identifies the feature ordering below. The classifier was
// trained against this exact column order; any change to Names is a breaking
// change and must bump the version.
const SchemaVersion = 1

// Feature names, in schema order.
const (
	HavingIPAddress        = "having_IP_Address"
	URLLength              = "URL_Length"
	ShortiningService      = "Shortining_Service"
	HavingAtSymbol         = "having_At_Symbol"
	DoubleSlashRedirecting = "double_slash_redirecting"
	PrefixSuffix           = "Prefix_Suffix"
	HavingSubDomain        = "having_Sub_Domain"
	SSLFinalState          = "SSLfinal_State"
	DomainRegisterationLen = "Domain_registeration_length"
	Favicon                = "Favicon"
	Port                   = "port"
	HTTPSToken             = "HTTPS_token"
	RequestURL             = "Request_URL"
	URLOfAnchor            = "URL_of_Anchor"
	LinksInTags            = "Links_in_tags"
	SFH                    = "SFH"
	SubmittingToEmail      = "Submitting_to_email"
	AbnormalURL            = "Abnormal_URL"
	Redirect               = "Redirect"
	OnMouseover            = "on_mouseover"
	RightClick             = "RightClick"
	PopUpWidnow            = "popUpWidnow"
	Iframe                 = "Iframe"
	AgeOfDomain            = "age_of_domain"
	DNSRecord              = "DNSRecord"
	WebTraffic             = "web_traffic"
	PageRank               = "Page_Rank"
	GoogleIndex            = "Google_Index"
	LinksPointingToPage    = "Links_pointing_to_page"
	StatisticalReport      = "Statistical_report"
)

// Count is the classifier's fixed input arity.
const Count = 30

// Names is the canonical schema order.
var Names = [Count]string{
	HavingIPAddress, URLLength, ShortiningService, HavingAtSymbol,
	DoubleSlashRedirecting, PrefixSuffix, HavingSubDomain, SSLFinalState,
	DomainRegisterationLen, Favicon, Port, HTTPSToken, RequestURL,
	URLOfAnchor, LinksInTags, SFH, SubmittingToEmail, AbnormalURL,
	Redirect, OnMouseover, RightClick, PopUpWidnow, Iframe, AgeOfDomain,
	DNSRecord, WebTraffic, PageRank, GoogleIndex, LinksPointingToPage,
	StatisticalReport,
}

var nameIndex = func() map[string]int {
	m := make(map[string]int, Count)
	for i, n := range Names {
		m[n] = i
	}
	return m
}()

// Index returns the schema position of name.
func Index(name string) (int, bool) {
	i, ok := nameIndex[name]
	return i, ok
}

// Value is a ternary indicator code.
type Value int

const (
	Suspicious Value = -1
	Neutral    Value = 0
	Legit      Value = 1
)

// Valid reports whether v is one of -1, 0, 1.
func (v Value) Valid() bool {
	return v >= Suspicious && v <= Legit
}

// Vector is an assembled feature vector in schema order.
type Vector [Count]Value

// Values returns the vector as plain ints, positional.
func (v Vector) Values() []int {
	out := make([]int, Count)
	for i, x := range v {
		out[i] = int(x)
	}
	return out
}

// Named returns the vector keyed by feature name.
func (v Vector) Named() map[string]int {
	out := make(map[string]int, Count)
	for i, n := range Names {
		out[n] = int(v[i])
	}
	return out
}

// Get returns the value for name. Unknown names report false.
func (v Vector) Get(name string) (Value, bool) {
	i, ok := Index(name)
	if !ok {
		return Neutral, false
	}
	return v[i], true
}

// FromMap builds a vector from named values in schema order. Names absent
// from m default to Neutral.
func FromMap(m map[string]Value) Vector {
	var v Vector
	for i, n := range Names {
		if x, ok := m[n]; ok {
			v[i] = x
		} else {
			v[i] = Neutral
		}
	}
	return v
}
