package features

// Static returns the indicators that would need page content or third-party
// ranking services. They are not computed; each carries the fixed default
// the classifier's training pipeline assumed for unknown pages. The map is
// fresh on every call.
func Static() map[string]Value {
	return map[string]Value{
		Favicon:             Legit,
		RequestURL:          Legit,
		URLOfAnchor:         Neutral,
		LinksInTags:         Neutral,
		SFH:                 Legit,
		SubmittingToEmail:   Legit,
		Redirect:            Neutral,
		OnMouseover:         Legit,
		RightClick:          Legit,
		PopUpWidnow:         Legit,
		Iframe:              Legit,
		DNSRecord:           Legit,
		WebTraffic:          Legit,
		PageRank:            Legit,
		GoogleIndex:         Legit,
		LinksPointingToPage: Neutral,
		StatisticalReport:   Legit,
	}
}
