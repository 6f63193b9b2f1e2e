package services

import "net/url"

// AudienceSegment identifies the campaign audience this landing page targets.
// It prefixes every attribution label so leads from different landing pages
// can be told apart in the operator's sheet.
const AudienceSegment = "40~50대여성"

// channelLabels maps utm_source codes from ad platforms to the Korean labels
// the operators read. Unrecognized codes pass through unchanged.
var channelLabels = map[string]string{
	"daangn":   "당근",
	"insta":    "인스타",
	"facebook": "페이스북",
	"youtube":  "유튜브",
	"google":   "구글",
	"kakao":    "카카오",
}

// ResolveClickSource composes the attribution label for a given channel code
// and optional creative material id.
func ResolveClickSource(utmSource, materialID string) string {
	label, ok := channelLabels[utmSource]
	if !ok {
		label = utmSource
	}

	if materialID != "" {
		return AudienceSegment + "_" + label + "_소재_" + materialID
	}
	return AudienceSegment + "_" + label
}

// ClickSourceFromQuery resolves the attribution label from landing page query
// parameters. A utm_source present in the navigation context always wins over
// the fallback supplied by the triggering UI action, so paid-traffic
// attribution survives a generic call-to-action click. The fallback applies
// only when no channel identifier is present; it may be empty.
func ClickSourceFromQuery(query url.Values, fallback string) string {
	utmSource := query.Get("utm_source")
	if utmSource == "" {
		return fallback
	}
	return ResolveClickSource(utmSource, query.Get("material_id"))
}
