package handlers

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"baro_landing_go/config"
	"baro_landing_go/models"
)

// landingSEO returns the SEO metadata for the landing page
func landingSEO(cfg *config.Config) *models.SEO {
	return &models.SEO{
		Title:       "한평생 바로기업 - 40~50대 여성 창업 상담",
		Description: "한평생 바로기업에서 무료 창업 상담을 신청하세요. 이름과 연락처만 남기면 전문 상담사가 빠르게 연락드립니다.",
		Keywords:    "창업 상담, 여성 창업, 무료 상담, 한평생 바로기업",
		Canonical:   cfg.AppURL + "/",
		OGImage:     cfg.AppURL + "/static/images/og-image.png",
		OGType:      "website",
		TwitterCard: "summary_large_image",
		Locale:      "ko",
	}
}

type SitemapURL struct {
	Loc        string  `xml:"loc"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float32 `xml:"priority,omitempty"`
}

type SitemapURLSet struct {
	XMLName string       `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// GetSitemapHandler generates the XML sitemap. Tracking redirects are
// intentionally excluded; only the canonical landing page is indexable.
func GetSitemapHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)

	urlSet := SitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []SitemapURL{
			{Loc: cfg.AppURL + "/", ChangeFreq: "weekly", Priority: 1.0},
		},
	}

	output, err := xml.MarshalIndent(urlSet, "", "  ")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate sitemap")
	}

	return c.Blob(http.StatusOK, "application/xml", append([]byte(xml.Header), output...))
}

// GetRobotsHandler serves robots.txt
func GetRobotsHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)

	robots := "User-agent: *\n" +
		"Allow: /\n" +
		"Disallow: /api/\n" +
		"Disallow: /go/\n" +
		"\n" +
		"Sitemap: " + cfg.AppURL + "/sitemap.xml\n"

	return c.String(http.StatusOK, robots)
}
