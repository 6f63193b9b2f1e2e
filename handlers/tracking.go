package handlers

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// TrackingRedirectHandler handles the shareable ad links /go/:channel and
// /go/:channel/:materialId. It redirects to the landing page with the
// attribution encoded as utm query parameters, so the landing handler can
// resolve the click source the same way for direct and tracked entries.
func TrackingRedirectHandler(c echo.Context) error {
	channel := c.Param("channel")
	materialID := c.Param("materialId")

	q := url.Values{}
	q.Set("utm_source", channel)
	q.Set("utm_medium", "social")
	if materialID != "" {
		q.Set("utm_campaign", "material_"+materialID)
		q.Set("material_id", materialID)
	} else {
		q.Set("utm_campaign", "recruitment")
	}

	return c.Redirect(http.StatusFound, "/?"+q.Encode())
}
