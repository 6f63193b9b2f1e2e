package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"baro_landing_go/config"
	"baro_landing_go/models"
	"baro_landing_go/services"
)

// LandingPageData feeds the landing page template
type LandingPageData struct {
	SEO *models.SEO
	// ClickSource is the attribution label resolved from the entry URL; the
	// client form controller uses it as the tracked default for submissions.
	ClickSource string
}

// LandingHandler renders the landing page. The attribution label is resolved
// server-side from the utm parameters so it survives client-side navigation.
func LandingHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)

	clickSource := services.ClickSourceFromQuery(c.QueryParams(), "")

	data := LandingPageData{
		SEO:         landingSEO(cfg),
		ClickSource: clickSource,
	}

	html, err := renderPage("landing", data)
	if err != nil {
		c.Logger().Errorf("Failed to render landing page: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "페이지를 불러올 수 없습니다.")
	}

	return c.HTML(http.StatusOK, html)
}

// renderPage loads and executes a page template from templates/pages.
func renderPage(name string, data interface{}) (string, error) {
	path := filepath.Join("templates", "pages", name+".html")
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %v", path, err)
	}

	tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %v", path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %v", path, err)
	}
	return buf.String(), nil
}
