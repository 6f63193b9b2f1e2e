package models

// SEO contains metadata for search engine optimization and social sharing
type SEO struct {
	Title       string // Page title
	Description string // Meta description (150-160 chars recommended)
	Keywords    string // Meta keywords (comma-separated)
	Canonical   string // Canonical URL
	OGImage     string // Open Graph image URL
	OGType      string // Open Graph type (website, article, etc.)
	TwitterCard string // Twitter card type (summary, summary_large_image)
	Locale      string // Page locale (e.g., "ko")
}
