package unsplash

// Size variant names used as keys in Photo.URLs
const (
	SizeRaw     = "raw"
	SizeFull    = "full"
	SizeRegular = "regular"
	SizeSmall   = "small"
	SizeThumb   = "thumb"
)

// SearchResponse represents the response from /search/photos
type SearchResponse struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Results    []Photo `json:"results"`
}

// Photo represents a single search result
type Photo struct {
	ID          string            `json:"id"`
	Description string            `json:"description,omitempty"`
	Width       int               `json:"width,omitempty"`
	Height      int               `json:"height,omitempty"`
	URLs        map[string]string `json:"urls"`
}

// URL returns the URL for the given size variant and whether it exists
func (p *Photo) URL(size string) (string, bool) {
	u, ok := p.URLs[size]
	if !ok || u == "" {
		return "", false
	}
	return u, true
}
