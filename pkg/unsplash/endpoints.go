package unsplash

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// BaseURL is the base URL for the Unsplash API
	BaseURL = "https://api.unsplash.com"

	// SearchPhotosEndpoint is the photo search endpoint
	SearchPhotosEndpoint = "/search/photos"

	// APIVersion is sent in the Accept-Version header
	APIVersion = "v1"
)

// GetSearchURL constructs the URL for a single page of photo search results.
// perPage is passed through as given.
func GetSearchURL(baseURL, query string, perPage int) string {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(perPage))

	return strings.TrimRight(baseURL, "/") + SearchPhotosEndpoint + "?" + params.Encode()
}

// AuthorizationHeader returns the Authorization header value for an access key
func AuthorizationHeader(accessKey string) string {
	return "Client-ID " + accessKey
}
