// Package unsplash provides a client for the Unsplash public API.
//
// This package includes:
//   - A client that authenticates search calls with "Client-ID <access key>"
//   - Models for search responses
//   - Helpers for constructing endpoint URLs
//   - Streaming image retrieval
//
// Example usage:
//
//	client := unsplash.NewClient(accessKey, 60*time.Second, nil)
//
//	resp, err := client.SearchPhotos(ctx, "mountains", 3)
//	if err != nil {
//	    if apiErr, ok := err.(*errors.Error); ok && apiErr.Type == errors.ErrorTypeAuth {
//	        // bad access key
//	    }
//	}
//
//	for _, photo := range resp.Results {
//	    body, _, err := client.OpenImage(ctx, photo.URLs["regular"])
//	    // copy body somewhere, then close it
//	}
package unsplash
