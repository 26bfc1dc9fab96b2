package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"unsplashdl/pkg/config"
	apierrors "unsplashdl/pkg/errors"
	"unsplashdl/pkg/logger"
)

// Client represents an Unsplash API client
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	apiHeaders map[string]string
	baseURL    string
	logger     logger.Logger
}

// NewClient creates a new Unsplash API client against the public API
func NewClient(accessKey string, timeout time.Duration, log logger.Logger) *Client {
	return NewClientWithConfig(&config.APIConfig{
		BaseURL: BaseURL,
		Timeout: timeout,
	}, accessKey, log)
}

// NewClientWithConfig creates a client from API settings
func NewClientWithConfig(cfg *config.APIConfig, accessKey string, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseURL
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		headers: make(map[string]string),
		apiHeaders: map[string]string{
			"Authorization":  AuthorizationHeader(accessKey),
			"Accept-Version": APIVersion,
			"Accept":         "application/json",
		},
		baseURL: baseURL,
		logger:  log,
	}

	if cfg.UserAgent != "" {
		c.SetHeader("User-Agent", cfg.UserAgent)
	}

	return c
}

// SetHeader sets a header sent on every request
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// doRequest performs an HTTP request with the configured headers.
// API headers, including the access key, are only added when api is true.
func (c *Client) doRequest(req *http.Request, api bool) (*http.Response, error) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	if api {
		for key, value := range c.apiHeaders {
			req.Header.Set(key, value)
		}
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, apierrors.New(apierrors.ErrorTypeNetwork, 0, "network error: %v", err)
	}

	logger.LogRequest(c.logger, req.Method, req.URL.String(), resp.StatusCode, duration)

	return resp, nil
}

// get builds and performs a GET request
func (c *Client) get(ctx context.Context, url string, api bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apierrors.New(apierrors.ErrorTypeUnknown, 0, "failed to create request: %v", err)
	}

	resp, err := c.doRequest(req, api)
	if err != nil {
		return nil, err
	}

	if apiErr := apierrors.FromStatusCode(resp.StatusCode); apiErr != nil {
		resp.Body.Close()
		return nil, apiErr
	}

	return resp, nil
}

// GetJSON performs an authenticated GET request and decodes the JSON response
func (c *Client) GetJSON(ctx context.Context, url string, target interface{}) error {
	resp, err := c.get(ctx, url, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierrors.New(apierrors.ErrorTypeNetwork, resp.StatusCode, "failed to read response body: %v", err)
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}

		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          url,
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return apierrors.New(apierrors.ErrorTypeParsing, resp.StatusCode, "failed to parse JSON: %v", err)
	}

	return nil
}

// SearchPhotos fetches one page of results for query, asking for perPage items
func (c *Client) SearchPhotos(ctx context.Context, query string, perPage int) (*SearchResponse, error) {
	url := GetSearchURL(c.baseURL, query, perPage)

	c.logger.DebugWithFields("searching photos", map[string]interface{}{
		"query":    query,
		"per_page": perPage,
	})

	var response SearchResponse
	if err := c.GetJSON(ctx, url, &response); err != nil {
		c.logger.ErrorWithFields("photo search failed", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("search for %q failed: %w", query, err)
	}

	c.logger.DebugWithFields("photo search completed", map[string]interface{}{
		"query":   query,
		"total":   response.Total,
		"results": len(response.Results),
	})

	return &response, nil
}

// OpenImage starts downloading an image and returns its body for streaming.
// The caller must close the body. The returned size is -1 when unknown.
func (c *Client) OpenImage(ctx context.Context, imageURL string) (io.ReadCloser, int64, error) {
	resp, err := c.get(ctx, imageURL, false)
	if err != nil {
		return nil, 0, err
	}

	return resp.Body, resp.ContentLength, nil
}
