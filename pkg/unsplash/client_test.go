package unsplash

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"unsplashdl/pkg/config"
	"unsplashdl/pkg/errors"
	"unsplashdl/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRoundTripper allows us to intercept HTTP requests
type mockRoundTripper struct {
	handler func(req *http.Request) (*http.Response, error)
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.handler(req)
}

func newMockHTTPClient(handler func(req *http.Request) (*http.Response, error)) *http.Client {
	return &http.Client{
		Transport: &mockRoundTripper{handler: handler},
		Timeout:   30 * time.Second,
	}
}

func newResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func newTestServerClient(t *testing.T, handler http.HandlerFunc) (*Client, *logger.TestLogger) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logger.NewTestLogger()
	client := NewClientWithConfig(&config.APIConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, "test-access-key", log)

	return client, log
}

func TestNewClient(t *testing.T) {
	log := logger.NewTestLogger()
	client := NewClient("key", 30*time.Second, log)

	assert.NotNil(t, client)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
	assert.Equal(t, BaseURL, client.baseURL)
	assert.Equal(t, "Client-ID key", client.apiHeaders["Authorization"])
	assert.Equal(t, APIVersion, client.apiHeaders["Accept-Version"])
}

func TestNewClientWithConfig_Defaults(t *testing.T) {
	client := NewClientWithConfig(&config.APIConfig{UserAgent: "ua/1"}, "key", nil)

	assert.Equal(t, BaseURL, client.baseURL)
	assert.Equal(t, "ua/1", client.headers["User-Agent"])
	assert.NotNil(t, client.logger)
}

func TestSearchPhotos_Success(t *testing.T) {
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, SearchPhotosEndpoint, r.URL.Path)
		assert.Equal(t, "mountain lake", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))
		assert.Equal(t, "Client-ID test-access-key", r.Header.Get("Authorization"))
		assert.Equal(t, "v1", r.Header.Get("Accept-Version"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"total": 120,
			"total_pages": 60,
			"results": [
				{"id": "a1", "description": "lake", "urls": {"regular": "https://img/a1", "small": "https://img/a1s"}},
				{"id": "b2", "urls": {"regular": "https://img/b2"}}
			]
		}`)
	})

	resp, err := client.SearchPhotos(context.Background(), "mountain lake", 2)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, 120, resp.Total)
	assert.Equal(t, 60, resp.TotalPages)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "a1", resp.Results[0].ID)
	assert.Equal(t, "lake", resp.Results[0].Description)
	assert.Equal(t, "https://img/a1", resp.Results[0].URLs["regular"])
	assert.Equal(t, "b2", resp.Results[1].ID)
}

func TestSearchPhotos_EmptyResults(t *testing.T) {
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"total": 0, "total_pages": 0, "results": []}`)
	})

	resp, err := client.SearchPhotos(context.Background(), "zzzz", 5)
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestSearchPhotos_StatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantType errors.ErrorType
	}{
		{"unauthorized", http.StatusUnauthorized, errors.ErrorTypeAuth},
		{"forbidden", http.StatusForbidden, errors.ErrorTypeAuth},
		{"not found", http.StatusNotFound, errors.ErrorTypeNotFound},
		{"rate limited", http.StatusTooManyRequests, errors.ErrorTypeRateLimit},
		{"server error", http.StatusInternalServerError, errors.ErrorTypeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, log := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			resp, err := client.SearchPhotos(context.Background(), "cats", 3)
			assert.Nil(t, resp)
			require.Error(t, err)

			var apiErr *errors.Error
			require.True(t, stderrors.As(err, &apiErr))
			assert.Equal(t, tt.wantType, apiErr.Type)
			assert.Equal(t, tt.status, apiErr.Code)
			assert.True(t, log.HasMessage("photo search failed"))
		})
	}
}

func TestSearchPhotos_InvalidJSON(t *testing.T) {
	client, log := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>not json</html>")
	})

	_, err := client.SearchPhotos(context.Background(), "cats", 3)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeParsing, errors.TypeOf(err))
	assert.True(t, log.HasMessage("failed to parse JSON response"))
}

func TestSearchPhotos_NetworkError(t *testing.T) {
	client := NewClient("key", time.Second, logger.NewTestLogger())
	client.httpClient = newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return nil, stderrors.New("connection refused")
	})

	_, err := client.SearchPhotos(context.Background(), "cats", 3)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeNetwork, errors.TypeOf(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSetHeader(t *testing.T) {
	var gotHeader string
	client := NewClient("key", time.Second, logger.NewTestLogger())
	client.httpClient = newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		gotHeader = req.Header.Get("X-Test")
		return newResponse(http.StatusOK, `{"results": []}`), nil
	})
	client.SetHeader("X-Test", "yes")

	_, err := client.SearchPhotos(context.Background(), "cats", 1)
	require.NoError(t, err)
	assert.Equal(t, "yes", gotHeader)
}

func TestOpenImage(t *testing.T) {
	imageData := []byte("\xff\xd8\xff\xe0fake-jpeg")

	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"), "image requests must not carry the access key")
		assert.Empty(t, r.Header.Get("Accept-Version"))
		w.Write(imageData)
	})

	body, size, err := client.OpenImage(context.Background(), client.baseURL+"/photo.jpg")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, imageData, data)
	assert.Equal(t, int64(len(imageData)), size)
}

func TestOpenImage_ErrorStatus(t *testing.T) {
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	body, _, err := client.OpenImage(context.Background(), client.baseURL+"/missing.jpg")
	assert.Nil(t, body)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeNotFound, errors.TypeOf(err))
}

func TestOpenImage_InvalidURL(t *testing.T) {
	client := NewClient("key", time.Second, logger.NewTestLogger())

	_, _, err := client.OpenImage(context.Background(), "://bad url")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to create request"))
}

func TestRequestLogging(t *testing.T) {
	client, log := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"results": []}`)
	})

	_, err := client.SearchPhotos(context.Background(), "cats", 1)
	require.NoError(t, err)

	assert.True(t, log.HasMessage("sending HTTP request"))
	assert.True(t, log.HasMessage("photo search completed"))
	assert.False(t, log.HasError())
}
