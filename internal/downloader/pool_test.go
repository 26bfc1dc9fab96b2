package downloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"unsplashdl/pkg/logger"
)

// MockClient is a mock implementation of the image client
type MockClient struct {
	downloadDelay   time.Duration
	downloadError   error
	failURLs        map[string]bool
	downloadCounter int32
	inFlight        int32
	maxInFlight     int32
}

func (m *MockClient) OpenImage(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	atomic.AddInt32(&m.downloadCounter, 1)

	current := atomic.AddInt32(&m.inFlight, 1)
	defer atomic.AddInt32(&m.inFlight, -1)
	for {
		max := atomic.LoadInt32(&m.maxInFlight)
		if current <= max || atomic.CompareAndSwapInt32(&m.maxInFlight, max, current) {
			break
		}
	}

	if m.downloadDelay > 0 {
		time.Sleep(m.downloadDelay)
	}
	if m.downloadError != nil {
		return nil, 0, m.downloadError
	}
	if m.failURLs[url] {
		return nil, 0, fmt.Errorf("status 500 for %s", url)
	}
	data := []byte("photo data for " + url)
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

func (m *MockClient) GetDownloadCount() int {
	return int(atomic.LoadInt32(&m.downloadCounter))
}

// MockStorageManager is a mock implementation of the storage manager
type MockStorageManager struct {
	savedPhotos map[string][]byte
	saveError   error
	mu          sync.Mutex
}

func NewMockStorageManager() *MockStorageManager {
	return &MockStorageManager{
		savedPhotos: make(map[string][]byte),
	}
}

func (m *MockStorageManager) SavePhoto(r io.Reader, filename string) (int64, error) {
	if m.saveError != nil {
		return 0, m.saveError
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.savedPhotos[filename] = data
	return int64(len(data)), nil
}

func (m *MockStorageManager) GetSavedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.savedPhotos)
}

func makeJobs(n int) []DownloadJob {
	jobs := make([]DownloadJob, n)
	for i := range jobs {
		jobs[i] = DownloadJob{
			URL:      fmt.Sprintf("https://images.example.com/photo%d", i),
			PhotoID:  fmt.Sprintf("photo%d", i),
			FileName: fmt.Sprintf("q-photo%d.jpg", i),
		}
	}
	return jobs
}

func TestPoolBasicFunctionality(t *testing.T) {
	mockClient := &MockClient{downloadDelay: 10 * time.Millisecond}
	mockStorage := NewMockStorageManager()

	pool := NewPool(0, mockClient, mockStorage, logger.NewTestLogger())

	jobs := makeJobs(5)
	results := pool.Run(context.Background(), jobs)

	if len(results) != len(jobs) {
		t.Fatalf("Expected %d results, got %d", len(jobs), len(results))
	}
	for i, result := range results {
		if !result.Success {
			t.Errorf("Job %d failed: %v", i, result.Error)
		}
		if result.Job.PhotoID != jobs[i].PhotoID {
			t.Errorf("Result %d out of order: got %s", i, result.Job.PhotoID)
		}
		if result.Size == 0 {
			t.Errorf("Result %d has zero size", i)
		}
	}

	if mockClient.GetDownloadCount() != 5 {
		t.Errorf("Expected 5 downloads, got %d", mockClient.GetDownloadCount())
	}
	if mockStorage.GetSavedCount() != 5 {
		t.Errorf("Expected 5 saved photos, got %d", mockStorage.GetSavedCount())
	}
}

func TestPoolEmptyJobs(t *testing.T) {
	pool := NewPool(0, &MockClient{}, NewMockStorageManager(), logger.NewNopLogger())

	results := pool.Run(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestPoolWithErrors(t *testing.T) {
	jobs := makeJobs(4)
	mockClient := &MockClient{failURLs: map[string]bool{jobs[1].URL: true}}
	mockStorage := NewMockStorageManager()
	log := logger.NewTestLogger()

	pool := NewPool(0, mockClient, mockStorage, log)
	results := pool.Run(context.Background(), jobs)

	failed := 0
	for _, result := range results {
		if !result.Success {
			failed++
			if result.Error == nil {
				t.Error("Failed result should carry an error")
			}
		}
	}
	if failed != 1 {
		t.Errorf("Expected 1 failure, got %d", failed)
	}
	if results[1].Success {
		t.Error("Expected job 1 to fail")
	}

	// The failure does not stop the other jobs
	if mockStorage.GetSavedCount() != 3 {
		t.Errorf("Expected 3 saved photos, got %d", mockStorage.GetSavedCount())
	}
	if !log.HasMessage("Download failed") {
		t.Error("Expected failure to be logged")
	}
}

func TestPoolSaveError(t *testing.T) {
	saveErr := errors.New("disk full")
	mockStorage := NewMockStorageManager()
	mockStorage.saveError = saveErr

	pool := NewPool(0, &MockClient{}, mockStorage, logger.NewNopLogger())
	results := pool.Run(context.Background(), makeJobs(2))

	for _, result := range results {
		if result.Success {
			t.Error("Expected save failure")
		}
		if !errors.Is(result.Error, saveErr) {
			t.Errorf("Expected wrapped save error, got %v", result.Error)
		}
	}
}

func TestPoolPresetJobError(t *testing.T) {
	sizeErr := errors.New("size not available")
	jobs := makeJobs(3)
	jobs[2].Err = sizeErr

	mockClient := &MockClient{}
	pool := NewPool(0, mockClient, NewMockStorageManager(), logger.NewNopLogger())
	results := pool.Run(context.Background(), jobs)

	if !errors.Is(results[2].Error, sizeErr) {
		t.Errorf("Expected preset error, got %v", results[2].Error)
	}
	if !results[0].Success || !results[1].Success {
		t.Error("Expected other jobs to succeed")
	}
	if mockClient.GetDownloadCount() != 2 {
		t.Errorf("Preset failure should not hit the network, got %d downloads", mockClient.GetDownloadCount())
	}
}

func TestPoolConcurrency(t *testing.T) {
	mockClient := &MockClient{downloadDelay: 50 * time.Millisecond}
	pool := NewPool(0, mockClient, NewMockStorageManager(), logger.NewNopLogger())

	start := time.Now()
	results := pool.Run(context.Background(), makeJobs(10))
	duration := time.Since(start)

	if len(results) != 10 {
		t.Fatalf("Expected 10 results, got %d", len(results))
	}

	// Sequential would take 500ms; unlimited fan-out should take about 50ms
	if duration > 300*time.Millisecond {
		t.Errorf("Downloads did not run concurrently: took %v", duration)
	}
	if atomic.LoadInt32(&mockClient.maxInFlight) < 2 {
		t.Errorf("Expected overlapping downloads, max in flight %d", mockClient.maxInFlight)
	}
}

func TestPoolConcurrencyLimit(t *testing.T) {
	mockClient := &MockClient{downloadDelay: 20 * time.Millisecond}
	pool := NewPool(2, mockClient, NewMockStorageManager(), logger.NewNopLogger())

	results := pool.Run(context.Background(), makeJobs(6))
	if len(results) != 6 {
		t.Fatalf("Expected 6 results, got %d", len(results))
	}

	if max := atomic.LoadInt32(&mockClient.maxInFlight); max > 2 {
		t.Errorf("Expected at most 2 downloads in flight, got %d", max)
	}
}

func TestPoolOnResult(t *testing.T) {
	pool := NewPool(0, &MockClient{}, NewMockStorageManager(), logger.NewNopLogger())

	var calls int
	pool.OnResult(func(r DownloadResult) {
		calls++
	})

	pool.Run(context.Background(), makeJobs(7))

	if calls != 7 {
		t.Errorf("Expected 7 callbacks, got %d", calls)
	}
}
