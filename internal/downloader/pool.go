package downloader

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"unsplashdl/pkg/logger"
)

// DownloadJob represents a single download task
type DownloadJob struct {
	URL      string
	PhotoID  string
	FileName string

	// Err marks a job that cannot run, such as a photo missing the requested
	// size. The job is reported as failed without any network request.
	Err error
}

// DownloadResult represents the result of a download job
type DownloadResult struct {
	Job      DownloadJob
	Success  bool
	Error    error
	Duration time.Duration
	Size     int64
}

// PhotoDownloader opens an image for streaming
type PhotoDownloader interface {
	OpenImage(ctx context.Context, url string) (io.ReadCloser, int64, error)
}

// PhotoStorage persists an image stream under a file name
type PhotoStorage interface {
	SavePhoto(r io.Reader, filename string) (int64, error)
}

// Pool runs download jobs concurrently, one goroutine per job.
// A failing job never cancels the others.
type Pool struct {
	concurrency    int
	client         PhotoDownloader
	storageManager PhotoStorage
	logger         logger.Logger

	mu       sync.Mutex
	onResult func(DownloadResult)
}

// NewPool creates a download pool. A concurrency of zero or less runs every
// job at once; a positive value caps the number of jobs in flight.
func NewPool(
	concurrency int,
	client PhotoDownloader,
	storageManager PhotoStorage,
	log logger.Logger,
) *Pool {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Pool{
		concurrency:    concurrency,
		client:         client,
		storageManager: storageManager,
		logger:         log,
	}
}

// OnResult registers a callback invoked as each job finishes.
// Calls are serialized.
func (p *Pool) OnResult(fn func(DownloadResult)) {
	p.onResult = fn
}

// Run executes all jobs and waits for them to finish. Results are returned in
// job order regardless of completion order.
func (p *Pool) Run(ctx context.Context, jobs []DownloadJob) []DownloadResult {
	results := make([]DownloadResult, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	p.logger.DebugWithFields("Starting downloads", map[string]interface{}{
		"jobs":        len(jobs),
		"concurrency": p.concurrency,
	})

	var g errgroup.Group
	if p.concurrency > 0 {
		g.SetLimit(p.concurrency)
	}

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			result := p.processJob(ctx, job)
			results[i] = result
			p.report(result)
			return nil
		})
	}

	_ = g.Wait()

	p.logger.Debug("All downloads finished")

	return results
}

func (p *Pool) report(result DownloadResult) {
	if p.onResult == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onResult(result)
}

// processJob handles a single download job
func (p *Pool) processJob(ctx context.Context, job DownloadJob) DownloadResult {
	start := time.Now()
	result := DownloadResult{
		Job:     job,
		Success: false,
	}

	if job.Err != nil {
		result.Error = job.Err
		result.Duration = time.Since(start)
		logger.LogDownload(p.logger, job.PhotoID, job.FileName, 0, job.Err)
		return result
	}

	p.logger.DebugWithFields("Processing download job", map[string]interface{}{
		"photo_id": job.PhotoID,
		"file":     job.FileName,
	})

	body, _, err := p.client.OpenImage(ctx, job.URL)
	if err != nil {
		result.Error = fmt.Errorf("download failed: %w", err)
		result.Duration = time.Since(start)
		logger.LogDownload(p.logger, job.PhotoID, job.FileName, 0, result.Error)
		return result
	}
	defer body.Close()

	size, err := p.storageManager.SavePhoto(body, job.FileName)
	result.Size = size
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = fmt.Errorf("save failed: %w", err)
		logger.LogDownload(p.logger, job.PhotoID, job.FileName, size, result.Error)
		return result
	}

	result.Success = true
	logger.LogDownload(p.logger, job.PhotoID, job.FileName, size, nil)

	return result
}
