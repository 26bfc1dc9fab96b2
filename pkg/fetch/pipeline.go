package fetch

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"unsplashdl/internal/downloader"
	"unsplashdl/pkg/config"
	"unsplashdl/pkg/logger"
	"unsplashdl/pkg/storage"
	"unsplashdl/pkg/ui"
	"unsplashdl/pkg/unsplash"
)

// Request describes one download invocation
type Request struct {
	Query     string
	Count     int
	Size      string
	OutputDir string
}

// Summary reports the outcome of a run
type Summary struct {
	RunID      string
	Query      string
	Found      int
	Downloaded int
	Failed     int
	OutputDir  string
	Files      []string
	Results    []downloader.DownloadResult
}

// Pipeline orchestrates search and concurrent download
type Pipeline struct {
	client       SearchClient
	concurrency  int
	showProgress bool
	logger       logger.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithConcurrency caps simultaneous downloads. Zero means no cap.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		p.concurrency = n
	}
}

// WithLogger sets the logger used by the pipeline and its workers
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithProgress prints a progress line while downloads run
func WithProgress(show bool) Option {
	return func(p *Pipeline) {
		p.showProgress = show
	}
}

// New creates a pipeline around client
func New(client SearchClient, opts ...Option) *Pipeline {
	p := &Pipeline{
		client: client,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.GetLogger()
	}
	return p
}

// NewFromConfig creates a pipeline with an Unsplash client authenticated by accessKey
func NewFromConfig(cfg *config.Config, accessKey string, opts ...Option) *Pipeline {
	log := logger.GetLogger()
	client := unsplash.NewClientWithConfig(&cfg.API, accessKey, log)

	opts = append([]Option{
		WithConcurrency(cfg.Download.Concurrency),
		WithLogger(log),
	}, opts...)

	return New(client, opts...)
}

// Run executes one search and downloads every returned photo
func (p *Pipeline) Run(ctx context.Context, req Request) (*Summary, error) {
	if req.Size == "" {
		req.Size = config.DefaultSize
	}
	if req.OutputDir == "" {
		req.OutputDir = config.DefaultOutputDir
	}

	runID := uuid.NewString()
	log := p.logger.WithFields(map[string]interface{}{
		"run_id": runID,
		"query":  req.Query,
	})

	log.InfoWithFields("Starting download run", map[string]interface{}{
		"count":      req.Count,
		"size":       req.Size,
		"output_dir": req.OutputDir,
	})

	// Created once, before any download starts
	storageManager, err := storage.NewManager(req.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare output directory: %w", err)
	}

	resp, err := p.client.SearchPhotos(ctx, req.Query, req.Count)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:     runID,
		Query:     req.Query,
		Found:     len(resp.Results),
		OutputDir: storageManager.GetOutputDir(),
	}

	if summary.Found == 0 {
		log.Info("No images found")
		return summary, nil
	}

	jobs := buildJobs(req, resp.Results)

	pool := downloader.NewPool(p.concurrency, p.client, storageManager, log)

	var tracker *ui.StatusTracker
	if p.showProgress {
		tracker = ui.NewStatusTracker(len(jobs))
		tracker.PrintProgress()
		pool.OnResult(func(r downloader.DownloadResult) {
			tracker.Record(r.Success, r.Size)
			tracker.PrintProgress()
		})
	}

	results := pool.Run(ctx, jobs)

	if tracker != nil {
		tracker.Finish()
	}

	summary.Results = results

	var failures []*DownloadError
	for _, result := range results {
		if result.Success {
			summary.Downloaded++
			continue
		}
		failures = append(failures, &DownloadError{
			PhotoID: result.Job.PhotoID,
			File:    result.Job.FileName,
			Err:     result.Error,
		})
	}
	summary.Failed = len(failures)
	summary.Files = storageManager.SavedFiles()

	log.InfoWithFields("Download run finished", map[string]interface{}{
		"found":      summary.Found,
		"downloaded": summary.Downloaded,
		"failed":     summary.Failed,
		"files":      summary.Files,
	})

	if len(failures) > 0 {
		return summary, &PipelineError{
			Failed: len(failures),
			Total:  len(jobs),
			Errors: failures,
		}
	}

	return summary, nil
}

// buildJobs turns search results into download jobs in result order
func buildJobs(req Request, photos []unsplash.Photo) []downloader.DownloadJob {
	jobs := make([]downloader.DownloadJob, len(photos))
	for i := range photos {
		photo := &photos[i]
		job := downloader.DownloadJob{
			PhotoID:  photo.ID,
			FileName: storage.FileName(req.Query, photo.ID),
		}

		if err := storage.ValidateFileName(job.FileName); err != nil {
			job.Err = err
		} else if url, ok := photo.URL(req.Size); ok {
			job.URL = url
		} else {
			job.Err = fmt.Errorf("%w: %q", ErrSizeUnavailable, req.Size)
		}

		jobs[i] = job
	}
	return jobs
}
