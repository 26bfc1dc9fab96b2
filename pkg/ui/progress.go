package ui

import (
	"fmt"
	"strings"
	"sync"
)

const (
	ProgressBar   = "█"
	ProgressEmpty = "░"
)

// StatusTracker keeps track of download progress for one run.
// It is safe for concurrent use.
type StatusTracker struct {
	Total int

	mu        sync.Mutex
	completed int
	failed    int
	bytes     int64
}

// NewStatusTracker creates a tracker expecting total downloads
func NewStatusTracker(total int) *StatusTracker {
	return &StatusTracker{Total: total}
}

// Record marks one download as finished
func (st *StatusTracker) Record(success bool, size int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.completed++
	if !success {
		st.failed++
	}
	st.bytes += size
}

// Counts returns the finished and failed download counts
func (st *StatusTracker) Counts() (completed, failed int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.completed, st.failed
}

// Bytes returns the total bytes written so far
func (st *StatusTracker) Bytes() int64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.bytes
}

// GetProgressBar returns a formatted progress bar
func (st *StatusTracker) GetProgressBar() string {
	const width = 20
	completed, _ := st.Counts()

	filled := width
	if st.Total > 0 {
		filled = completed * width / st.Total
	}
	if filled > width {
		filled = width
	}

	bar := strings.Repeat(ProgressBar, filled) +
		strings.Repeat(ProgressEmpty, width-filled)

	return fmt.Sprintf("[%s] %d/%d", bar, completed, st.Total)
}

// IsComplete reports whether every expected download has finished
func (st *StatusTracker) IsComplete() bool {
	completed, _ := st.Counts()
	return completed >= st.Total
}

// PrintProgress prints the current progress line, overwriting the previous one
func (st *StatusTracker) PrintProgress() {
	_, failed := st.Counts()
	line := fmt.Sprintf("\r%s %s", Green("[DOWNLOADING]"), st.GetProgressBar())
	if failed > 0 {
		line += " " + Red(fmt.Sprintf("failed: %d", failed))
	}
	printOut(line)
}

// Finish ends the progress line
func (st *StatusTracker) Finish() {
	printOut("\n")
}
