package source

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/dustin/go-humanize"
)

// Progress bar characters.
const (
	progressFilled = "█"
	progressEmpty  = "░"
)

// CountingReader wraps an io.Reader and counts bytes read. The count is
// updated atomically so it can be sampled from a progress goroutine while
// the decoder reads.
type CountingReader struct {
	inner io.Reader
	count atomic.Int64
}

// NewCountingReader wraps r.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{inner: r}
}

// Read delegates to the wrapped reader and records the bytes consumed.
func (cr *CountingReader) Read(p []byte) (int, error) {
	n, err := cr.inner.Read(p)
	cr.count.Add(int64(n))

	return n, err //nolint:wrapcheck // transparent reader passthrough.
}

// Count returns the total bytes read so far.
func (cr *CountingReader) Count() int64 {
	return cr.count.Load()
}

// FormatProgress renders a one-line progress bar for read/total byte counts.
// Example: "[████████░░░░░░░░░░░░]  40% 410 MB/1.0 GB".
func FormatProgress(read, total int64, width int) string {
	var ratio float64
	if total > 0 {
		ratio = float64(read) / float64(total)
	}

	if ratio < 0 {
		ratio = 0
	}

	if ratio > 1 {
		ratio = 1
	}

	filled := int(ratio * float64(width))
	bar := strings.Repeat(progressFilled, filled) + strings.Repeat(progressEmpty, width-filled)

	return fmt.Sprintf("[%s] %3.0f%% %s/%s",
		bar, ratio*100, humanize.Bytes(uint64(read)), humanize.Bytes(uint64(total))) //nolint:gosec // counts are non-negative.
}
