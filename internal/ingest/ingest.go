// Package ingest parses newline-delimited JSON usage exports into usage
// records. Malformed lines are counted and dropped; a single bad line
// never fails a run.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"aipulse/internal/core"
)

// progressEvery is the line interval between progress callbacks.
const progressEvery = 1000

// Progress describes how far an ingestion run has advanced. Before the
// final report EstimatedBytes is extrapolated from the line position.
type Progress struct {
	Records        int
	EstimatedBytes int64
	Done           bool
}

// ProgressFunc receives periodic progress reports during a run. It is
// called from the ingesting goroutine and must not block for long.
type ProgressFunc func(Progress)

// Result summarizes a completed ingestion run.
type Result struct {
	Records int   `json:"records"`
	Skipped int   `json:"skipped"`
	Bytes   int64 `json:"bytes"`
}

// Read consumes r to EOF and parses it as newline-delimited JSON usage
// records. Blank lines are ignored, undecodable lines are counted in
// Result.Skipped and dropped. A read failure or context cancellation
// aborts the run; the partially populated Result is still returned for
// logging.
func Read(ctx context.Context, r io.Reader, onProgress ProgressFunc) ([]core.UsageRecord, Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Result{}, fmt.Errorf("read stream: %w", err)
	}

	total := int64(len(data))
	lines := bytes.Split(data, []byte("\n"))

	records := make([]core.UsageRecord, 0, len(lines))
	skipped := 0
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, Result{Records: len(records), Skipped: skipped, Bytes: total}, err
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		rec, err := decodeLine(line)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)

		if onProgress != nil && (i+1)%progressEvery == 0 {
			est := int64(float64(i+1) / float64(len(lines)) * float64(total))
			onProgress(Progress{Records: len(records), EstimatedBytes: est})
		}
	}

	res := Result{Records: len(records), Skipped: skipped, Bytes: total}
	if onProgress != nil {
		onProgress(Progress{Records: res.Records, EstimatedBytes: total, Done: true})
	}
	return records, res, nil
}
