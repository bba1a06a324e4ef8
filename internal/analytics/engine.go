// Package analytics computes adoption, engagement and efficiency reports
// over AI assistant usage records. The engine performs no internal
// locking; a single coordinating owner must serialize mutations against
// reads (see the server package).
package analytics

import (
	"context"
	"io"
	"strings"

	"aipulse/internal/core"
	"aipulse/internal/displayname"
	"aipulse/internal/ingest"
)

// DefaultTopUsers is the ranking size used when a caller does not ask
// for a specific one.
const DefaultTopUsers = 10

// Engine owns a loaded record collection and the active filter criteria.
// All reports are computed from the filtered view on every call; nothing
// derived is cached across mutations.
type Engine struct {
	records  []core.UsageRecord
	criteria Criteria
	names    displayname.Resolver
	revision uint64
}

// New returns an empty engine resolving display names through names.
// A nil resolver falls back to the built-in vocabulary.
func New(names displayname.Resolver) *Engine {
	if names == nil {
		names = displayname.Default()
	}
	return &Engine{names: names}
}

// Ingest replaces the dataset with the records parsed from r. The new
// collection is built off to the side and swapped in only after parsing
// finishes, so a failed or canceled run leaves the previous dataset and
// the active criteria untouched.
func (e *Engine) Ingest(ctx context.Context, r io.Reader, onProgress ingest.ProgressFunc) (ingest.Result, error) {
	records, res, err := ingest.Read(ctx, r, onProgress)
	if err != nil {
		return res, err
	}
	e.records = records
	e.revision++
	return res, nil
}

// Load replaces the dataset with already decoded records.
func (e *Engine) Load(records []core.UsageRecord) {
	e.records = records
	e.revision++
}

// Len reports the size of the unfiltered dataset.
func (e *Engine) Len() int {
	return len(e.records)
}

// Revision increases on every dataset or criteria mutation. Callers use
// it to fingerprint responses computed from the current state.
func (e *Engine) Revision() uint64 {
	return e.revision
}

// SetCriteria replaces the active filter criteria.
func (e *Engine) SetCriteria(c Criteria) {
	e.criteria = c
	e.revision++
}

// ActiveCriteria returns the criteria applied to all reports.
func (e *Engine) ActiveCriteria() Criteria {
	return e.criteria
}

// Filtered returns the records matching the active criteria, in dataset
// order. The slice is freshly built on every call.
func (e *Engine) Filtered() []core.UsageRecord {
	m := e.criteria.compile()
	out := make([]core.UsageRecord, 0, len(e.records))
	for i := range e.records {
		if m.match(&e.records[i]) {
			out = append(out, e.records[i])
		}
	}
	return out
}

// fold normalizes logins and categorical keys for case-insensitive
// grouping and matching.
func fold(s string) string {
	return strings.ToLower(s)
}
