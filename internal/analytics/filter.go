package analytics

import (
	"aipulse/internal/core"
)

// Criteria restricts the record view along four independent dimensions.
// Zero-value bounds leave that side open and empty sets leave a dimension
// unrestricted, so the zero Criteria matches everything. All string
// matching is case-insensitive.
type Criteria struct {
	From     core.Day `json:"from,omitzero"`
	To       core.Day `json:"to,omitzero"`
	Users    []string `json:"users,omitempty"`
	Features []string `json:"features,omitempty"`
	Models   []string `json:"models,omitempty"`
}

// IsZero reports whether the criteria restrict nothing.
func (c Criteria) IsZero() bool {
	return c.From.IsZero() && c.To.IsZero() &&
		len(c.Users) == 0 && len(c.Features) == 0 && len(c.Models) == 0
}

// matcher is the compiled set-based form of Criteria.
type matcher struct {
	from, to core.Day
	users    map[string]struct{}
	features map[string]struct{}
	models   map[string]struct{}
}

func (c Criteria) compile() matcher {
	return matcher{
		from:     c.From,
		to:       c.To,
		users:    toSet(c.Users),
		features: toSet(c.Features),
		models:   toSet(c.Models),
	}
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[fold(v)] = struct{}{}
	}
	return set
}

// match applies all dimensions conjunctively. Date bounds are inclusive.
// A record passes the feature dimension when any of its feature
// breakdowns carries a selected key, and the model dimension when any
// model-feature or language-model breakdown does.
func (m *matcher) match(rec *core.UsageRecord) bool {
	if !m.from.IsZero() && rec.Day.Before(m.from.Time) {
		return false
	}
	if !m.to.IsZero() && rec.Day.After(m.to.Time) {
		return false
	}
	if m.users != nil {
		if _, ok := m.users[fold(rec.UserLogin)]; !ok {
			return false
		}
	}
	if m.features != nil && !anyKey(rec.ByFeature, m.features, featureKey) {
		return false
	}
	if m.models != nil &&
		!anyKey(rec.ByModelFeature, m.models, modelKey) &&
		!anyKey(rec.ByLanguageModel, m.models, modelKey) {
		return false
	}
	return true
}

func anyKey(entries []core.BreakdownEntry, set map[string]struct{}, key func(*core.BreakdownEntry) string) bool {
	for i := range entries {
		if _, ok := set[fold(key(&entries[i]))]; ok {
			return true
		}
	}
	return false
}

func featureKey(b *core.BreakdownEntry) string  { return b.Feature }
func modelKey(b *core.BreakdownEntry) string    { return b.Model }
func languageKey(b *core.BreakdownEntry) string { return b.Language }
