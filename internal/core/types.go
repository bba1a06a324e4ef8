// Package core defines the shared domain types for AI assistant usage
// analytics: daily usage records, their nested per-category breakdowns,
// and the calendar-day value they are keyed by.
package core

import (
	"fmt"
	"strings"
	"time"
)

// DayFormat is the canonical serialization for calendar days.
const DayFormat = "2006-01-02"

// dayLayouts are tried in order when a value does not match DayFormat.
// Vendor exports mix plain dates with full timestamps.
var dayLayouts = []string{
	DayFormat,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// Day is a calendar date with day precision, normalized to midnight UTC.
// It marshals to and from the canonical YYYY-MM-DD form.
type Day struct {
	time.Time
}

// ParseDay parses s as a calendar day. The canonical YYYY-MM-DD layout is
// tried first, then a set of generic date layouts. Whatever the source
// layout, the result is truncated to midnight UTC.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Day{}, fmt.Errorf("empty day value")
	}
	for _, layout := range dayLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return DayOf(t), nil
	}
	return Day{}, fmt.Errorf("unrecognized day value %q", s)
}

// DayOf truncates t to its calendar day in UTC.
func DayOf(t time.Time) Day {
	t = t.UTC()
	return Day{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// String returns the canonical YYYY-MM-DD form, or "" for the zero value.
func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DayFormat)
}

// MarshalJSON encodes the day as a quoted YYYY-MM-DD string. The zero
// value encodes as null.
func (d Day) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DayFormat) + `"`), nil
}

// UnmarshalJSON decodes a quoted date string, accepting the same layouts
// as ParseDay. JSON null and the empty string decode to the zero value.
func (d *Day) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Feature keys as they appear in usage exports.
const (
	FeatureCodeCompletion = "code_completion"
	FeatureInlineChat     = "inline_chat"
)

// UnknownLabel is reported when a categorical key is blank or cannot be
// resolved to anything meaningful.
const UnknownLabel = "Unknown"

// UsageRecord is one user's AI assistant activity for one calendar day.
// Counter fields default to zero when absent from the source line.
type UsageRecord struct {
	Day            Day    `json:"day"`
	ReportStartDay Day    `json:"report_start_day,omitzero"`
	ReportEndDay   Day    `json:"report_end_day,omitzero"`
	EnterpriseID   string `json:"enterprise_id,omitempty"`
	UserID         int64  `json:"user_id,omitempty"`
	UserLogin      string `json:"user_login"`

	Interactions int `json:"user_initiated_interaction_count"`
	Generations  int `json:"code_generation_activity_count"`
	Acceptances  int `json:"code_acceptance_activity_count"`
	GeneratedLOC int `json:"generated_loc_sum"`
	AcceptedLOC  int `json:"accepted_loc_sum"`

	UsedAgent bool `json:"used_agent"`
	UsedChat  bool `json:"used_chat"`

	ByIDE             []BreakdownEntry `json:"totals_by_ide,omitempty"`
	ByFeature         []BreakdownEntry `json:"totals_by_feature,omitempty"`
	ByLanguageFeature []BreakdownEntry `json:"totals_by_language_feature,omitempty"`
	ByLanguageModel   []BreakdownEntry `json:"totals_by_language_model,omitempty"`
	ByModelFeature    []BreakdownEntry `json:"totals_by_model_feature,omitempty"`
}

// Combined returns interactions plus generations, the activity signal
// used for engagement and active-day decisions.
func (r *UsageRecord) Combined() int {
	return r.Interactions + r.Generations
}

// BreakdownEntry is one row of a record's nested per-category totals.
// Which key fields are populated depends on the list it came from: IDE
// only, feature only, language+feature, language+model, or model+feature.
type BreakdownEntry struct {
	IDE      string `json:"ide,omitempty"`
	Feature  string `json:"feature,omitempty"`
	Language string `json:"language,omitempty"`
	Model    string `json:"model,omitempty"`

	Interactions int `json:"user_initiated_interaction_count,omitempty"`
	Generations  int `json:"code_generation_activity_count,omitempty"`
	Acceptances  int `json:"code_acceptance_activity_count,omitempty"`
	GeneratedLOC int `json:"generated_loc_sum,omitempty"`
	AcceptedLOC  int `json:"accepted_loc_sum,omitempty"`
}
