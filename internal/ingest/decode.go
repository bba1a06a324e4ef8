package ingest

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"aipulse/internal/core"
)

var (
	errInvalidJSON = errors.New("invalid json")
	errNotObject   = errors.New("not a json object")
	errMissingDay  = errors.New("missing day")
)

// decodeLine parses a single newline-delimited JSON line into a usage
// record. Unknown fields are ignored and missing counters default to
// zero; only a missing or unparseable date makes the line undecodable.
func decodeLine(line []byte) (core.UsageRecord, error) {
	if !gjson.ValidBytes(line) {
		return core.UsageRecord{}, errInvalidJSON
	}
	v := gjson.ParseBytes(line)
	if !v.IsObject() {
		return core.UsageRecord{}, errNotObject
	}

	rec := core.UsageRecord{
		EnterpriseID: v.Get("enterprise_id").String(),
		UserID:       v.Get("user_id").Int(),
		UserLogin:    v.Get("user_login").String(),
		Interactions: int(v.Get("user_initiated_interaction_count").Int()),
		Generations:  int(v.Get("code_generation_activity_count").Int()),
		Acceptances:  int(v.Get("code_acceptance_activity_count").Int()),
		GeneratedLOC: int(v.Get("generated_loc_sum").Int()),
		AcceptedLOC:  int(v.Get("accepted_loc_sum").Int()),
		UsedAgent:    v.Get("used_agent").Bool(),
		UsedChat:     v.Get("used_chat").Bool(),
	}

	day := v.Get("day")
	if !day.Exists() || day.String() == "" {
		return core.UsageRecord{}, errMissingDay
	}
	d, err := core.ParseDay(day.String())
	if err != nil {
		return core.UsageRecord{}, fmt.Errorf("day: %w", err)
	}
	rec.Day = d

	// Report bounds are optional, but a present value must parse.
	if rec.ReportStartDay, err = optionalDay(v, "report_start_day"); err != nil {
		return core.UsageRecord{}, err
	}
	if rec.ReportEndDay, err = optionalDay(v, "report_end_day"); err != nil {
		return core.UsageRecord{}, err
	}

	rec.ByIDE = decodeBreakdowns(v.Get("totals_by_ide"))
	rec.ByFeature = decodeBreakdowns(v.Get("totals_by_feature"))
	rec.ByLanguageFeature = decodeBreakdowns(v.Get("totals_by_language_feature"))
	rec.ByLanguageModel = decodeBreakdowns(v.Get("totals_by_language_model"))
	rec.ByModelFeature = decodeBreakdowns(v.Get("totals_by_model_feature"))

	return rec, nil
}

func optionalDay(v gjson.Result, key string) (core.Day, error) {
	f := v.Get(key)
	if !f.Exists() || f.Type == gjson.Null || f.String() == "" {
		return core.Day{}, nil
	}
	d, err := core.ParseDay(f.String())
	if err != nil {
		return core.Day{}, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func decodeBreakdowns(arr gjson.Result) []core.BreakdownEntry {
	if !arr.IsArray() {
		return nil
	}
	var out []core.BreakdownEntry
	arr.ForEach(func(_, e gjson.Result) bool {
		if !e.IsObject() {
			return true
		}
		out = append(out, core.BreakdownEntry{
			IDE:          e.Get("ide").String(),
			Feature:      e.Get("feature").String(),
			Language:     e.Get("language").String(),
			Model:        e.Get("model").String(),
			Interactions: int(e.Get("user_initiated_interaction_count").Int()),
			Generations:  int(e.Get("code_generation_activity_count").Int()),
			Acceptances:  int(e.Get("code_acceptance_activity_count").Int()),
			GeneratedLOC: int(e.Get("generated_loc_sum").Int()),
			AcceptedLOC:  int(e.Get("accepted_loc_sum").Int()),
		})
		return true
	})
	return out
}
