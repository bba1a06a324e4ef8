package analytics

import (
	"sort"

	"aipulse/internal/core"
)

// DayTotals is one point of the activity time series.
type DayTotals struct {
	Day          core.Day `json:"day"`
	Interactions int      `json:"interactions"`
	Generations  int      `json:"generations"`
	Acceptances  int      `json:"acceptances"`
}

// UserTotals is one row of the top-users ranking.
type UserTotals struct {
	Login       string `json:"login"`
	Generations int    `json:"generations"`
	Acceptances int    `json:"acceptances"`
}

// MixEntry is one slice of a feature or model mix, labeled with the
// display name of its key.
type MixEntry struct {
	Key         string `json:"key"`
	Generations int    `json:"generations"`
}

// DayUsage maps display names to generation counts for a single day.
type DayUsage struct {
	Day    core.Day       `json:"day"`
	Totals map[string]int `json:"totals"`
}

// MostUsed names the categories a user generated the most with.
type MostUsed struct {
	Login    string `json:"login"`
	Language string `json:"language"`
	Model    string `json:"model"`
}

// AdoptionStats counts coarse adoption signals over the filtered view.
type AdoptionStats struct {
	ActiveUsers           int `json:"active_users"`
	ChatRecords           int `json:"chat_records"`
	InlineChatRecords     int `json:"inline_chat_records"`
	CodeCompletionRecords int `json:"code_completion_records"`
}

// Totals sums raw activity over the filtered view.
type Totals struct {
	Interactions   int     `json:"interactions"`
	Generations    int     `json:"generations"`
	Acceptances    int     `json:"acceptances"`
	GeneratedLOC   int     `json:"generated_loc"`
	AcceptedLOC    int     `json:"accepted_loc"`
	AcceptanceRate float64 `json:"acceptance_rate"`
}

// TimeSeries sums interactions, generations and acceptances per day,
// ordered chronologically.
func (e *Engine) TimeSeries() []DayTotals {
	byDay := make(map[string]*DayTotals)
	for _, rec := range e.Filtered() {
		key := rec.Day.String()
		dt := byDay[key]
		if dt == nil {
			dt = &DayTotals{Day: rec.Day}
			byDay[key] = dt
		}
		dt.Interactions += rec.Interactions
		dt.Generations += rec.Generations
		dt.Acceptances += rec.Acceptances
	}

	series := make([]DayTotals, 0, len(byDay))
	for _, dt := range byDay {
		series = append(series, *dt)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Day.Before(series[j].Day.Time)
	})
	return series
}

// TopUsers ranks users by total generations, descending. Logins are
// grouped case-insensitively and reported with their first-seen casing.
// n <= 0 selects DefaultTopUsers.
func (e *Engine) TopUsers(n int) []UserTotals {
	if n <= 0 {
		n = DefaultTopUsers
	}

	byUser := make(map[string]*UserTotals)
	for _, rec := range e.Filtered() {
		key := fold(rec.UserLogin)
		ut := byUser[key]
		if ut == nil {
			ut = &UserTotals{Login: rec.UserLogin}
			byUser[key] = ut
		}
		ut.Generations += rec.Generations
		ut.Acceptances += rec.Acceptances
	}

	users := make([]UserTotals, 0, len(byUser))
	for _, ut := range byUser {
		users = append(users, *ut)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Generations != users[j].Generations {
			return users[i].Generations > users[j].Generations
		}
		return users[i].Login < users[j].Login
	})
	if len(users) > n {
		users = users[:n]
	}
	return users
}

// FeatureMix flattens the per-feature breakdowns of the filtered view
// and sums generations per feature, descending.
func (e *Engine) FeatureMix() []MixEntry {
	return e.mix(
		func(r *core.UsageRecord) []core.BreakdownEntry { return r.ByFeature },
		featureKey,
		e.names.FeatureName,
	)
}

// ModelMix flattens the model-feature breakdowns of the filtered view
// and sums generations per model, descending. Blank model keys are
// reported under the Unknown label.
func (e *Engine) ModelMix() []MixEntry {
	return e.mix(
		func(r *core.UsageRecord) []core.BreakdownEntry { return r.ByModelFeature },
		modelKey,
		e.names.ModelName,
	)
}

func (e *Engine) mix(list func(*core.UsageRecord) []core.BreakdownEntry, key func(*core.BreakdownEntry) string, label func(string) string) []MixEntry {
	totals := make(map[string]int)
	for _, rec := range e.Filtered() {
		for _, b := range list(&rec) {
			totals[label(key(&b))] += b.Generations
		}
	}

	mix := make([]MixEntry, 0, len(totals))
	for k, gens := range totals {
		mix = append(mix, MixEntry{Key: k, Generations: gens})
	}
	sort.Slice(mix, func(i, j int) bool {
		if mix[i].Generations != mix[j].Generations {
			return mix[i].Generations > mix[j].Generations
		}
		return mix[i].Key < mix[j].Key
	})
	return mix
}

// DailyModelUsage reports generations per model per day over the
// model-feature breakdowns. Entries with a blank model or zero
// generations are discarded; days with nothing left are omitted.
func (e *Engine) DailyModelUsage() []DayUsage {
	return e.dailyUsage(
		func(r *core.UsageRecord) []core.BreakdownEntry { return r.ByModelFeature },
		modelKey,
		e.names.ModelName,
	)
}

// DailyLanguageUsage reports generations per language per day over the
// language-feature breakdowns, with the same discard rules as
// DailyModelUsage.
func (e *Engine) DailyLanguageUsage() []DayUsage {
	return e.dailyUsage(
		func(r *core.UsageRecord) []core.BreakdownEntry { return r.ByLanguageFeature },
		languageKey,
		e.names.LanguageName,
	)
}

func (e *Engine) dailyUsage(list func(*core.UsageRecord) []core.BreakdownEntry, key func(*core.BreakdownEntry) string, label func(string) string) []DayUsage {
	byDay := make(map[string]*DayUsage)
	for _, rec := range e.Filtered() {
		for _, b := range list(&rec) {
			k := key(&b)
			if k == "" || b.Generations == 0 {
				continue
			}
			dk := rec.Day.String()
			du := byDay[dk]
			if du == nil {
				du = &DayUsage{Day: rec.Day, Totals: make(map[string]int)}
				byDay[dk] = du
			}
			du.Totals[label(k)] += b.Generations
		}
	}

	days := make([]DayUsage, 0, len(byDay))
	for _, du := range byDay {
		days = append(days, *du)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Day.Before(days[j].Day.Time)
	})
	return days
}

// MostUsedForUser reports the language and model the user generated the
// most with across the filtered view, Unknown when the user has no
// usable breakdowns. The login comparison is case-insensitive.
func (e *Engine) MostUsedForUser(login string) MostUsed {
	recs := e.Filtered()
	return MostUsed{
		Login: login,
		Language: e.names.LanguageName(mostUsedKey(recs, login,
			func(r *core.UsageRecord) []core.BreakdownEntry { return r.ByLanguageFeature },
			languageKey)),
		Model: e.names.ModelName(mostUsedKey(recs, login,
			func(r *core.UsageRecord) []core.BreakdownEntry { return r.ByModelFeature },
			modelKey)),
	}
}

// mostUsedKey picks the key with the largest generation sum for the
// user, an empty string when there is none. Ties break lexicographically
// to keep results stable.
func mostUsedKey(recs []core.UsageRecord, login string, list func(*core.UsageRecord) []core.BreakdownEntry, key func(*core.BreakdownEntry) string) string {
	want := fold(login)
	counts := make(map[string]int)
	for _, rec := range recs {
		if fold(rec.UserLogin) != want {
			continue
		}
		for _, b := range list(&rec) {
			k := key(&b)
			if k == "" || b.Generations == 0 {
				continue
			}
			counts[k] += b.Generations
		}
	}

	best := ""
	bestN := 0
	for k, n := range counts {
		if n > bestN || (n == bestN && best != "" && k < best) {
			best, bestN = k, n
		}
	}
	return best
}

// Adoption counts distinct active users and the records touching the
// chat, inline-chat and code-completion surfaces.
func (e *Engine) Adoption() AdoptionStats {
	var stats AdoptionStats
	users := make(map[string]struct{})
	for _, rec := range e.Filtered() {
		users[fold(rec.UserLogin)] = struct{}{}
		if rec.UsedChat {
			stats.ChatRecords++
		}
		if hasFeature(rec.ByFeature, core.FeatureInlineChat) {
			stats.InlineChatRecords++
		}
		if hasFeature(rec.ByFeature, core.FeatureCodeCompletion) {
			stats.CodeCompletionRecords++
		}
	}
	stats.ActiveUsers = len(users)
	return stats
}

func hasFeature(entries []core.BreakdownEntry, feature string) bool {
	for i := range entries {
		if entries[i].Feature == feature {
			return true
		}
	}
	return false
}

// AggregateTotals sums the five activity counters over the filtered view
// and derives the overall acceptance rate.
func (e *Engine) AggregateTotals() Totals {
	var t Totals
	for _, rec := range e.Filtered() {
		t.Interactions += rec.Interactions
		t.Generations += rec.Generations
		t.Acceptances += rec.Acceptances
		t.GeneratedLOC += rec.GeneratedLOC
		t.AcceptedLOC += rec.AcceptedLOC
	}
	t.AcceptanceRate = ratio(t.Acceptances, t.Generations)
	return t
}
