package analytics

import (
	"aipulse/internal/core"
)

// AIDEI component weights.
const (
	aideiWeightAdoption   = 0.4
	aideiWeightAcceptance = 0.4
	aideiWeightEngagement = 0.2
)

// minQualifyingCombined is the per-day combined activity a day must
// exceed to count toward the blended usage rate.
const minQualifyingCombined = 3

// engagedDayMinimum is how many distinct qualifying days make a user
// engaged, in both engagement variants.
const engagedDayMinimum = 2

// secondsPerHour converts acceptance-based time estimates.
const secondsPerHour = 3600

// MetricParams carries the externally supplied knobs the metric
// computations depend on. Params are passed per call; the engine never
// holds them.
type MetricParams struct {
	// TotalLicensedUsers is the licensed seat count. Zero or negative
	// makes every seat-based rate report 0 instead of failing.
	TotalLicensedUsers int
	// SecondsPerAcceptance converts accepted suggestions into saved time.
	SecondsPerAcceptance float64
	// EngagementThreshold is the combined activity a day must clear to
	// count as engaged.
	EngagementThreshold int
	// PowerUserAcceptanceThreshold is the minimum per-user acceptance
	// rate for the power-user metric.
	PowerUserAcceptanceThreshold float64
	// PowerUserActiveDays is the minimum active-day count for the
	// power-user metric.
	PowerUserActiveDays int
}

// AIDEIResult is the blended adoption score and its components.
type AIDEIResult struct {
	Score                 float64 `json:"score"`
	AdoptionRate          float64 `json:"adoption_rate"`
	AcceptanceRate        float64 `json:"acceptance_rate"`
	LicensedVsEngagedRate float64 `json:"licensed_vs_engaged_rate"`
	UsageRate             float64 `json:"usage_rate"`
	WorkingDays           int     `json:"working_days"`
}

// EngineeringMetrics is the extended report table. Fields named Percent
// hold rates in [0, 1].
type EngineeringMetrics struct {
	LicenseUtilization          float64 `json:"license_utilization"`
	UnusedSeats                 int     `json:"unused_seats"`
	EngagedUsersPercent         float64 `json:"engaged_users_percent"`
	UsageRate                   float64 `json:"usage_rate"`
	MedianAcceptanceRate        float64 `json:"median_acceptance_rate"`
	AcceptancesPerActiveUserDay float64 `json:"acceptances_per_active_user_per_day"`
	PowerUsersPercent           float64 `json:"power_users_percent"`
	InlineSharePercent          float64 `json:"inline_share_percent"`
	ChatAdoptionPercent         float64 `json:"chat_adoption_percent"`
	ModelLeaderMargin           float64 `json:"model_leader_margin"`
	ConcentrationIndex          float64 `json:"concentration_index"`
	RampRateUsersPerWeek        float64 `json:"ramp_rate_users_per_week"`
	TimeToFirstValueDays        float64 `json:"time_to_first_value_days"`
	LanguageCoveragePercent     float64 `json:"language_coverage_percent"`
	EstimatedTimeSavedHours     float64 `json:"estimated_time_saved_hours"`
	ActiveUsers                 int     `json:"active_users"`
	WorkingDays                 int     `json:"working_days"`
}

// userDay collects one user's activity on one calendar day.
type userDay struct {
	day core.Day
	// combined sums interactions+generations across the day's records.
	combined int
	// maxCombined is the largest single-record interactions+generations.
	maxCombined int
	acceptances int
}

// userAccum collects the per-user facts the metric computations need.
type userAccum struct {
	login          string
	interactions   int
	generations    int
	acceptances    int
	usedChat       bool
	days           map[string]*userDay
	firstDay       core.Day
	firstAcceptDay core.Day
}

// activeDays counts the user's days with any combined activity.
func (u *userAccum) activeDays() int {
	n := 0
	for _, d := range u.days {
		if d.combined > 0 {
			n++
		}
	}
	return n
}

func accumUsers(recs []core.UsageRecord) map[string]*userAccum {
	users := make(map[string]*userAccum)
	for i := range recs {
		rec := &recs[i]
		key := fold(rec.UserLogin)
		u := users[key]
		if u == nil {
			u = &userAccum{login: rec.UserLogin, days: make(map[string]*userDay)}
			users[key] = u
		}

		u.interactions += rec.Interactions
		u.generations += rec.Generations
		u.acceptances += rec.Acceptances
		if rec.UsedChat {
			u.usedChat = true
		}

		dk := rec.Day.String()
		d := u.days[dk]
		if d == nil {
			d = &userDay{day: rec.Day}
			u.days[dk] = d
		}
		combined := rec.Combined()
		d.combined += combined
		if combined > d.maxCombined {
			d.maxCombined = combined
		}
		d.acceptances += rec.Acceptances

		if u.firstDay.IsZero() || rec.Day.Before(u.firstDay.Time) {
			u.firstDay = rec.Day
		}
		if rec.Acceptances > 0 && (u.firstAcceptDay.IsZero() || rec.Day.Before(u.firstAcceptDay.Time)) {
			u.firstAcceptDay = rec.Day
		}
	}
	return users
}

// workingDaysOf counts the Monday through Friday days between the
// earliest and latest observed day, inclusive. No records means 0.
func workingDaysOf(recs []core.UsageRecord) int {
	if len(recs) == 0 {
		return 0
	}
	first, last := recs[0].Day, recs[0].Day
	for _, rec := range recs[1:] {
		if rec.Day.Before(first.Time) {
			first = rec.Day
		}
		if rec.Day.After(last.Time) {
			last = rec.Day
		}
	}
	return countWeekdays(first.Time, last.Time)
}

// AIDEI computes the blended adoption score over the filtered view:
// 0.4 adoption + 0.4 acceptance + 0.2 licensed-vs-engaged. The reported
// usage rate is informational and carries no weight.
func (e *Engine) AIDEI(p MetricParams) AIDEIResult {
	recs := e.Filtered()
	users := accumUsers(recs)
	tlu := p.TotalLicensedUsers

	res := AIDEIResult{WorkingDays: workingDaysOf(recs)}

	// Adoption: users with any generations or interactions over seats.
	adopted := 0
	totGen, totAcc := 0, 0
	for _, u := range users {
		if u.generations > 0 || u.interactions > 0 {
			adopted++
		}
		totGen += u.generations
		totAcc += u.acceptances
	}
	res.AdoptionRate = ratio(adopted, tlu)
	res.AcceptanceRate = ratio(totAcc, totGen)

	// Engagement: a user counts once they clear the threshold with a
	// single record on enough distinct days.
	if res.WorkingDays > 0 {
		engaged := 0
		for _, u := range users {
			over := 0
			for _, d := range u.days {
				if d.maxCombined > p.EngagementThreshold {
					over++
				}
			}
			if over >= engagedDayMinimum {
				engaged++
			}
		}
		res.LicensedVsEngagedRate = ratio(engaged, tlu)
	}

	// Blended usage: each qualifying user contributes their share of
	// working days with combined activity above the qualifying floor.
	// Weekend activity can push the share past 1, so it is capped.
	if res.WorkingDays > 0 {
		var sum float64
		qualified := 0
		for _, u := range users {
			qualDays := 0
			for _, d := range u.days {
				if d.combined > minQualifyingCombined {
					qualDays++
				}
			}
			if qualDays == 0 {
				continue
			}
			share := float64(qualDays) / float64(res.WorkingDays)
			if share > 1 {
				share = 1
			}
			sum += share
			qualified++
		}
		if qualified > 0 {
			res.UsageRate = sum / float64(qualified)
		}
	}

	res.Score = aideiWeightAdoption*res.AdoptionRate +
		aideiWeightAcceptance*res.AcceptanceRate +
		aideiWeightEngagement*res.LicensedVsEngagedRate
	return res
}

// Engineering computes the extended metrics table over the filtered
// view. An empty view reports zeros except for the unused seat count.
func (e *Engine) Engineering(p MetricParams) EngineeringMetrics {
	recs := e.Filtered()
	users := accumUsers(recs)
	tlu := p.TotalLicensedUsers
	active := len(users)
	wd := workingDaysOf(recs)

	m := EngineeringMetrics{
		ActiveUsers: active,
		WorkingDays: wd,
		UnusedSeats: max(0, tlu-active),
	}
	m.LicenseUtilization = ratio(active, tlu)

	totGen, totAcc := 0, 0
	engaged := 0
	activePairs := 0
	meaningful := 0
	power := 0
	chatUsers := 0
	acceptRates := make([]float64, 0, len(users))
	userGens := make([]float64, 0, len(users))
	var firstValueDays []float64

	for _, u := range users {
		totGen += u.generations
		totAcc += u.acceptances
		acceptRates = append(acceptRates, ratio(u.acceptances, u.generations))
		userGens = append(userGens, float64(u.generations))

		over := 0
		for _, d := range u.days {
			if d.combined >= p.EngagementThreshold {
				over++
			}
		}
		if over >= engagedDayMinimum {
			engaged++
		}

		activeDays := u.activeDays()
		activePairs += activeDays
		if activeDays > 0 {
			meaningful++
		}

		if ratio(u.acceptances, u.generations) >= p.PowerUserAcceptanceThreshold &&
			activeDays >= p.PowerUserActiveDays {
			power++
		}

		if u.usedChat {
			chatUsers++
		}

		if !u.firstAcceptDay.IsZero() {
			firstValueDays = append(firstValueDays,
				u.firstAcceptDay.Sub(u.firstDay.Time).Hours()/24)
		}
	}

	m.EngagedUsersPercent = ratio(engaged, tlu)
	if denom := meaningful * wd; denom > 0 {
		m.UsageRate = float64(activePairs) / float64(denom)
		if m.UsageRate > 1 {
			m.UsageRate = 1
		}
	}
	m.MedianAcceptanceRate = median(acceptRates)
	if denom := active * wd; denom > 0 {
		m.AcceptancesPerActiveUserDay = float64(totAcc) / float64(denom)
	}
	m.PowerUsersPercent = ratio(power, active)
	m.ChatAdoptionPercent = ratio(chatUsers, active)
	m.ConcentrationIndex = gini(userGens)
	m.TimeToFirstValueDays = median(firstValueDays)
	m.EstimatedTimeSavedHours = float64(totAcc) * p.SecondsPerAcceptance / secondsPerHour

	m.InlineSharePercent = ratio(inlineGenerations(recs), totGen)
	m.ModelLeaderMargin = modelLeaderMargin(recs, ratio(totAcc, totGen))
	m.RampRateUsersPerWeek = olsSlope(weeklyActiveUsers(users))
	m.LanguageCoveragePercent = ratio(topLanguageUsers(recs), active)

	return m
}

// inlineGenerations sums the generations attributed to the
// code-completion feature across the per-feature breakdowns.
func inlineGenerations(recs []core.UsageRecord) int {
	total := 0
	for i := range recs {
		for _, b := range recs[i].ByFeature {
			if b.Feature == core.FeatureCodeCompletion {
				total += b.Generations
			}
		}
	}
	return total
}

// modelLeaderMargin is the best per-model acceptance rate over the
// model-feature breakdowns minus the overall acceptance rate. Blank
// model keys and models without generations are ignored; no usable
// model means 0.
func modelLeaderMargin(recs []core.UsageRecord, overall float64) float64 {
	type pair struct{ gens, accs int }
	byModel := make(map[string]*pair)
	for i := range recs {
		for _, b := range recs[i].ByModelFeature {
			if b.Model == "" {
				continue
			}
			pr := byModel[fold(b.Model)]
			if pr == nil {
				pr = &pair{}
				byModel[fold(b.Model)] = pr
			}
			pr.gens += b.Generations
			pr.accs += b.Acceptances
		}
	}

	best := 0.0
	found := false
	for _, pr := range byModel {
		if pr.gens <= 0 {
			continue
		}
		r := float64(pr.accs) / float64(pr.gens)
		if !found || r > best {
			best = r
			found = true
		}
	}
	if !found {
		return 0
	}
	return best - overall
}

// weeklyActiveUsers builds the Monday-anchored weekly series of distinct
// users with at least one active day, filling gap weeks with 0.
func weeklyActiveUsers(users map[string]*userAccum) []float64 {
	weeks := make(map[string]map[string]struct{})
	var firstWeek, lastWeek core.Day
	for key, u := range users {
		for _, d := range u.days {
			if d.combined <= 0 {
				continue
			}
			w := core.DayOf(weekStart(d.day.Time))
			wk := w.String()
			set := weeks[wk]
			if set == nil {
				set = make(map[string]struct{})
				weeks[wk] = set
			}
			set[key] = struct{}{}
			if firstWeek.IsZero() || w.Before(firstWeek.Time) {
				firstWeek = w
			}
			if w.After(lastWeek.Time) {
				lastWeek = w
			}
		}
	}
	if firstWeek.IsZero() {
		return nil
	}

	var series []float64
	for w := firstWeek.Time; !w.After(lastWeek.Time); w = w.AddDate(0, 0, 7) {
		series = append(series, float64(len(weeks[core.DayOf(w).String()])))
	}
	return series
}

// topLanguageUsers counts the distinct users touching the most popular
// language of the language-model breakdowns, popularity measured by
// distinct users.
func topLanguageUsers(recs []core.UsageRecord) int {
	langUsers := make(map[string]map[string]struct{})
	for i := range recs {
		for _, b := range recs[i].ByLanguageModel {
			if b.Language == "" {
				continue
			}
			lk := fold(b.Language)
			set := langUsers[lk]
			if set == nil {
				set = make(map[string]struct{})
				langUsers[lk] = set
			}
			set[fold(recs[i].UserLogin)] = struct{}{}
		}
	}

	top := 0
	for _, set := range langUsers {
		if len(set) > top {
			top = len(set)
		}
	}
	return top
}
