package analytics

import (
	"testing"

	"aipulse/internal/core"
)

func defaultParams() MetricParams {
	return MetricParams{
		TotalLicensedUsers:           2,
		SecondsPerAcceptance:         45,
		EngagementThreshold:          5,
		PowerUserAcceptanceThreshold: 0.5,
		PowerUserActiveDays:          2,
	}
}

func TestAIDEI_SingleUserScenario(t *testing.T) {
	// One licensed seat of two in use: two records on consecutive
	// weekdays totalling 10 generations and 8 acceptances.
	e := loadedEngine(t,
		testRec(t, "2025-06-02", "alice", 2, 6, 5),
		testRec(t, "2025-06-03", "alice", 1, 4, 3),
	)

	res := e.AIDEI(defaultParams())

	if !almostEqual(res.AdoptionRate, 0.5) {
		t.Errorf("AdoptionRate = %v, want 0.5", res.AdoptionRate)
	}
	if !almostEqual(res.AcceptanceRate, 0.8) {
		t.Errorf("AcceptanceRate = %v, want 0.8", res.AcceptanceRate)
	}
	if res.WorkingDays != 2 {
		t.Errorf("WorkingDays = %d, want 2", res.WorkingDays)
	}
	// Day one clears the engagement threshold with a single record
	// (2+6 > 5) but day two does not (1+4 = 5), so alice is one
	// qualifying day short.
	if res.LicensedVsEngagedRate != 0 {
		t.Errorf("LicensedVsEngagedRate = %v, want 0", res.LicensedVsEngagedRate)
	}
	// Both days exceed the usage floor of 3, giving 2 of 2 working days.
	if !almostEqual(res.UsageRate, 1.0) {
		t.Errorf("UsageRate = %v, want 1.0", res.UsageRate)
	}
	if !almostEqual(res.Score, 0.4*0.5+0.4*0.8) {
		t.Errorf("Score = %v, want 0.52", res.Score)
	}
}

func TestAIDEI_ScoreWeighting(t *testing.T) {
	datasets := [][]core.UsageRecord{
		{
			testRec(t, "2025-06-02", "a", 10, 20, 15),
			testRec(t, "2025-06-03", "a", 10, 20, 10),
			testRec(t, "2025-06-04", "b", 0, 4, 1),
		},
		{
			testRec(t, "2025-06-02", "a", 0, 0, 0),
		},
		{
			testRec(t, "2025-06-02", "a", 9, 9, 9),
			testRec(t, "2025-06-09", "a", 9, 9, 9),
			testRec(t, "2025-06-10", "b", 1, 0, 0),
		},
	}

	for i, recs := range datasets {
		e := loadedEngine(t, recs...)
		res := e.AIDEI(defaultParams())
		expected := 0.4*res.AdoptionRate + 0.4*res.AcceptanceRate + 0.2*res.LicensedVsEngagedRate
		if res.Score != expected {
			t.Errorf("dataset %d: Score = %v, want exactly %v", i, res.Score, expected)
		}
	}
}

func TestAIDEI_EngagedUser(t *testing.T) {
	// Two weekdays, each with a single record clearly above the
	// threshold, makes the user engaged.
	e := loadedEngine(t,
		testRec(t, "2025-06-02", "alice", 5, 6, 2),
		testRec(t, "2025-06-03", "alice", 4, 8, 3),
	)

	res := e.AIDEI(defaultParams())
	if !almostEqual(res.LicensedVsEngagedRate, 0.5) {
		t.Errorf("LicensedVsEngagedRate = %v, want 0.5 (1 of 2 seats)", res.LicensedVsEngagedRate)
	}
}

func TestAIDEI_Empty(t *testing.T) {
	e := New(nil)

	params := defaultParams()
	params.TotalLicensedUsers = 100
	res := e.AIDEI(params)

	if res.Score != 0 || res.AdoptionRate != 0 || res.AcceptanceRate != 0 ||
		res.LicensedVsEngagedRate != 0 || res.UsageRate != 0 || res.WorkingDays != 0 {
		t.Errorf("AIDEI on empty dataset = %+v, want all zeros", res)
	}
}

func TestAIDEI_NoLicenseInformation(t *testing.T) {
	e := loadedEngine(t, testRec(t, "2025-06-02", "alice", 2, 6, 5))

	params := defaultParams()
	params.TotalLicensedUsers = 0
	res := e.AIDEI(params)

	if res.AdoptionRate != 0 || res.LicensedVsEngagedRate != 0 {
		t.Errorf("seat-based rates = %v/%v, want 0/0 without seats", res.AdoptionRate, res.LicensedVsEngagedRate)
	}
	// Acceptance does not depend on seats.
	if !almostEqual(res.AcceptanceRate, 5.0/6.0) {
		t.Errorf("AcceptanceRate = %v, want 5/6", res.AcceptanceRate)
	}
}

func TestAIDEI_RatesWithinUnitInterval(t *testing.T) {
	e := loadedEngine(t,
		testRec(t, "2025-06-06", "a", 50, 40, 30),
		testRec(t, "2025-06-07", "a", 50, 40, 30), // Saturday activity
		testRec(t, "2025-06-08", "a", 50, 40, 30), // Sunday activity
		testRec(t, "2025-06-09", "b", 10, 10, 10),
	)

	params := defaultParams()
	res := e.AIDEI(params)

	rates := map[string]float64{
		"score":               res.Score,
		"adoption":            res.AdoptionRate,
		"acceptance":          res.AcceptanceRate,
		"licensed vs engaged": res.LicensedVsEngagedRate,
		"usage":               res.UsageRate,
	}
	for name, r := range rates {
		if r < 0 || r > 1 {
			t.Errorf("%s rate = %v, want within [0, 1]", name, r)
		}
	}
}

func TestEngineering_EngagementVariantDiffersFromAIDEI(t *testing.T) {
	// Each day splits activity across two records of 6 combined. The
	// summed variant (6+6 = 12 >= 10) qualifies, the single-record
	// variant (max 6 > 10) does not.
	e := loadedEngine(t,
		testRec(t, "2025-06-02", "alice", 3, 3, 1),
		testRec(t, "2025-06-02", "alice", 3, 3, 1),
		testRec(t, "2025-06-03", "alice", 3, 3, 1),
		testRec(t, "2025-06-03", "alice", 3, 3, 1),
	)

	params := defaultParams()
	params.EngagementThreshold = 10

	if got := e.AIDEI(params).LicensedVsEngagedRate; got != 0 {
		t.Errorf("single-record variant = %v, want 0", got)
	}
	if got := e.Engineering(params).EngagedUsersPercent; !almostEqual(got, 0.5) {
		t.Errorf("summed variant = %v, want 0.5 (1 of 2 seats)", got)
	}
}

func TestEngineering_SeatMetrics(t *testing.T) {
	e := loadedEngine(t,
		testRec(t, "2025-06-02", "a", 1, 2, 1),
		testRec(t, "2025-06-02", "b", 1, 2, 1),
	)

	params := defaultParams()
	params.TotalLicensedUsers = 8
	m := e.Engineering(params)

	if m.ActiveUsers != 2 {
		t.Errorf("ActiveUsers = %d, want 2", m.ActiveUsers)
	}
	if !almostEqual(m.LicenseUtilization, 0.25) {
		t.Errorf("LicenseUtilization = %v, want 0.25", m.LicenseUtilization)
	}
	if m.UnusedSeats != 6 {
		t.Errorf("UnusedSeats = %d, want 6", m.UnusedSeats)
	}
}

func TestEngineering_UnusedSeatsNeverNegative(t *testing.T) {
	e := loadedEngine(t,
		testRec(t, "2025-06-02", "a", 1, 2, 1),
		testRec(t, "2025-06-02", "b", 1, 2, 1),
		testRec(t, "2025-06-02", "c", 1, 2, 1),
	)

	params := defaultParams()
	params.TotalLicensedUsers = 2
	if m := e.Engineering(params); m.UnusedSeats != 0 {
		t.Errorf("UnusedSeats = %d, want 0 when usage exceeds seats", m.UnusedSeats)
	}
}

func TestEngineering_MedianAcceptanceRate(t *testing.T) {
	e := loadedEngine(t,
		testRec(t, "2025-06-02", "a", 0, 10, 8),
		testRec(t, "2025-06-02", "b", 0, 10, 4),
		testRec(t, "2025-06-02", "c", 0, 0, 0), // zero generations counts as rate 0
	)

	m := e.Engineering(defaultParams())
	if !almostEqual(m.MedianAcceptanceRate, 0.4) {
		t.Errorf("MedianAcceptanceRate = %v, want 0.4", m.MedianAcceptanceRate)
	}
}

func TestEngineering_UsageAndPerDayMetrics(t *testing.T) {
	// Week of 2025-06-02: alice active Mon-Wed, bob active Mon.
	e := loadedEngine(t,
		testRec(t, "2025-06-02", "alice", 2, 4, 3),
		testRec(t, "2025-06-03", "alice", 2, 4, 3),
		testRec(t, "2025-06-04", "alice", 2, 4, 2),
		testRec(t, "2025-06-02", "bob", 1, 1, 0),
	)

	m := e.Engineering(defaultParams())

	// Span 06-02..06-04 covers 3 working days; 4 active user-days over
	// 2 users * 3 days.
	if m.WorkingDays != 3 {
		t.Fatalf("WorkingDays = %d, want 3", m.WorkingDays)
	}
	if !almostEqual(m.UsageRate, 4.0/6.0) {
		t.Errorf("UsageRate = %v, want 4/6", m.UsageRate)
	}
	// 8 acceptances over 2 active users * 3 working days.
	if !almostEqual(m.AcceptancesPerActiveUserDay, 8.0/6.0) {
		t.Errorf("AcceptancesPerActiveUserDay = %v, want 8/6", m.AcceptancesPerActiveUserDay)
	}
}

func TestEngineering_UsageRateCapped(t *testing.T) {
	// Saturday and Sunday activity within a single-weekday span pushes
	// raw active pairs past the working-day budget.
	e := loadedEngine(t,
		testRec(t, "2025-06-06", "a", 5, 5, 1),
		testRec(t, "2025-06-07", "a", 5, 5, 1),
		testRec(t, "2025-06-08", "a", 5, 5, 1),
		testRec(t, "2025-06-09", "a", 5, 5, 1),
	)

	m := e.Engineering(defaultParams())
	if m.UsageRate > 1 {
		t.Errorf("UsageRate = %v, want capped at 1", m.UsageRate)
	}
}

func TestEngineering_PowerUsers(t *testing.T) {
	e := loadedEngine(t,
		// alice: rate 0.8 over 2 active days -> power user.
		testRec(t, "2025-06-02", "alice", 0, 5, 4),
		testRec(t, "2025-06-03", "alice", 0, 5, 4),
		// bob: high rate but a single active day.
		testRec(t, "2025-06-02", "bob", 0, 10, 9),
		// carol: enough days but a 0.2 rate.
		testRec(t, "2025-06-02", "carol", 0, 5, 1),
		testRec(t, "2025-06-03", "carol", 0, 5, 1),
	)

	m := e.Engineering(defaultParams())
	if !almostEqual(m.PowerUsersPercent, 1.0/3.0) {
		t.Errorf("PowerUsersPercent = %v, want 1/3", m.PowerUsersPercent)
	}
}

func TestEngineering_InlineShareAndChatAdoption(t *testing.T) {
	r1 := testRec(t, "2025-06-02", "a", 0, 30, 0)
	r1.UsedChat = true
	r1.ByFeature = []core.BreakdownEntry{
		{Feature: core.FeatureCodeCompletion, Generations: 25},
		{Feature: core.FeatureInlineChat, Generations: 5},
	}
	r2 := testRec(t, "2025-06-02", "b", 0, 10, 0)

	e := loadedEngine(t, r1, r2)
	m := e.Engineering(defaultParams())

	if !almostEqual(m.InlineSharePercent, 25.0/40.0) {
		t.Errorf("InlineSharePercent = %v, want 25/40", m.InlineSharePercent)
	}
	if !almostEqual(m.ChatAdoptionPercent, 0.5) {
		t.Errorf("ChatAdoptionPercent = %v, want 0.5", m.ChatAdoptionPercent)
	}
}

func TestEngineering_ModelLeaderMargin(t *testing.T) {
	r := testRec(t, "2025-06-02", "a", 0, 20, 14)
	r.ByModelFeature = []core.BreakdownEntry{
		{Model: "m1", Feature: "code_completion", Generations: 10, Acceptances: 9},
		{Model: "m2", Feature: "code_completion", Generations: 10, Acceptances: 5},
		{Model: "", Feature: "code_completion", Generations: 100, Acceptances: 100},
	}

	e := loadedEngine(t, r)
	m := e.Engineering(defaultParams())

	// Leader m1 at 0.9 against the overall 14/20.
	if !almostEqual(m.ModelLeaderMargin, 0.9-0.7) {
		t.Errorf("ModelLeaderMargin = %v, want 0.2", m.ModelLeaderMargin)
	}
}

func TestEngineering_ModelLeaderMarginNoModels(t *testing.T) {
	e := loadedEngine(t, testRec(t, "2025-06-02", "a", 0, 20, 14))
	if m := e.Engineering(defaultParams()); m.ModelLeaderMargin != 0 {
		t.Errorf("ModelLeaderMargin = %v, want 0 without model breakdowns", m.ModelLeaderMargin)
	}
}

func TestEngineering_ConcentrationIndex(t *testing.T) {
	e := loadedEngine(t,
		testRec(t, "2025-06-02", "a", 0, 10, 0),
		testRec(t, "2025-06-02", "b", 5, 0, 0),
	)

	m := e.Engineering(defaultParams())
	// One of two users holds all generations.
	if !almostEqual(m.ConcentrationIndex, 0.5) {
		t.Errorf("ConcentrationIndex = %v, want 0.5", m.ConcentrationIndex)
	}
}

func TestEngineering_RampRate(t *testing.T) {
	// Week one: alice. Week two: alice, bob and carol.
	e := loadedEngine(t,
		testRec(t, "2025-06-02", "alice", 1, 1, 0),
		testRec(t, "2025-06-09", "alice", 1, 1, 0),
		testRec(t, "2025-06-10", "bob", 1, 1, 0),
		testRec(t, "2025-06-11", "carol", 1, 1, 0),
	)

	m := e.Engineering(defaultParams())
	if !almostEqual(m.RampRateUsersPerWeek, 2.0) {
		t.Errorf("RampRateUsersPerWeek = %v, want 2.0", m.RampRateUsersPerWeek)
	}
}

func TestEngineering_RampRateFillsGapWeeks(t *testing.T) {
	// Active in the weeks of 06-02 and 06-16 with nothing in between:
	// the series is 1, 0, 1 and its slope is 0.
	e := loadedEngine(t,
		testRec(t, "2025-06-02", "alice", 1, 1, 0),
		testRec(t, "2025-06-16", "alice", 1, 1, 0),
	)

	m := e.Engineering(defaultParams())
	if !almostEqual(m.RampRateUsersPerWeek, 0) {
		t.Errorf("RampRateUsersPerWeek = %v, want 0 over a symmetric gap", m.RampRateUsersPerWeek)
	}
}

func TestEngineering_TimeToFirstValue(t *testing.T) {
	e := loadedEngine(t,
		// alice: first record 06-02, first acceptance 06-04.
		testRec(t, "2025-06-02", "alice", 1, 5, 0),
		testRec(t, "2025-06-04", "alice", 1, 5, 2),
		// bob accepts on his first day.
		testRec(t, "2025-06-02", "bob", 1, 5, 3),
		// carol never accepts and is excluded.
		testRec(t, "2025-06-02", "carol", 1, 5, 0),
	)

	m := e.Engineering(defaultParams())
	if !almostEqual(m.TimeToFirstValueDays, 1.0) {
		t.Errorf("TimeToFirstValueDays = %v, want median(2, 0) = 1", m.TimeToFirstValueDays)
	}
}

func TestEngineering_LanguageCoverage(t *testing.T) {
	r1 := testRec(t, "2025-06-02", "a", 0, 1, 0)
	r1.ByLanguageModel = []core.BreakdownEntry{
		{Language: "go", Model: "gpt-4o", Generations: 1},
		{Language: "python", Model: "gpt-4o", Generations: 1},
	}
	r2 := testRec(t, "2025-06-02", "b", 0, 1, 0)
	r2.ByLanguageModel = []core.BreakdownEntry{
		{Language: "go", Model: "gpt-4o", Generations: 1},
	}
	r3 := testRec(t, "2025-06-02", "c", 0, 1, 0)

	e := loadedEngine(t, r1, r2, r3)
	m := e.Engineering(defaultParams())

	// go touches 2 of 3 active users.
	if !almostEqual(m.LanguageCoveragePercent, 2.0/3.0) {
		t.Errorf("LanguageCoveragePercent = %v, want 2/3", m.LanguageCoveragePercent)
	}
}

func TestEngineering_EstimatedTimeSaved(t *testing.T) {
	e := loadedEngine(t, testRec(t, "2025-06-02", "a", 0, 10, 8))

	m := e.Engineering(defaultParams())
	// 8 acceptances * 45 seconds = 360 seconds = 0.1 hours.
	if !almostEqual(m.EstimatedTimeSavedHours, 0.1) {
		t.Errorf("EstimatedTimeSavedHours = %v, want 0.1", m.EstimatedTimeSavedHours)
	}
}

func TestEngineering_Empty(t *testing.T) {
	e := New(nil)

	params := defaultParams()
	params.TotalLicensedUsers = 100
	m := e.Engineering(params)

	if m.UnusedSeats != 100 {
		t.Errorf("UnusedSeats = %d, want 100", m.UnusedSeats)
	}
	if m.ActiveUsers != 0 || m.WorkingDays != 0 {
		t.Errorf("ActiveUsers/WorkingDays = %d/%d, want 0/0", m.ActiveUsers, m.WorkingDays)
	}
	if m.LicenseUtilization != 0 || m.UsageRate != 0 || m.MedianAcceptanceRate != 0 ||
		m.EngagedUsersPercent != 0 || m.PowerUsersPercent != 0 || m.InlineSharePercent != 0 ||
		m.ChatAdoptionPercent != 0 || m.ModelLeaderMargin != 0 || m.ConcentrationIndex != 0 ||
		m.RampRateUsersPerWeek != 0 || m.TimeToFirstValueDays != 0 ||
		m.LanguageCoveragePercent != 0 || m.EstimatedTimeSavedHours != 0 ||
		m.AcceptancesPerActiveUserDay != 0 {
		t.Errorf("empty dataset metrics = %+v, want zeros", m)
	}
}

func TestMetricParams_PerCallOverrides(t *testing.T) {
	e := loadedEngine(t, testRec(t, "2025-06-02", "a", 0, 10, 8))

	low := e.Engineering(MetricParams{TotalLicensedUsers: 1, SecondsPerAcceptance: 10})
	high := e.Engineering(MetricParams{TotalLicensedUsers: 1, SecondsPerAcceptance: 100})

	if !almostEqual(low.EstimatedTimeSavedHours*10, high.EstimatedTimeSavedHours) {
		t.Errorf("per-call params not honored: %v vs %v", low.EstimatedTimeSavedHours, high.EstimatedTimeSavedHours)
	}
}
