// Package export renders the report surface as CSV, either as a single
// sectioned document for download or as per-section files for the
// command line tools.
package export

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"aipulse/internal/analytics"
)

// Options carries the report knobs an export run uses.
type Options struct {
	// Params feeds the score and extended metric computations.
	Params analytics.MetricParams
	// CostPerHour prices estimated saved time. Zero leaves the value
	// row at 0.
	CostPerHour float64
	// TopUsers caps the user ranking. Zero or negative selects the
	// engine default.
	TopUsers int
}

type section struct {
	name  string
	write func(*csv.Writer) error
}

func sections(eng *analytics.Engine, opts Options) []section {
	return []section{
		{"daily_totals", func(cw *csv.Writer) error { return timeSeriesRows(cw, eng.TimeSeries()) }},
		{"top_users", func(cw *csv.Writer) error { return topUsersRows(cw, eng.TopUsers(opts.TopUsers)) }},
		{"feature_mix", func(cw *csv.Writer) error { return mixRows(cw, "feature", eng.FeatureMix()) }},
		{"model_mix", func(cw *csv.Writer) error { return mixRows(cw, "model", eng.ModelMix()) }},
		{"summary", func(cw *csv.Writer) error { return summaryRows(cw, eng, opts) }},
	}
}

// WriteSummary streams every report section into one CSV document.
// Each section opens with a "# name" marker row, and sections are
// separated by a blank row so spreadsheet imports keep them apart.
func WriteSummary(w io.Writer, eng *analytics.Engine, opts Options) error {
	cw := csv.NewWriter(w)

	for i, s := range sections(eng, opts) {
		if i > 0 {
			if err := cw.Write([]string{""}); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{"# " + s.name}); err != nil {
			return err
		}
		if err := s.write(cw); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFiles writes each report section to its own CSV file. output
// names either an existing directory or a path prefix; a trailing .csv
// is dropped from a prefix.
func WriteFiles(output string, eng *analytics.Engine, opts Options) error {
	base, err := resolveBase(output)
	if err != nil {
		return err
	}

	for _, s := range sections(eng, opts) {
		path := base + "-" + strings.ReplaceAll(s.name, "_", "-") + ".csv"
		if err := writeFile(path, s.write); err != nil {
			return err
		}
	}
	return nil
}

func resolveBase(output string) (string, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return "", errors.New("csv output path is empty")
	}
	info, err := os.Stat(output)
	if err == nil && info.IsDir() {
		return filepath.Join(output, "aipulse"), nil
	}
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	return strings.TrimSuffix(output, ".csv"), nil
}

func writeFile(path string, write func(*csv.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := write(cw); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func timeSeriesRows(cw *csv.Writer, series []analytics.DayTotals) error {
	if err := cw.Write([]string{"day", "interactions", "generations", "acceptances"}); err != nil {
		return err
	}
	for _, dt := range series {
		record := []string{
			dt.Day.String(),
			strconv.Itoa(dt.Interactions),
			strconv.Itoa(dt.Generations),
			strconv.Itoa(dt.Acceptances),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func topUsersRows(cw *csv.Writer, users []analytics.UserTotals) error {
	if err := cw.Write([]string{"login", "generations", "acceptances"}); err != nil {
		return err
	}
	for _, ut := range users {
		record := []string{
			ut.Login,
			strconv.Itoa(ut.Generations),
			strconv.Itoa(ut.Acceptances),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func mixRows(cw *csv.Writer, keyHeader string, entries []analytics.MixEntry) error {
	if err := cw.Write([]string{keyHeader, "generations"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Key, strconv.Itoa(e.Generations)}); err != nil {
			return err
		}
	}
	return nil
}

func summaryRows(cw *csv.Writer, eng *analytics.Engine, opts Options) error {
	totals := eng.AggregateTotals()
	aidei := eng.AIDEI(opts.Params)
	em := eng.Engineering(opts.Params)

	rows := [][]string{
		{"metric", "value"},
		{"active_users", strconv.Itoa(em.ActiveUsers)},
		{"working_days", strconv.Itoa(em.WorkingDays)},
		{"total_interactions", strconv.Itoa(totals.Interactions)},
		{"total_generations", strconv.Itoa(totals.Generations)},
		{"total_acceptances", strconv.Itoa(totals.Acceptances)},
		{"total_generated_loc", strconv.Itoa(totals.GeneratedLOC)},
		{"total_accepted_loc", strconv.Itoa(totals.AcceptedLOC)},
		{"acceptance_rate", formatFloat(totals.AcceptanceRate, 4)},
		{"aidei_score", formatFloat(aidei.Score, 4)},
		{"aidei_adoption_rate", formatFloat(aidei.AdoptionRate, 4)},
		{"aidei_acceptance_rate", formatFloat(aidei.AcceptanceRate, 4)},
		{"aidei_licensed_vs_engaged_rate", formatFloat(aidei.LicensedVsEngagedRate, 4)},
		{"aidei_usage_rate", formatFloat(aidei.UsageRate, 4)},
		{"license_utilization", formatFloat(em.LicenseUtilization, 4)},
		{"unused_seats", strconv.Itoa(em.UnusedSeats)},
		{"engaged_users_percent", formatFloat(em.EngagedUsersPercent, 4)},
		{"usage_rate", formatFloat(em.UsageRate, 4)},
		{"median_acceptance_rate", formatFloat(em.MedianAcceptanceRate, 4)},
		{"acceptances_per_active_user_per_day", formatFloat(em.AcceptancesPerActiveUserDay, 4)},
		{"power_users_percent", formatFloat(em.PowerUsersPercent, 4)},
		{"inline_share_percent", formatFloat(em.InlineSharePercent, 4)},
		{"chat_adoption_percent", formatFloat(em.ChatAdoptionPercent, 4)},
		{"model_leader_margin", formatFloat(em.ModelLeaderMargin, 4)},
		{"concentration_index", formatFloat(em.ConcentrationIndex, 4)},
		{"ramp_rate_users_per_week", formatFloat(em.RampRateUsersPerWeek, 2)},
		{"time_to_first_value_days", formatFloat(em.TimeToFirstValueDays, 2)},
		{"language_coverage_percent", formatFloat(em.LanguageCoveragePercent, 4)},
		{"estimated_time_saved_hours", formatFloat(em.EstimatedTimeSavedHours, 2)},
		{"estimated_value_saved", formatFloat(em.EstimatedTimeSavedHours*opts.CostPerHour, 2)},
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
