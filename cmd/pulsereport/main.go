// pulsereport renders adoption and efficiency reports from an NDJSON
// usage export without running the HTTP server.
package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/guptarohit/asciigraph"

	"aipulse/internal/analytics"
	"aipulse/internal/core"
	"aipulse/internal/displayname"
	"aipulse/internal/export"
	"aipulse/internal/ingest"
	"aipulse/internal/version"
)

// Report bundles every section the CLI prints or encodes as JSON.
type Report struct {
	GeneratedAt         string                       `json:"generated_at"`
	Input               string                       `json:"input"`
	Records             int                          `json:"records"`
	Skipped             int                          `json:"skipped"`
	FilteredRecords     int                          `json:"filtered_records"`
	Criteria            analytics.Criteria           `json:"criteria,omitzero"`
	Totals              analytics.Totals             `json:"totals"`
	Adoption            analytics.AdoptionStats      `json:"adoption"`
	AIDEI               analytics.AIDEIResult        `json:"aidei"`
	Engineering         analytics.EngineeringMetrics `json:"engineering"`
	EstimatedValueSaved float64                      `json:"estimated_value_saved"`
	TimeSeries          []analytics.DayTotals        `json:"time_series"`
	TopUsers            []analytics.UserTotals       `json:"top_users"`
	FeatureMix          []analytics.MixEntry         `json:"feature_mix"`
	ModelMix            []analytics.MixEntry         `json:"model_mix"`
}

func main() {
	inputPath := flag.String("input", "", "Path to NDJSON usage export (.gz and .br decompressed by extension)")
	namesPath := flag.String("names", "", "Path to a display name vocabulary YAML (optional)")
	from := flag.String("from", "", "Keep records on or after this day (YYYY-MM-DD)")
	to := flag.String("to", "", "Keep records on or before this day (YYYY-MM-DD)")
	users := flag.String("users", "", "Comma-separated user logins to keep")
	features := flag.String("features", "", "Comma-separated feature keys to keep")
	models := flag.String("models", "", "Comma-separated model keys to keep")
	licensedUsers := flag.Int("licensed-users", 0, "Licensed seat count for utilization metrics")
	secondsPerAcceptance := flag.Float64("seconds-per-acceptance", 45, "Seconds of work saved per accepted suggestion")
	engagementThreshold := flag.Int("engagement-threshold", 5, "Combined daily activity a user must exceed to count as engaged")
	powerUserAcceptance := flag.Float64("power-user-acceptance", 0.3, "Minimum acceptance rate for the power user metric")
	powerUserDays := flag.Int("power-user-days", 5, "Minimum active days for the power user metric")
	costPerHour := flag.Float64("cost-per-hour", 0, "Hourly cost used to price estimated saved time")
	topUsers := flag.Int("top", analytics.DefaultTopUsers, "Top users to show by generations")
	jsonOutput := flag.Bool("json", false, "Emit JSON output")
	csvOut := flag.String("csv-out", "", "Write CSV summaries using this path prefix or directory")
	chart := flag.Bool("chart", false, "Plot daily generations as an ASCII chart")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}
	if strings.TrimSpace(*inputPath) == "" {
		fmt.Fprintln(os.Stderr, "missing required -input path")
		flag.Usage()
		os.Exit(1)
	}

	names, err := loadNames(*namesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load display names: %v\n", err)
		os.Exit(1)
	}

	engine := analytics.New(names)
	res, err := loadRecords(engine, *inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load records: %v\n", err)
		os.Exit(1)
	}

	criteria, err := buildCriteria(*from, *to, *users, *features, *models)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid filter: %v\n", err)
		os.Exit(1)
	}
	engine.SetCriteria(criteria)

	params := analytics.MetricParams{
		TotalLicensedUsers:           *licensedUsers,
		SecondsPerAcceptance:         *secondsPerAcceptance,
		EngagementThreshold:          *engagementThreshold,
		PowerUserAcceptanceThreshold: *powerUserAcceptance,
		PowerUserActiveDays:          *powerUserDays,
	}
	report := buildReport(engine, res, *inputPath, criteria, params, *costPerHour, *topUsers)

	if strings.TrimSpace(*csvOut) != "" {
		opts := export.Options{Params: params, CostPerHour: *costPerHour, TopUsers: *topUsers}
		if err := export.WriteFiles(*csvOut, engine, opts); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write csv output: %v\n", err)
			os.Exit(1)
		}
	}
	if *jsonOutput {
		payload, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode json: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(payload))
		return
	}

	printReport(report, *chart)
}

func loadNames(path string) (displayname.Resolver, error) {
	if strings.TrimSpace(path) == "" {
		return displayname.Default(), nil
	}
	return displayname.LoadFile(path)
}

// loadRecords streams the export into the engine, decompressing .gz and
// .br files by extension. Parse progress goes to stderr so stdout stays
// clean for the report.
func loadRecords(engine *analytics.Engine, path string) (ingest.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return ingest.Result{}, err
	}
	defer file.Close()

	var reader io.Reader = file
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(file)
		if err != nil {
			return ingest.Result{}, fmt.Errorf("open gzip stream: %w", err)
		}
		defer zr.Close()
		reader = zr
	case ".br":
		reader = brotli.NewReader(file)
	}

	progress := func(p ingest.Progress) {
		if p.Done {
			return
		}
		fmt.Fprintf(os.Stderr, "parsed %d records (~%d bytes)\r", p.Records, p.EstimatedBytes)
	}
	res, err := engine.Ingest(context.Background(), reader, progress)
	if err != nil {
		return res, err
	}
	fmt.Fprintf(os.Stderr, "parsed %d records, skipped %d lines (%d bytes)\n", res.Records, res.Skipped, res.Bytes)
	return res, nil
}

func buildCriteria(from, to, users, features, models string) (analytics.Criteria, error) {
	var criteria analytics.Criteria
	if strings.TrimSpace(from) != "" {
		day, err := core.ParseDay(from)
		if err != nil {
			return analytics.Criteria{}, fmt.Errorf("-from: %w", err)
		}
		criteria.From = day
	}
	if strings.TrimSpace(to) != "" {
		day, err := core.ParseDay(to)
		if err != nil {
			return analytics.Criteria{}, fmt.Errorf("-to: %w", err)
		}
		criteria.To = day
	}
	criteria.Users = splitList(users)
	criteria.Features = splitList(features)
	criteria.Models = splitList(models)
	return criteria, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func buildReport(engine *analytics.Engine, res ingest.Result, input string, criteria analytics.Criteria, params analytics.MetricParams, costPerHour float64, top int) Report {
	em := engine.Engineering(params)
	return Report{
		GeneratedAt:         time.Now().UTC().Format(time.RFC3339),
		Input:               input,
		Records:             res.Records,
		Skipped:             res.Skipped,
		FilteredRecords:     len(engine.Filtered()),
		Criteria:            criteria,
		Totals:              engine.AggregateTotals(),
		Adoption:            engine.Adoption(),
		AIDEI:               engine.AIDEI(params),
		Engineering:         em,
		EstimatedValueSaved: em.EstimatedTimeSavedHours * costPerHour,
		TimeSeries:          engine.TimeSeries(),
		TopUsers:            engine.TopUsers(top),
		FeatureMix:          engine.FeatureMix(),
		ModelMix:            engine.ModelMix(),
	}
}

func printReport(report Report, chart bool) {
	fmt.Printf("aipulse usage report\n")
	fmt.Printf("Generated: %s\n", report.GeneratedAt)
	fmt.Printf("Input: %s\n", report.Input)
	fmt.Printf("Records: %d (skipped %d)\n", report.Records, report.Skipped)
	if !report.Criteria.IsZero() {
		fmt.Printf("Filter: %s | Matching: %d\n", describeCriteria(report.Criteria), report.FilteredRecords)
	}
	fmt.Println()

	fmt.Println("Totals")
	fmt.Printf("- Interactions: %d | Generations: %d | Acceptances: %d\n",
		report.Totals.Interactions, report.Totals.Generations, report.Totals.Acceptances)
	fmt.Printf("  Generated LOC: %d | Accepted LOC: %d | Acceptance Rate: %.1f%%\n",
		report.Totals.GeneratedLOC, report.Totals.AcceptedLOC, pct(report.Totals.AcceptanceRate))

	fmt.Println()
	fmt.Println("Adoption")
	fmt.Printf("- Active Users: %d | Chat Records: %d | Inline Chat: %d | Code Completion: %d\n",
		report.Adoption.ActiveUsers, report.Adoption.ChatRecords,
		report.Adoption.InlineChatRecords, report.Adoption.CodeCompletionRecords)

	fmt.Println()
	fmt.Println("AIDEI")
	fmt.Printf("- Score: %.3f | Working Days: %d\n", report.AIDEI.Score, report.AIDEI.WorkingDays)
	fmt.Printf("  Adoption: %.1f%% | Acceptance: %.1f%% | Licensed vs Engaged: %.1f%% | Usage: %.1f%%\n",
		pct(report.AIDEI.AdoptionRate), pct(report.AIDEI.AcceptanceRate),
		pct(report.AIDEI.LicensedVsEngagedRate), pct(report.AIDEI.UsageRate))

	em := report.Engineering
	fmt.Println()
	fmt.Println("Engineering Metrics")
	fmt.Printf("- Active Users: %d | Working Days: %d\n", em.ActiveUsers, em.WorkingDays)
	fmt.Printf("  License Utilization: %.1f%% | Unused Seats: %d | Engaged Users: %.1f%%\n",
		pct(em.LicenseUtilization), em.UnusedSeats, pct(em.EngagedUsersPercent))
	fmt.Printf("  Usage Rate: %.1f%% | Median Acceptance: %.1f%% | Acceptances per Active User per Day: %.2f\n",
		pct(em.UsageRate), pct(em.MedianAcceptanceRate), em.AcceptancesPerActiveUserDay)
	fmt.Printf("  Power Users: %.1f%% | Inline Share: %.1f%% | Chat Adoption: %.1f%%\n",
		pct(em.PowerUsersPercent), pct(em.InlineSharePercent), pct(em.ChatAdoptionPercent))
	fmt.Printf("  Model Leader Margin: %.3f | Concentration Index: %.3f | Language Coverage: %.1f%%\n",
		em.ModelLeaderMargin, em.ConcentrationIndex, pct(em.LanguageCoveragePercent))
	fmt.Printf("  Ramp Rate: %.2f users/week | Time to First Value: %.2f days\n",
		em.RampRateUsersPerWeek, em.TimeToFirstValueDays)
	fmt.Printf("  Estimated Time Saved: %.1f hours", em.EstimatedTimeSavedHours)
	if report.EstimatedValueSaved > 0 {
		fmt.Printf(" | Estimated Value Saved: %.2f", report.EstimatedValueSaved)
	}
	fmt.Println()

	if len(report.TopUsers) > 0 {
		fmt.Println()
		fmt.Printf("Top Users (Top %d by Generations)\n", len(report.TopUsers))
		for _, user := range report.TopUsers {
			fmt.Printf("- %s | Generations: %d | Acceptances: %d\n",
				user.Login, user.Generations, user.Acceptances)
		}
	}

	printMix("Feature Mix", report.FeatureMix)
	printMix("Model Mix", report.ModelMix)

	if chart {
		printChart(report.TimeSeries)
	}
}

func describeCriteria(criteria analytics.Criteria) string {
	var parts []string
	if !criteria.From.IsZero() {
		parts = append(parts, "from "+criteria.From.String())
	}
	if !criteria.To.IsZero() {
		parts = append(parts, "to "+criteria.To.String())
	}
	if len(criteria.Users) > 0 {
		parts = append(parts, "users "+strings.Join(criteria.Users, ","))
	}
	if len(criteria.Features) > 0 {
		parts = append(parts, "features "+strings.Join(criteria.Features, ","))
	}
	if len(criteria.Models) > 0 {
		parts = append(parts, "models "+strings.Join(criteria.Models, ","))
	}
	return strings.Join(parts, " | ")
}

func printMix(title string, entries []analytics.MixEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(title)
	for _, entry := range entries {
		fmt.Printf("- %s: %d\n", entry.Key, entry.Generations)
	}
}

func printChart(series []analytics.DayTotals) {
	if len(series) == 0 {
		return
	}
	data := make([]float64, len(series))
	for i, dt := range series {
		data[i] = float64(dt.Generations)
	}
	caption := fmt.Sprintf("Daily generations, %s to %s", series[0].Day, series[len(series)-1].Day)

	fmt.Println()
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Caption(caption),
	))
}

func pct(rate float64) float64 {
	return rate * 100
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\nInput is newline-delimited JSON, one usage record per line; .gz and .br files are decompressed by extension\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Date flags accept YYYY-MM-DD\n")
	}
}
