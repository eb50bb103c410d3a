package services

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/tastetrail/tastetrail-api/internal/catalog"
	"github.com/tastetrail/tastetrail-api/internal/models"
)

// Report status values
const (
	ReportStatusOK     = "ok"
	ReportStatusNoData = "no_data"
)

// MacroTotals accumulates portion-scaled nutrition values.
type MacroTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DailyBreakdown is the consumption of a single calendar day.
type DailyBreakdown struct {
	Date     string      `json:"date"`
	LogCount int         `json:"log_count"`
	Totals   MacroTotals `json:"totals"`
}

// GoalComparison reports actual consumption against the health goal.
// Deltas are actual minus target; negative means under target.
type GoalComparison struct {
	TargetCalories int     `json:"target_calories"`
	TargetProtein  float64 `json:"target_protein"`
	TargetFat      float64 `json:"target_fat"`
	DeltaCalories  float64 `json:"delta_calories"`
	DeltaProtein   float64 `json:"delta_protein"`
	DeltaFat       float64 `json:"delta_fat"`
}

// NutritionReport is the serializable result of analyzing a user's diet
// logs. Status no_data is an explicit state, not an empty aggregate that
// could be mistaken for zero consumption.
type NutritionReport struct {
	Status               string           `json:"status"`
	GeneratedAt          time.Time        `json:"generated_at"`
	LogCount             int              `json:"log_count"`
	LogsWithoutNutrition int              `json:"logs_without_nutrition"`
	PortionAnomalies     []string         `json:"portion_anomalies,omitempty"`
	Totals               MacroTotals      `json:"totals"`
	Daily                []DailyBreakdown `json:"daily"`
	Goal                 *GoalComparison  `json:"goal,omitempty"`
}

// AnalyticsService aggregates a user's diet logs into a nutrition report
type AnalyticsService interface {
	// Analyze builds a report over all of the user's diet logs. It never
	// fails on missing optional data.
	Analyze(user *models.User) *NutritionReport
}

type analyticsService struct {
	catalog *catalog.Catalog
}

// NewAnalyticsService creates a new instance of AnalyticsService
func NewAnalyticsService(c *catalog.Catalog) AnalyticsService {
	return &analyticsService{catalog: c}
}

func (s *analyticsService) Analyze(user *models.User) *NutritionReport {
	logs := user.DietLogs()
	report := &NutritionReport{
		Status:      ReportStatusOK,
		GeneratedAt: time.Now(),
		LogCount:    len(logs),
	}
	if len(logs) == 0 {
		report.Status = ReportStatusNoData
		report.Daily = []DailyBreakdown{}
		return report
	}

	days := make(map[string]*DailyBreakdown)
	for _, dietLog := range logs {
		day := dayFor(days, dietLog.Timestamp)
		day.LogCount++

		item, err := s.catalog.FindMenuItem(dietLog.MenuItemID)
		if err != nil || item.Nutrition == nil {
			if err != nil && !errors.Is(err, models.ErrNotFound) {
				continue
			}
			// Logs whose item is gone or carries no nutrition info stay out
			// of the numeric totals but are counted so coverage is visible.
			report.LogsWithoutNutrition++
			continue
		}

		portion, ok := parsePortion(dietLog.PortionSize)
		if !ok {
			report.PortionAnomalies = append(report.PortionAnomalies, dietLog.LogID)
		}

		n := item.Nutrition
		addScaled(&report.Totals, n, portion)
		addScaled(&day.Totals, n, portion)
	}

	report.Daily = sortedDays(days)

	if profile := user.Profile(); profile != nil && profile.HealthGoal != nil {
		goal := profile.HealthGoal
		report.Goal = &GoalComparison{
			TargetCalories: goal.TargetCalories,
			TargetProtein:  goal.TargetProtein,
			TargetFat:      goal.TargetFat,
			DeltaCalories:  report.Totals.Calories - float64(goal.TargetCalories),
			DeltaProtein:   report.Totals.Protein - goal.TargetProtein,
			DeltaFat:       report.Totals.Fat - goal.TargetFat,
		}
	}
	return report
}

// parsePortion interprets the portion string as a multiplier. Non-numeric
// or negative values fall back to 1.0; the false return flags the anomaly.
func parsePortion(raw string) (float64, bool) {
	portion, err := strconv.ParseFloat(raw, 64)
	if err != nil || portion < 0 {
		return 1.0, false
	}
	return portion, true
}

func addScaled(totals *MacroTotals, n *models.NutritionInfo, portion float64) {
	totals.Calories += float64(n.Calories) * portion
	totals.Protein += n.Protein * portion
	totals.Carbs += n.Carbs * portion
	totals.Fat += n.Fat * portion
}

func dayFor(days map[string]*DailyBreakdown, ts time.Time) *DailyBreakdown {
	key := ts.Format("2006-01-02")
	if day, ok := days[key]; ok {
		return day
	}
	day := &DailyBreakdown{Date: key}
	days[key] = day
	return day
}

func sortedDays(days map[string]*DailyBreakdown) []DailyBreakdown {
	out := make([]DailyBreakdown, 0, len(days))
	for _, day := range days {
		out = append(out, *day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
