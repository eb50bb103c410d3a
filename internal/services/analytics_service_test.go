package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastetrail/tastetrail-api/internal/catalog"
	"github.com/tastetrail/tastetrail-api/internal/models"
)

func TestAnalyzeEmptyLogsReportsNoData(t *testing.T) {
	c := seededCatalog(t)
	svc := NewAnalyticsService(c)

	alice, err := c.FindUserByName("alice")
	require.NoError(t, err)

	report := svc.Analyze(alice)
	assert.Equal(t, ReportStatusNoData, report.Status)
	assert.Equal(t, 0, report.LogCount)
	assert.Empty(t, report.Daily)
	assert.Nil(t, report.Goal)
}

func TestAnalyzeScalesByPortion(t *testing.T) {
	c := seededCatalog(t)
	svc := NewAnalyticsService(c)

	alice, err := c.FindUserByName("alice")
	require.NoError(t, err)
	salad, err := c.FindMenuItem("item_001") // 350 kcal
	require.NoError(t, err)

	alice.LogMeal(salad, "2", time.Now())

	report := svc.Analyze(alice)
	assert.Equal(t, ReportStatusOK, report.Status)
	assert.Equal(t, 1, report.LogCount)
	assert.Equal(t, 700.0, report.Totals.Calories)
	assert.Equal(t, 24.0, report.Totals.Protein)
	assert.Empty(t, report.PortionAnomalies)
}

func TestAnalyzeNonNumericPortionDefaultsAndFlags(t *testing.T) {
	c := seededCatalog(t)
	svc := NewAnalyticsService(c)

	alice, err := c.FindUserByName("alice")
	require.NoError(t, err)
	salad, err := c.FindMenuItem("item_001")
	require.NoError(t, err)

	log := alice.LogMeal(salad, "a bowl", time.Now())

	report := svc.Analyze(alice)
	assert.Equal(t, 350.0, report.Totals.Calories)
	assert.Equal(t, []string{log.LogID}, report.PortionAnomalies)
}

func TestAnalyzeCountsLogsWithoutNutrition(t *testing.T) {
	c := catalog.New()
	r := models.NewRestaurant("rest_a", "Mystery Diner", "1 Fog Ln", 0, 0, "")
	require.NoError(t, r.AddMenuItem(&models.MenuItem{ItemID: "item_known", Name: "Bowl", Price: 100,
		Nutrition: &models.NutritionInfo{Calories: 500, Protein: 20, Carbs: 40, Fat: 10}}))
	require.NoError(t, r.AddMenuItem(&models.MenuItem{ItemID: "item_mystery", Name: "Special", Price: 90}))
	c.AddRestaurant(r)

	user := models.NewUser("user_a", "eater", "")
	require.NoError(t, c.AddUser(user))

	known, _ := c.FindMenuItem("item_known")
	mystery, _ := c.FindMenuItem("item_mystery")
	user.LogMeal(known, "1", time.Now())
	user.LogMeal(mystery, "1", time.Now())

	report := NewAnalyticsService(c).Analyze(user)
	assert.Equal(t, 2, report.LogCount)
	assert.Equal(t, 1, report.LogsWithoutNutrition)
	assert.Equal(t, 500.0, report.Totals.Calories)
}

func TestAnalyzePerDayBreakdown(t *testing.T) {
	c := seededCatalog(t)
	svc := NewAnalyticsService(c)

	alice, err := c.FindUserByName("alice")
	require.NoError(t, err)
	salad, err := c.FindMenuItem("item_001")
	require.NoError(t, err)
	croissant, err := c.FindMenuItem("item_004") // 280 kcal
	require.NoError(t, err)

	day1 := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 8, 2, 8, 30, 0, 0, time.UTC)
	alice.LogMeal(salad, "1", day1)
	alice.LogMeal(croissant, "1", day1)
	alice.LogMeal(croissant, "1", day2)

	report := svc.Analyze(alice)
	require.Len(t, report.Daily, 2)
	assert.Equal(t, "2025-08-01", report.Daily[0].Date)
	assert.Equal(t, 2, report.Daily[0].LogCount)
	assert.Equal(t, 630.0, report.Daily[0].Totals.Calories)
	assert.Equal(t, "2025-08-02", report.Daily[1].Date)
	assert.Equal(t, 280.0, report.Daily[1].Totals.Calories)
}

func TestAnalyzeGoalDeltas(t *testing.T) {
	c := seededCatalog(t)
	svc := NewAnalyticsService(c)

	bob, err := c.FindUserByName("bob")
	require.NoError(t, err)
	steak, err := c.FindMenuItem("item_003") // 850 kcal, 65 protein, 58 fat
	require.NoError(t, err)

	bob.LogMeal(steak, "1", time.Now())

	report := svc.Analyze(bob)
	require.NotNil(t, report.Goal)
	assert.Equal(t, 2000, report.Goal.TargetCalories)
	assert.Equal(t, -1150.0, report.Goal.DeltaCalories)
	assert.Equal(t, -85.0, report.Goal.DeltaProtein)
	assert.Equal(t, -2.0, report.Goal.DeltaFat)
}

func TestAnalyzeReportSerializes(t *testing.T) {
	c := seededCatalog(t)
	svc := NewAnalyticsService(c)

	bob, err := c.FindUserByName("bob")
	require.NoError(t, err)
	steak, err := c.FindMenuItem("item_003")
	require.NoError(t, err)
	bob.LogMeal(steak, "0.5", time.Now())

	raw, err := json.Marshal(svc.Analyze(bob))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"status":"ok"`)
	assert.Contains(t, string(raw), `"logs_without_nutrition":0`)
	assert.Contains(t, string(raw), `"target_calories":2000`)
}
