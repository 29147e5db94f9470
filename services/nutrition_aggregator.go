package services

import (
	"encoding/json"
	"fmt"
	"sort"

	"backend/models"
)

// AgeBand is one age-banded daily intake target. Bands are evaluated in
// order; the first band whose MaxAgeMonths covers the child applies, and
// the final band acts as the catch-all for older children.
type AgeBand struct {
	MaxAgeMonths int
	Calories     float64
	ProteinG     float64
}

// NutritionTargets drives the recommendation rules.
type NutritionTargets struct {
	Bands       []AgeBand
	FiberMinG   float64
	SodiumMaxMg float64
}

// DefaultNutritionTargets holds the simplified pediatric daily targets.
var DefaultNutritionTargets = NutritionTargets{
	Bands: []AgeBand{
		{MaxAgeMonths: 12, Calories: 800, ProteinG: 15},
		{MaxAgeMonths: 24, Calories: 1000, ProteinG: 20},
		{MaxAgeMonths: -1, Calories: 1200, ProteinG: 25},
	},
	FiberMinG:   10,
	SodiumMaxMg: 1500,
}

// GoalThresholds drives the goal-status flags. Unlike the recommendation
// targets these are not age-adjusted; see DESIGN.md.
type GoalThresholds struct {
	CaloriesMin float64
	CaloriesMax float64
	ProteinMinG float64
	FiberMinG   float64
	SodiumMaxMg float64
}

var DefaultGoalThresholds = GoalThresholds{
	CaloriesMin: 800,
	CaloriesMax: 1500,
	ProteinMinG: 15,
	FiberMinG:   10,
	SodiumMaxMg: 1500,
}

// DailyNutrition is the per-calendar-day aggregation of a child's meal
// logs. Days are UTC; derived, never persisted.
type DailyNutrition struct {
	Date          string         `json:"date"` // YYYY-MM-DD
	TotalCalories float64        `json:"total_calories"`
	TotalProteinG float64        `json:"total_protein_g"`
	TotalCarbsG   float64        `json:"total_carbs_g"`
	TotalFatG     float64        `json:"total_fat_g"`
	TotalFiberG   float64        `json:"total_fiber_g"`
	TotalSodiumMg float64        `json:"total_sodium_mg"`
	MealCount     int            `json:"meal_count"`
	MealsByType   map[string]int `json:"meals_by_type"`
}

// NutritionSummary is the windowed nutrition report for one child.
type NutritionSummary struct {
	TotalLogs            int                `json:"total_logs"`
	DateRange            string             `json:"date_range"`
	DailyAverages        map[string]float64 `json:"daily_averages"`
	RecentDailySummaries []DailyNutrition   `json:"recent_daily_summaries"`
	MostCommonFoods      []string           `json:"most_common_foods"`
	NutritionGoalsStatus map[string]string  `json:"nutrition_goals_status"`
	Recommendations      []string           `json:"recommendations"`
}

// NutritionAggregator groups meal logs by day and derives averages,
// food rankings and rule-based recommendations. Pure apart from the
// injected targets, so one instance serves all requests.
type NutritionAggregator struct {
	targets NutritionTargets
	goals   GoalThresholds
}

func NewNutritionAggregator(targets NutritionTargets, goals GoalThresholds) *NutritionAggregator {
	if targets.Bands == nil {
		targets = DefaultNutritionTargets
	}
	if goals == (GoalThresholds{}) {
		goals = DefaultGoalThresholds
	}
	return &NutritionAggregator{targets: targets, goals: goals}
}

type dayTotals struct {
	calories, protein, carbs, fat, fiber, sodium float64
	mealCount                                    int
	mealsByType                                  map[string]int
}

// DailySummaries groups logs by the UTC date of MealDate and sums each
// nutrient, treating missing values as zero. Input order is irrelevant;
// output is ascending by date with totals rounded to one decimal.
func (g *NutritionAggregator) DailySummaries(logs []models.NutritionLog) []DailyNutrition {
	days := map[string]*dayTotals{}
	for _, log := range logs {
		key := log.MealDate.UTC().Format("2006-01-02")
		day := days[key]
		if day == nil {
			day = &dayTotals{mealsByType: map[string]int{}}
			days[key] = day
		}
		day.calories += orZero(log.Calories)
		day.protein += orZero(log.ProteinG)
		day.carbs += orZero(log.CarbsG)
		day.fat += orZero(log.FatG)
		day.fiber += orZero(log.FiberG)
		day.sodium += orZero(log.SodiumMg)
		day.mealCount++
		day.mealsByType[log.MealType]++
	}

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	out := make([]DailyNutrition, 0, len(dates))
	for _, date := range dates {
		day := days[date]
		out = append(out, DailyNutrition{
			Date:          date,
			TotalCalories: round1(day.calories),
			TotalProteinG: round1(day.protein),
			TotalCarbsG:   round1(day.carbs),
			TotalFatG:     round1(day.fat),
			TotalFiberG:   round1(day.fiber),
			TotalSodiumMg: round1(day.sodium),
			MealCount:     day.mealCount,
			MealsByType:   day.mealsByType,
		})
	}
	return out
}

// Summarize builds the full nutrition report for logs within the query
// window. An empty window is a valid result with a single prompt to
// start logging, never an error.
func (g *NutritionAggregator) Summarize(logs []models.NutritionLog, windowDays, ageMonths int) NutritionSummary {
	dateRange := fmt.Sprintf("Last %d days", windowDays)

	if len(logs) == 0 {
		return NutritionSummary{
			TotalLogs:            0,
			DateRange:            dateRange,
			DailyAverages:        map[string]float64{},
			RecentDailySummaries: []DailyNutrition{},
			MostCommonFoods:      []string{},
			NutritionGoalsStatus: map[string]string{},
			Recommendations:      []string{"No nutrition data available. Start logging meals!"},
		}
	}

	daily := g.DailySummaries(logs)
	totalDays := len(daily)
	if totalDays == 0 {
		totalDays = 1
	}

	var calories, protein, carbs, fat, fiber, sodium float64
	for _, log := range logs {
		calories += orZero(log.Calories)
		protein += orZero(log.ProteinG)
		carbs += orZero(log.CarbsG)
		fat += orZero(log.FatG)
		fiber += orZero(log.FiberG)
		sodium += orZero(log.SodiumMg)
	}

	averages := map[string]float64{
		"calories":  round1(calories / float64(totalDays)),
		"protein_g": round1(protein / float64(totalDays)),
		"carbs_g":   round1(carbs / float64(totalDays)),
		"fat_g":     round1(fat / float64(totalDays)),
		"fiber_g":   round1(fiber / float64(totalDays)),
		"sodium_mg": round1(sodium / float64(totalDays)),
	}

	recent := daily
	if len(recent) > 7 {
		recent = recent[len(recent)-7:]
	}

	return NutritionSummary{
		TotalLogs:            len(logs),
		DateRange:            dateRange,
		DailyAverages:        averages,
		RecentDailySummaries: recent,
		MostCommonFoods:      g.mostCommonFoods(logs, 5),
		NutritionGoalsStatus: g.goalStatus(averages),
		Recommendations:      g.recommendations(averages, ageMonths),
	}
}

// mostCommonFoods ranks food names across all logs by occurrence count,
// descending, ties broken by first appearance. Logs whose food payload
// does not parse are skipped rather than failing the report.
func (g *NutritionAggregator) mostCommonFoods(logs []models.NutritionLog, limit int) []string {
	counts := map[string]int{}
	var order []string
	for _, log := range logs {
		var items []models.FoodItem
		if err := json.Unmarshal([]byte(log.FoodItems), &items); err != nil {
			continue
		}
		for _, item := range items {
			if _, seen := counts[item.Name]; !seen {
				order = append(order, item.Name)
			}
			counts[item.Name]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	if order == nil {
		order = []string{}
	}
	return order
}

// bandFor picks the age-banded daily targets for the child.
func (g *NutritionAggregator) bandFor(ageMonths int) AgeBand {
	for _, band := range g.targets.Bands {
		if band.MaxAgeMonths >= 0 && ageMonths <= band.MaxAgeMonths {
			return band
		}
	}
	return g.targets.Bands[len(g.targets.Bands)-1]
}

// recommendations evaluates the advisory rules in fixed order; each rule
// appends at most one message, and a balanced intake yields exactly one
// affirmative message.
func (g *NutritionAggregator) recommendations(averages map[string]float64, ageMonths int) []string {
	band := g.bandFor(ageMonths)
	var recs []string

	if averages["calories"] < band.Calories*0.8 {
		recs = append(recs, fmt.Sprintf("Consider increasing daily calories. Target: ~%.0f calories/day", band.Calories))
	} else if averages["calories"] > band.Calories*1.2 {
		recs = append(recs, "Daily calorie intake seems high. Consider portion control.")
	}

	if averages["protein_g"] < band.ProteinG*0.8 {
		recs = append(recs, fmt.Sprintf("Increase protein intake. Target: ~%.0fg protein/day", band.ProteinG))
	}

	if averages["fiber_g"] < g.targets.FiberMinG {
		recs = append(recs, "Include more fruits, vegetables, and whole grains for fiber")
	}

	if averages["sodium_mg"] > g.targets.SodiumMaxMg {
		recs = append(recs, "Reduce sodium intake. Limit processed foods.")
	}

	if len(recs) == 0 {
		recs = append(recs, "Nutritional intake looks well-balanced!")
	}
	return recs
}

func (g *NutritionAggregator) goalStatus(averages map[string]float64) map[string]string {
	status := map[string]string{
		"calories": "needs_attention",
		"protein":  "low",
		"fiber":    "low",
		"sodium":   "high",
	}
	if averages["calories"] >= g.goals.CaloriesMin && averages["calories"] <= g.goals.CaloriesMax {
		status["calories"] = "adequate"
	}
	if averages["protein_g"] >= g.goals.ProteinMinG {
		status["protein"] = "adequate"
	}
	if averages["fiber_g"] >= g.goals.FiberMinG {
		status["fiber"] = "adequate"
	}
	if averages["sodium_mg"] <= g.goals.SodiumMaxMg {
		status["sodium"] = "good"
	}
	return status
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
