package services

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"backend/models"
)

func mealLog(day, hour int, mealType string, foods []models.FoodItem, calories, protein, fiber, sodium *float64) models.NutritionLog {
	items, _ := json.Marshal(foods)
	return models.NutritionLog{
		MealType:  mealType,
		FoodItems: string(items),
		Calories:  calories,
		ProteinG:  protein,
		FiberG:    fiber,
		SodiumMg:  sodium,
		MealDate:  time.Date(2024, 3, day, hour, 0, 0, 0, time.UTC),
	}
}

func foods(names ...string) []models.FoodItem {
	out := make([]models.FoodItem, 0, len(names))
	for _, n := range names {
		out = append(out, models.FoodItem{Name: n, Quantity: "1 serving"})
	}
	return out
}

func newAggregator() *NutritionAggregator {
	return NewNutritionAggregator(DefaultNutritionTargets, DefaultGoalThresholds)
}

func TestDailySummariesGrouping(t *testing.T) {
	g := newAggregator()

	logs := []models.NutritionLog{
		mealLog(1, 8, "breakfast", foods("oatmeal"), fptr(200.25), fptr(5), nil, nil),
		mealLog(1, 12, "lunch", foods("rice"), fptr(300.25), nil, fptr(3), fptr(400)),
		mealLog(2, 8, "breakfast", foods("toast"), fptr(150), fptr(4), nil, nil),
	}
	got := g.DailySummaries(logs)

	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}
	day1 := got[0]
	if day1.Date != "2024-03-01" {
		t.Errorf("first summary date = %q, want 2024-03-01", day1.Date)
	}
	if day1.TotalCalories != 500.5 {
		t.Errorf("day 1 calories = %v, want 500.5", day1.TotalCalories)
	}
	if day1.TotalProteinG != 5 {
		t.Errorf("day 1 protein = %v, want 5 (nil treated as 0)", day1.TotalProteinG)
	}
	if day1.MealCount != 2 {
		t.Errorf("day 1 meal count = %d, want 2", day1.MealCount)
	}
	if day1.MealsByType["breakfast"] != 1 || day1.MealsByType["lunch"] != 1 {
		t.Errorf("day 1 meals by type = %v", day1.MealsByType)
	}
	if got[1].Date != "2024-03-02" || got[1].MealCount != 1 {
		t.Errorf("day 2 = %+v", got[1])
	}
}

func TestDailySummariesOrderIndependence(t *testing.T) {
	g := newAggregator()

	logs := []models.NutritionLog{
		mealLog(3, 18, "dinner", foods("pasta"), fptr(400), nil, nil, nil),
		mealLog(1, 8, "breakfast", foods("oatmeal"), fptr(200), fptr(5), nil, nil),
		mealLog(2, 12, "lunch", foods("rice"), fptr(300), nil, nil, nil),
		mealLog(1, 12, "snack", foods("apple"), fptr(80), nil, fptr(2), nil),
	}
	reversed := make([]models.NutritionLog, len(logs))
	for i, l := range logs {
		reversed[len(logs)-1-i] = l
	}

	a := g.DailySummaries(logs)
	b := g.DailySummaries(reversed)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("summaries differ under input reordering:\n%+v\n%+v", a, b)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	g := newAggregator()

	s := g.Summarize(nil, 7, 12)

	if s.TotalLogs != 0 {
		t.Errorf("TotalLogs = %d, want 0", s.TotalLogs)
	}
	if s.DateRange != "Last 7 days" {
		t.Errorf("DateRange = %q", s.DateRange)
	}
	if len(s.Recommendations) != 1 {
		t.Fatalf("want exactly one recommendation, got %v", s.Recommendations)
	}
	if !strings.Contains(s.Recommendations[0], "Start logging meals") {
		t.Errorf("unexpected empty-case recommendation: %q", s.Recommendations[0])
	}
	if len(s.DailyAverages) != 0 || len(s.MostCommonFoods) != 0 || len(s.RecentDailySummaries) != 0 {
		t.Error("empty summary should have empty aggregates")
	}
}

func TestSummarizeAveragesReconstructTotals(t *testing.T) {
	g := newAggregator()

	logs := []models.NutritionLog{
		mealLog(1, 8, "breakfast", foods("oatmeal"), fptr(210.4), fptr(6.2), fptr(2.1), fptr(120)),
		mealLog(1, 12, "lunch", foods("rice"), fptr(333.3), fptr(12.7), fptr(1.4), fptr(510)),
		mealLog(2, 8, "breakfast", foods("toast"), fptr(150.6), fptr(4.4), fptr(0.9), fptr(230)),
		mealLog(3, 19, "dinner", foods("stew"), fptr(410.2), fptr(18.1), fptr(3.3), fptr(640)),
	}
	s := g.Summarize(logs, 7, 24)

	totalDays := 3.0
	wantTotals := map[string]float64{
		"calories":  210.4 + 333.3 + 150.6 + 410.2,
		"protein_g": 6.2 + 12.7 + 4.4 + 18.1,
		"fiber_g":   2.1 + 1.4 + 0.9 + 3.3,
		"sodium_mg": 120 + 510 + 230 + 640,
	}
	for key, total := range wantTotals {
		reconstructed := s.DailyAverages[key] * totalDays
		if math.Abs(reconstructed-total) > 0.1*totalDays {
			t.Errorf("%s: avg*days = %v, want ~%v", key, reconstructed, total)
		}
	}
	if s.TotalLogs != 4 {
		t.Errorf("TotalLogs = %d, want 4", s.TotalLogs)
	}
}

func TestMostCommonFoodsTopFive(t *testing.T) {
	g := newAggregator()

	var logs []models.NutritionLog
	// banana x4, rice x3, apple x2, toast/egg/pear/milk x1
	logs = append(logs, mealLog(1, 8, "breakfast", foods("banana", "toast", "banana"), nil, nil, nil, nil))
	logs = append(logs, mealLog(1, 12, "lunch", foods("rice", "apple", "banana"), nil, nil, nil, nil))
	logs = append(logs, mealLog(2, 8, "breakfast", foods("banana", "rice", "egg"), nil, nil, nil, nil))
	logs = append(logs, mealLog(2, 12, "lunch", foods("rice", "apple", "pear", "milk"), nil, nil, nil, nil))

	s := g.Summarize(logs, 7, 12)
	got := s.MostCommonFoods

	if len(got) > 5 {
		t.Fatalf("top list has %d entries, want <= 5", len(got))
	}
	if got[0] != "banana" || got[1] != "rice" || got[2] != "apple" {
		t.Errorf("ranking head = %v, want banana, rice, apple", got[:3])
	}
	// ties among the singles resolve by first appearance
	if got[3] != "toast" || got[4] != "egg" {
		t.Errorf("tie order = %v, want toast then egg", got[3:])
	}
}

func TestMostCommonFoodsSkipsMalformedPayload(t *testing.T) {
	g := newAggregator()

	bad := mealLog(1, 8, "breakfast", nil, fptr(100), nil, nil, nil)
	bad.FoodItems = "{not json"
	logs := []models.NutritionLog{
		bad,
		mealLog(1, 12, "lunch", foods("rice"), fptr(300), nil, nil, nil),
	}

	s := g.Summarize(logs, 7, 12)
	if !reflect.DeepEqual(s.MostCommonFoods, []string{"rice"}) {
		t.Errorf("MostCommonFoods = %v, want [rice]", s.MostCommonFoods)
	}
	// the malformed log still counts toward totals
	if s.TotalLogs != 2 {
		t.Errorf("TotalLogs = %d, want 2", s.TotalLogs)
	}
}

func TestRecommendationRules(t *testing.T) {
	g := newAggregator()

	// one log on a single day, so averages equal that log's values
	day := func(calories, protein, fiber, sodium float64) []models.NutritionLog {
		return []models.NutritionLog{
			mealLog(1, 12, "lunch", foods("meal"), &calories, &protein, &fiber, &sodium),
		}
	}

	tests := []struct {
		name      string
		logs      []models.NutritionLog
		ageMonths int
		want      []string // substrings, in order
		wantLen   int
	}{
		{
			name:      "well balanced",
			logs:      day(1000, 20, 12, 900),
			ageMonths: 18,
			want:      []string{"well-balanced"},
			wantLen:   1,
		},
		{
			name:      "low calories includes age target",
			logs:      day(500, 20, 12, 900),
			ageMonths: 18,
			want:      []string{"~1000 calories/day"},
			wantLen:   1,
		},
		{
			name:      "high calories suggests portion control",
			logs:      day(1300, 20, 12, 900),
			ageMonths: 18,
			want:      []string{"portion control"},
			wantLen:   1,
		},
		{
			name:      "infant band target",
			logs:      day(500, 15, 12, 900),
			ageMonths: 10,
			want:      []string{"~800 calories/day"},
			wantLen:   1,
		},
		{
			name:      "oldest band target",
			logs:      day(700, 25, 12, 900),
			ageMonths: 40,
			want:      []string{"~1200 calories/day"},
			wantLen:   1,
		},
		{
			name:      "low protein includes target",
			logs:      day(1000, 10, 12, 900),
			ageMonths: 18,
			want:      []string{"~20g protein/day"},
			wantLen:   1,
		},
		{
			name:      "low fiber",
			logs:      day(1000, 20, 4, 900),
			ageMonths: 18,
			want:      []string{"fiber"},
			wantLen:   1,
		},
		{
			name:      "high sodium",
			logs:      day(1000, 20, 12, 2000),
			ageMonths: 18,
			want:      []string{"sodium"},
			wantLen:   1,
		},
		{
			name:      "rules stack in order",
			logs:      day(500, 10, 4, 2000),
			ageMonths: 18,
			want:      []string{"calories", "protein", "fiber", "sodium"},
			wantLen:   4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := g.Summarize(tt.logs, 7, tt.ageMonths)
			if len(s.Recommendations) != tt.wantLen {
				t.Fatalf("got %d recommendations %v, want %d", len(s.Recommendations), s.Recommendations, tt.wantLen)
			}
			for i, substr := range tt.want {
				if !strings.Contains(s.Recommendations[i], substr) {
					t.Errorf("recommendation[%d] = %q, want substring %q", i, s.Recommendations[i], substr)
				}
			}
		})
	}
}

func TestCalorieRulesAreMutuallyExclusive(t *testing.T) {
	g := newAggregator()

	logs := []models.NutritionLog{
		mealLog(1, 12, "lunch", foods("meal"), fptr(5000), fptr(20), fptr(12), fptr(900)),
	}
	s := g.Summarize(logs, 7, 18)

	var calorieRecs int
	for _, r := range s.Recommendations {
		if strings.Contains(r, "calorie") {
			calorieRecs++
		}
	}
	if calorieRecs != 1 {
		t.Errorf("got %d calorie recommendations, want exactly 1: %v", calorieRecs, s.Recommendations)
	}
}

func TestGoalStatus(t *testing.T) {
	g := newAggregator()

	tests := []struct {
		name                               string
		calories, protein, fiber, sodium   float64
		wantCal, wantProt, wantFib, wantNa string
	}{
		{"all targets met", 1000, 20, 12, 900, "adequate", "adequate", "adequate", "good"},
		{"everything off", 500, 10, 4, 2000, "needs_attention", "low", "low", "high"},
		{"calories above band", 1600, 20, 12, 900, "needs_attention", "adequate", "adequate", "good"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := []models.NutritionLog{
				mealLog(1, 12, "lunch", foods("meal"), &tt.calories, &tt.protein, &tt.fiber, &tt.sodium),
			}
			s := g.Summarize(logs, 7, 18)

			got := s.NutritionGoalsStatus
			if got["calories"] != tt.wantCal || got["protein"] != tt.wantProt ||
				got["fiber"] != tt.wantFib || got["sodium"] != tt.wantNa {
				t.Errorf("goal status = %v", got)
			}
		})
	}
}

func TestRecentDailySummariesKeepsLastSeven(t *testing.T) {
	g := newAggregator()

	var logs []models.NutritionLog
	for day := 1; day <= 10; day++ {
		logs = append(logs, mealLog(day, 12, "lunch", foods("rice"), fptr(300), nil, nil, nil))
	}
	s := g.Summarize(logs, 30, 24)

	if len(s.RecentDailySummaries) != 7 {
		t.Fatalf("got %d recent summaries, want 7", len(s.RecentDailySummaries))
	}
	if s.RecentDailySummaries[0].Date != "2024-03-04" {
		t.Errorf("first recent date = %q, want 2024-03-04", s.RecentDailySummaries[0].Date)
	}
	if s.RecentDailySummaries[6].Date != "2024-03-10" {
		t.Errorf("last recent date = %q, want 2024-03-10", s.RecentDailySummaries[6].Date)
	}
}
