package services

import (
	"math"
	"sort"

	"backend/models"
)

// Metric names accepted by the growth chart.
const (
	MetricHeight            = "height"
	MetricWeight            = "weight"
	MetricHeadCircumference = "head_circumference"
)

// Trend classifications.
const (
	TrendIncreasing       = "increasing"
	TrendDecreasing       = "decreasing"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
	TrendNoData           = "no_data"
)

// ChartRef is one (mean, std) reference point of the growth chart.
type ChartRef struct {
	Mean float64
	Std  float64
}

// GrowthChart maps metric -> reference age in months -> reference stats.
type GrowthChart map[string]map[int]ChartRef

// DefaultGrowthChart is a three-point linear approximation of WHO growth
// standards. Not clinically precise; percentiles derived from it are
// rough estimates only.
var DefaultGrowthChart = GrowthChart{
	MetricHeight: {
		12: {Mean: 75.0, Std: 3.0},
		24: {Mean: 86.0, Std: 3.5},
		36: {Mean: 95.0, Std: 4.0},
	},
	MetricWeight: {
		12: {Mean: 9.5, Std: 1.0},
		24: {Mean: 12.0, Std: 1.2},
		36: {Mean: 14.0, Std: 1.5},
	},
	MetricHeadCircumference: {
		12: {Mean: 46.5, Std: 1.5},
		24: {Mean: 48.0, Std: 1.5},
		36: {Mean: 49.0, Std: 1.5},
	},
}

// maxPercentileAgeMonths is the oldest age the chart covers. Analyze
// skips percentiles beyond it; Percentile itself extrapolates against
// the nearest reference if called anyway.
const maxPercentileAgeMonths = 36

// GrowthStats is the computed growth report for one child. Derived fresh
// from the full measurement history on every request, never persisted.
type GrowthStats struct {
	TotalMeasurements           int      `json:"total_measurements"`
	LatestHeightCm              *float64 `json:"latest_height_cm,omitempty"`
	LatestWeightKg              *float64 `json:"latest_weight_kg,omitempty"`
	LatestHeadCircumferenceCm   *float64 `json:"latest_head_circumference_cm,omitempty"`
	HeightTrend                 string   `json:"height_trend"`
	WeightTrend                 string   `json:"weight_trend"`
	HeadCircumferenceTrend      string   `json:"head_circumference_trend"`
	HeightPercentile            *float64 `json:"height_percentile,omitempty"`
	WeightPercentile            *float64 `json:"weight_percentile,omitempty"`
	HeadCircumferencePercentile *float64 `json:"head_circumference_percentile,omitempty"`
}

// GrowthAnalyzer computes trends and percentile estimates from a child's
// measurement history. Pure and stateless apart from the injected chart,
// so one instance is safe for concurrent use.
type GrowthAnalyzer struct {
	chart GrowthChart
}

func NewGrowthAnalyzer(chart GrowthChart) *GrowthAnalyzer {
	if chart == nil {
		chart = DefaultGrowthChart
	}
	return &GrowthAnalyzer{chart: chart}
}

// Trend classifies the direction of a metric from its values in date
// order. Only the last 3 values count; the average consecutive change
// must exceed 0.5 in magnitude to register as a direction. The threshold
// is absolute, not scaled to the metric.
func (a *GrowthAnalyzer) Trend(values []float64) string {
	if len(values) < 2 {
		return TrendInsufficientData
	}

	recent := values
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	if len(recent) < 2 {
		return TrendStable
	}

	var sum float64
	for i := 0; i+1 < len(recent); i++ {
		sum += recent[i+1] - recent[i]
	}
	avgChange := sum / float64(len(recent)-1)

	switch {
	case avgChange > 0.5:
		return TrendIncreasing
	case avgChange < -0.5:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// Percentile estimates where value falls for the given metric and age,
// using the chart reference closest to ageMonths (ties go to the lower
// age). The estimate is a normal approximation, clamped to [0,100] and
// rounded to one decimal.
func (a *GrowthAnalyzer) Percentile(value float64, metric string, ageMonths int) float64 {
	refs := a.chart[metric]

	ages := make([]int, 0, len(refs))
	for age := range refs {
		ages = append(ages, age)
	}
	sort.Ints(ages)

	closest := ages[0]
	for _, age := range ages[1:] {
		if abs(age-ageMonths) < abs(closest-ageMonths) {
			closest = age
		}
	}

	ref := refs[closest]
	z := (value - ref.Mean) / ref.Std
	p := 50 + z*34.13
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return round1(p)
}

// Analyze builds the growth report from a child's full measurement
// history, ordered by measurement date ascending. Each metric is handled
// independently from its own non-null values; an empty history yields
// no_data trends and no percentiles rather than an error. Percentiles
// are only computed while the child is within the chart's age range.
func (a *GrowthAnalyzer) Analyze(logs []models.GrowthLog, ageMonths int) GrowthStats {
	stats := GrowthStats{
		TotalMeasurements:      len(logs),
		HeightTrend:            TrendNoData,
		WeightTrend:            TrendNoData,
		HeadCircumferenceTrend: TrendNoData,
	}
	if len(logs) == 0 {
		return stats
	}

	heights := collectMetric(logs, func(l models.GrowthLog) *float64 { return l.HeightCm })
	weights := collectMetric(logs, func(l models.GrowthLog) *float64 { return l.WeightKg })
	heads := collectMetric(logs, func(l models.GrowthLog) *float64 { return l.HeadCircumferenceCm })

	stats.LatestHeightCm, stats.HeightTrend, stats.HeightPercentile =
		a.analyzeMetric(heights, MetricHeight, ageMonths)
	stats.LatestWeightKg, stats.WeightTrend, stats.WeightPercentile =
		a.analyzeMetric(weights, MetricWeight, ageMonths)
	stats.LatestHeadCircumferenceCm, stats.HeadCircumferenceTrend, stats.HeadCircumferencePercentile =
		a.analyzeMetric(heads, MetricHeadCircumference, ageMonths)

	return stats
}

func (a *GrowthAnalyzer) analyzeMetric(values []float64, metric string, ageMonths int) (latest *float64, trend string, percentile *float64) {
	if len(values) == 0 {
		return nil, TrendNoData, nil
	}
	v := values[len(values)-1]
	latest = &v
	trend = a.Trend(values)
	if ageMonths <= maxPercentileAgeMonths {
		p := a.Percentile(v, metric, ageMonths)
		percentile = &p
	}
	return latest, trend, percentile
}

// collectMetric pulls one metric's non-null values in date order.
// Skipping null rows keeps each metric's own sequence contiguous.
func collectMetric(logs []models.GrowthLog, field func(models.GrowthLog) *float64) []float64 {
	var out []float64
	for _, l := range logs {
		if v := field(l); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
