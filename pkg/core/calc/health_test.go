package calc

import (
	"math"
	"testing"
)

func TestCompositeScoreKnownMetrics(t *testing.T) {
	m := Metrics{
		MetricGrossMargin:      0.6,
		MetricOperatingMargin:  0.2,
		MetricEBITDAMargin:     0.3,
		MetricPretaxMargin:     0.18,
		MetricInterestCoverage: 10,
		MetricCostEfficiency:   0.4,
	}

	// Sub-scores against default bands:
	// gross:    (0.6-0.4)/0.4*10              = 5.0
	// operating:(0.2-0.0)/0.2*10              = 10.0
	// ebitda:   (0.3-0.0)/0.2*10 = 15 -> clamp 10.0
	// pretax:   (0.18-0.0)/0.2*10             = 9.0
	// coverage: (10-1)/14*10                  = 6.428571...
	// cost:     inverted 0.5-0.4=0.1; 0.1/0.3*10 = 3.333333...
	// composite = .25*5 + .20*10 + .15*10 + .15*9 + .15*6.428571 + .10*3.333333
	//           = 7.397619...
	want := 0.25*5 + 0.20*10 + 0.15*10 + 0.15*9 + 0.15*(9.0/14.0*10) + 0.10*(10.0/3.0)

	got := CompositeScore(m)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("CompositeScore = %v, want %v", got, want)
	}
}

func TestCompositeScoreEmptyMetricsUsesNeutralDefaults(t *testing.T) {
	// Every neutral default scales below the band floor, so each sub-score
	// clamps to 1 and the composite is exactly 1 (weights sum to 1).
	got := CompositeScore(Metrics{})
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Expected composite 1.0 from neutral defaults, got %v", got)
	}
}

func TestCompositeScoreAlwaysWithinBounds(t *testing.T) {
	cases := []Metrics{
		{},
		{MetricGrossMargin: 5, MetricOperatingMargin: 5, MetricEBITDAMargin: 5,
			MetricPretaxMargin: 5, MetricInterestCoverage: 1e6, MetricCostEfficiency: -3},
		{MetricGrossMargin: -5, MetricOperatingMargin: -5, MetricEBITDAMargin: -5,
			MetricPretaxMargin: -5, MetricInterestCoverage: -100, MetricCostEfficiency: 42},
	}

	for i, m := range cases {
		got := CompositeScore(m)
		if got < 1 || got > 10 {
			t.Errorf("Case %d: composite %v outside [1, 10]", i, got)
		}
	}
}

func TestCompositeScorePerfectMetricsHitTheCeiling(t *testing.T) {
	m := Metrics{
		MetricGrossMargin:      0.9,
		MetricOperatingMargin:  0.5,
		MetricEBITDAMargin:     0.5,
		MetricPretaxMargin:     0.5,
		MetricInterestCoverage: 50,
		MetricCostEfficiency:   0.1,
	}

	if got := CompositeScore(m); math.Abs(got-10.0) > 1e-9 {
		t.Errorf("Expected ceiling composite 10.0, got %v", got)
	}
}

func TestCostEfficiencyInversion(t *testing.T) {
	// Lower cost ratio must score higher, all else equal.
	lean := Metrics{MetricCostEfficiency: 0.2}
	bloated := Metrics{MetricCostEfficiency: 0.5}

	if CompositeScore(lean) <= CompositeScore(bloated) {
		t.Errorf("Expected lower cost ratio to score higher: lean=%v bloated=%v",
			CompositeScore(lean), CompositeScore(bloated))
	}
}

func TestScaleClampsBothEnds(t *testing.T) {
	if got := scale(-10, 0, 1); got != 1 {
		t.Errorf("Expected floor clamp to 1, got %v", got)
	}
	if got := scale(10, 0, 1); got != 10 {
		t.Errorf("Expected ceiling clamp to 10, got %v", got)
	}
	if got := scale(0.5, 0, 1); got != 5 {
		t.Errorf("Expected midpoint 5, got %v", got)
	}
}

func TestLoadBenchmarksHJSON(t *testing.T) {
	src := `{
		// widen the gross margin band for capital-heavy sectors
		gross_margin: { low: 0.2, high: 0.6 }
	}`

	b, err := LoadBenchmarks([]byte(src))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if b.GrossMargin.Low != 0.2 || b.GrossMargin.High != 0.6 {
		t.Errorf("Expected overridden gross margin band, got %+v", b.GrossMargin)
	}
	// Untouched bands keep defaults.
	if b.InterestCoverage != (Range{Low: 1, High: 15}) {
		t.Errorf("Expected default interest coverage band, got %+v", b.InterestCoverage)
	}
}

func TestLoadBenchmarksRejectsInvertedBand(t *testing.T) {
	if _, err := LoadBenchmarks([]byte(`{operating_margin: {low: 0.5, high: 0.1}}`)); err == nil {
		t.Error("Expected error for band with high <= low")
	}
}
