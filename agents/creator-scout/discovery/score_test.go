package discovery

import (
	"math"
	"testing"
)

func TestScoreChannel(t *testing.T) {
	tests := []struct {
		name           string
		subs           int64
		views          int64
		videos         int64
		expectAvgViews int64
		expectReason   string
	}{
		{
			name:           "Mid-sized channel",
			subs:           50_000,
			views:          1_000_000,
			videos:         100,
			expectAvgViews: 10_000,
			expectReason:   ReasonRelevantMatch,
		},
		{
			name:           "Large channel is established authority",
			subs:           250_000,
			views:          50_000_000,
			videos:         500,
			expectAvgViews: 100_000,
			expectReason:   ReasonEstablished,
		},
		{
			name:           "Views outpacing subscribers",
			subs:           10_000,
			views:          2_000_000,
			videos:         100,
			expectAvgViews: 20_000,
			expectReason:   ReasonExplosiveGrowth,
		},
		{
			name:           "Solid view-to-sub ratio",
			subs:           10_000,
			views:          1_000_000,
			videos:         100,
			expectAvgViews: 10_000,
			expectReason:   ReasonHighEngagement,
		},
		{
			name:           "Zero videos guarded to one",
			subs:           5_000,
			views:          12_000,
			videos:         0,
			expectAvgViews: 12_000,
			expectReason:   ReasonExplosiveGrowth,
		},
		{
			name:           "Empty channel",
			subs:           0,
			views:          0,
			videos:         0,
			expectAvgViews: 0,
			expectReason:   ReasonRelevantMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, reason := ScoreChannel(tt.subs, tt.views, tt.videos)

			if score.AvgViews != tt.expectAvgViews {
				t.Errorf("AvgViews = %d, want %d", score.AvgViews, tt.expectAvgViews)
			}
			if reason != tt.expectReason {
				t.Errorf("reason = %q, want %q", reason, tt.expectReason)
			}
			if score.Composite < 0 || score.Composite > 1 {
				t.Errorf("Composite = %f, want within [0, 1]", score.Composite)
			}
			if score.EngagementRate < 0 || score.EngagementRate > 0.15 {
				t.Errorf("EngagementRate = %f, want within [0, 0.15]", score.EngagementRate)
			}
		})
	}
}

func TestScoreChannelExactComposite(t *testing.T) {
	// subs=50000, views=1M, videos=100: avgViews=10000, ratio=0.2,
	// engagement=0.03, size=log10(50000)/7*0.5, engScore=0.09, cons=0.3.
	score, _ := ScoreChannel(50_000, 1_000_000, 100)

	sizeScore := math.Log10(50_000) / 7 * 0.5
	want := sizeScore + 0.09 + 0.3

	if math.Abs(score.Composite-want) > 1e-9 {
		t.Errorf("Composite = %f, want %f", score.Composite, want)
	}
	if math.Abs(score.EngagementRate-0.03) > 1e-9 {
		t.Errorf("EngagementRate = %f, want 0.03", score.EngagementRate)
	}
}

func TestScoreChannelEngagementCapped(t *testing.T) {
	// Tiny subscriber base with huge views pins engagement at the cap.
	score, _ := ScoreChannel(100, 10_000_000, 10)

	if score.EngagementRate != 0.15 {
		t.Errorf("EngagementRate = %f, want 0.15", score.EngagementRate)
	}
}

func TestScoreChannelCompositeClamped(t *testing.T) {
	// All three sub-scores at maximum: 0.5 + 0.3 + 0.3 would exceed 1,
	// the composite clamps to the documented bound.
	score, _ := ScoreChannel(10_000_000, 90_000_000_000, 10_000)

	if score.Composite != 1 {
		t.Errorf("Composite = %f, want clamp at 1", score.Composite)
	}
}

func TestScoreChannelBounds(t *testing.T) {
	inputs := []struct{ subs, views, videos int64 }{
		{0, 0, 0},
		{1, 1, 1},
		{100, 0, 0},
		{999, 499_000, 1000},
		{1_000_000_000, 1_000_000_000_000, 1},
		{50, 1_000_000_000, 3},
	}

	for _, in := range inputs {
		score, _ := ScoreChannel(in.subs, in.views, in.videos)
		if score.Composite < 0 || score.Composite > 1 {
			t.Errorf("ScoreChannel(%d, %d, %d) composite = %f, want within [0, 1]",
				in.subs, in.views, in.videos, score.Composite)
		}
	}
}

func TestScoreChannelIdempotent(t *testing.T) {
	first, firstReason := ScoreChannel(12_345, 6_789_000, 321)
	second, secondReason := ScoreChannel(12_345, 6_789_000, 321)

	if first != second {
		t.Errorf("repeated scoring differed: %+v vs %+v", first, second)
	}
	if firstReason != secondReason {
		t.Errorf("repeated reason differed: %q vs %q", firstReason, secondReason)
	}
}
