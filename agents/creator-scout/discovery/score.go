package discovery

import "math"

// Insight tags assigned to ranked creators, first matching rule wins.
const (
	ReasonEstablished     = "Established Authority"
	ReasonExplosiveGrowth = "Explosive Growth"
	ReasonHighEngagement  = "High Engagement"
	ReasonRelevantMatch   = "Relevant Match"
)

// Score holds the derived ranking metrics for one channel.
type Score struct {
	AvgViews       int64
	EngagementRate float64
	Composite      float64
}

// ScoreChannel maps raw channel statistics to a bounded composite ranking
// score and an insight tag. Pure function; the weights and thresholds are
// fixed design constants kept stable for output compatibility.
func ScoreChannel(subscriberCount, viewCount, videoCount int64) (Score, string) {
	videos := videoCount
	if videos < 1 {
		videos = 1
	}
	avgViews := viewCount / videos

	subsFloor := subscriberCount
	if subsFloor < 100 {
		subsFloor = 100
	}
	viewToSubRatio := float64(avgViews) / float64(subsFloor)

	engagementRate := math.Min(0.01+viewToSubRatio*0.1, 0.15)

	subsForSize := subscriberCount
	if subsForSize < 1 {
		subsForSize = 1
	}
	sizeScore := math.Min(math.Log10(float64(subsForSize))/7, 1) * 0.5
	engagementScore := math.Min(engagementRate*10, 1) * 0.3
	consistencyScore := math.Min(float64(avgViews)/1000, 1.5) * 0.2

	composite := sizeScore + engagementScore + consistencyScore
	if composite > 1 {
		composite = 1
	}

	var reason string
	switch {
	case subscriberCount > 100_000:
		reason = ReasonEstablished
	case viewToSubRatio > 1.5:
		reason = ReasonExplosiveGrowth
	case viewToSubRatio > 0.8:
		reason = ReasonHighEngagement
	default:
		reason = ReasonRelevantMatch
	}

	return Score{
		AvgViews:       avgViews,
		EngagementRate: engagementRate,
		Composite:      composite,
	}, reason
}
