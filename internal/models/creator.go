package models

import "time"

// ChannelStats holds the enriched statistics for a single channel as
// returned by the catalog stats batch call.
type ChannelStats struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Handle          string `json:"handle"`
	Description     string `json:"description"`
	Thumbnail       string `json:"thumbnail"`
	Country         string `json:"country,omitempty"`
	SubscriberCount int64  `json:"subscriber_count"`
	ViewCount       int64  `json:"view_count"`
	VideoCount      int64  `json:"video_count"`
}

// Creator is the externally visible ranked record produced by a discovery run.
type Creator struct {
	ChannelID       string  `json:"channelId"`
	Handle          string  `json:"handle"`
	Title           string  `json:"title"`
	Thumbnail       string  `json:"thumbnail"`
	SubscriberCount int64   `json:"subscriberCount"`
	AvgViews        int64   `json:"avgViews"`
	EngagementRate  float64 `json:"engagementRate"`
	Reason          string  `json:"reason"`
	Score           float64 `json:"score"`
	Email           string  `json:"email,omitempty"`
	EmailSource     string  `json:"emailSource,omitempty"`
	Niche           string  `json:"niche"`
	OutreachPitch   string  `json:"outreachPitch,omitempty"`
}

// DigestReport is the payload handed to the email sender after a run.
type DigestReport struct {
	Date             time.Time  `json:"date"`
	Niche            string     `json:"niche"`
	Creators         []*Creator `json:"creators"`
	CreditsRemaining *int       `json:"credits_remaining,omitempty"`
}
