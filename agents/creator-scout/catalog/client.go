package catalog

import (
	"context"
	"fmt"
	"strings"

	"creator-scout/internal/models"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// maxStatsBatch is the upstream limit on ids per channels.list call.
const maxStatsBatch = 50

// searchPageSize is the number of results requested per search page.
const searchPageSize = 50

// Client wraps the two catalog operations the discovery engine needs:
// paginated channel search and batched statistics lookup. It performs no
// retries; failures are classified and returned to the caller.
type Client struct {
	service *youtube.Service
}

// NewClient builds a catalog client authorized with the given bearer token.
// apiBase overrides the API endpoint when non-empty (tests, proxies).
func NewClient(ctx context.Context, token, apiBase string) (*Client, error) {
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if apiBase != "" {
		opts = append(opts, option.WithEndpoint(apiBase))
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	return &Client{service: service}, nil
}

// SearchItem is one raw channel hit from a search page.
type SearchItem struct {
	ChannelID   string
	Title       string
	Description string
	Thumbnail   string
}

// SearchPage is one validated page of channel search results.
type SearchPage struct {
	Items         []SearchItem
	NextPageToken string
}

// Search fetches one page of channel results for the query. An empty
// pageToken requests the first page.
func (c *Client) Search(ctx context.Context, query, pageToken string) (*SearchPage, error) {
	call := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(searchPageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, classify("search", err)
	}

	page := &SearchPage{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.ChannelId == "" || item.Snippet == nil {
			return nil, malformed("search", fmt.Errorf("search item missing id or snippet"))
		}
		page.Items = append(page.Items, SearchItem{
			ChannelID:   item.Id.ChannelId,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			Thumbnail:   defaultThumbnail(item.Snippet.Thumbnails),
		})
	}

	return page, nil
}

// FetchStats enriches the given channel ids with snippet and statistics
// data. Ids are fetched in batches of at most 50 per upstream contract.
func (c *Client) FetchStats(ctx context.Context, ids []string) ([]*models.ChannelStats, error) {
	if len(ids) == 0 {
		return nil, malformed("channels", fmt.Errorf("no channel ids to fetch"))
	}

	var stats []*models.ChannelStats
	for i := 0; i < len(ids); i += maxStatsBatch {
		end := i + maxStatsBatch
		if end > len(ids) {
			end = len(ids)
		}

		call := c.service.Channels.List([]string{"snippet", "statistics"}).
			Id(strings.Join(ids[i:end], ",")).
			Context(ctx)

		resp, err := call.Do()
		if err != nil {
			return nil, classify("channels", err)
		}

		for _, ch := range resp.Items {
			if ch.Id == "" || ch.Snippet == nil || ch.Statistics == nil {
				return nil, malformed("channels", fmt.Errorf("channel item missing id, snippet or statistics"))
			}
			stats = append(stats, &models.ChannelStats{
				ID:              ch.Id,
				Title:           ch.Snippet.Title,
				Handle:          ch.Snippet.CustomUrl,
				Description:     ch.Snippet.Description,
				Thumbnail:       defaultThumbnail(ch.Snippet.Thumbnails),
				Country:         ch.Snippet.Country,
				SubscriberCount: int64(ch.Statistics.SubscriberCount),
				ViewCount:       int64(ch.Statistics.ViewCount),
				VideoCount:      int64(ch.Statistics.VideoCount),
			})
		}
	}

	return stats, nil
}

// RecentUploads returns the descriptions of up to n recent videos for one
// channel. Used only by the optional deep email scan.
func (c *Client) RecentUploads(ctx context.Context, channelID string, n int64) ([]string, error) {
	if n < 1 {
		n = 1
	}

	call := c.service.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		Type("video").
		Order("date").
		MaxResults(n).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, classify("uploads", err)
	}

	var descriptions []string
	for _, item := range resp.Items {
		if item.Snippet == nil {
			continue
		}
		descriptions = append(descriptions, item.Snippet.Description)
	}

	return descriptions, nil
}

func defaultThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	if t.Default != nil {
		return t.Default.Url
	}
	if t.High != nil {
		return t.High.Url
	}
	return ""
}
