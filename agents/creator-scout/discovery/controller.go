package discovery

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"creator-scout/agents/creator-scout/catalog"
	"creator-scout/agents/creator-scout/ledger"
	"creator-scout/internal/models"
)

const (
	maxPages       = 5
	targetCount    = 50
	minSubscribers = 1000
	minAvgViews    = 500
)

// ErrUnauthenticated is returned when no catalog credential is available.
// Discovery fails fast on it without making any network call.
var ErrUnauthenticated = errors.New("no catalog credential available")

// Config carries the per-invocation discovery inputs. A fresh value is
// constructed for every Discover call; nothing here is shared between
// concurrent invocations.
type Config struct {
	APIBase    string
	Credential string
}

// Catalog is the slice of the catalog client the controller drives.
type Catalog interface {
	Search(ctx context.Context, query, pageToken string) (*catalog.SearchPage, error)
	FetchStats(ctx context.Context, ids []string) ([]*models.ChannelStats, error)
	RecentUploads(ctx context.Context, channelID string, n int64) ([]string, error)
}

// Ledger reports finalized creator lists to the backend credit ledger.
type Ledger interface {
	Sync(ctx context.Context, niche string, creators []*models.Creator) (*ledger.SyncInfo, error)
}

// Outcome is the single result of one discovery invocation. Err is nil on
// success; Creators is ordered by descending composite score and holds at
// most 50 entries. CreditsRemaining is nil whenever the credit sync was
// skipped or failed.
type Outcome struct {
	Query            string
	Creators         []*models.Creator
	CreditsRemaining *int
	Err              error
}

// Controller orchestrates one paginated discovery crawl: search, dedup,
// batch enrichment, filtering, scoring, sorting, truncation and the
// best-effort credit sync.
type Controller struct {
	cfg      Config
	catalog  Catalog
	ledger   Ledger
	reporter Reporter

	// DeepEmailScan enables scanning recent upload descriptions for
	// creators whose about text yields no contact email. Costs one extra
	// catalog call per scanned creator.
	DeepEmailScan bool
	// UploadScanSize bounds the number of uploads inspected per creator
	// when DeepEmailScan is on.
	UploadScanSize int64
}

func NewController(cfg Config, cat Catalog, led Ledger, rep Reporter) *Controller {
	return &Controller{
		cfg:      cfg,
		catalog:  cat,
		ledger:   led,
		reporter: rep,
	}
}

// Discover runs one full discovery invocation for the query and delivers
// the outcome to the reporter. The returned Outcome is the same value the
// reporter saw.
func (c *Controller) Discover(ctx context.Context, query string) Outcome {
	out := c.run(ctx, query)
	if c.reporter != nil {
		c.reporter.Deliver(out)
	}
	return out
}

func (c *Controller) run(ctx context.Context, query string) Outcome {
	out := Outcome{Query: query}

	if c.cfg.Credential == "" {
		out.Err = ErrUnauthenticated
		return out
	}

	seen := make(map[string]bool)
	var accumulated []*models.Creator
	pageToken := ""

	for page := 1; page <= maxPages && len(accumulated) < targetCount; page++ {
		result, err := c.catalog.Search(ctx, query, pageToken)
		if err != nil {
			out.Err = err
			return out
		}

		// Zero items means the catalog is exhausted, not an error.
		if len(result.Items) == 0 {
			break
		}

		// Mark every id on the page as seen, even ones that later fail
		// the quality filter, so no id is re-fetched on a later page.
		var newIDs []string
		for _, item := range result.Items {
			if seen[item.ChannelID] {
				continue
			}
			seen[item.ChannelID] = true
			newIDs = append(newIDs, item.ChannelID)
		}

		if len(newIDs) == 0 {
			if result.NextPageToken == "" {
				break
			}
			pageToken = result.NextPageToken
			continue
		}

		stats, err := c.catalog.FetchStats(ctx, newIDs)
		if err != nil {
			out.Err = err
			return out
		}

		for _, ch := range stats {
			if creator, ok := c.evaluate(ctx, query, ch); ok {
				accumulated = append(accumulated, creator)
			}
		}

		if result.NextPageToken == "" {
			break
		}
		pageToken = result.NextPageToken
	}

	// Stable sort keeps arrival order for equal scores.
	sort.SliceStable(accumulated, func(i, j int) bool {
		return accumulated[i].Score > accumulated[j].Score
	})
	if len(accumulated) > targetCount {
		accumulated = accumulated[:targetCount]
	}
	out.Creators = accumulated

	if len(accumulated) == 0 {
		return out
	}

	if c.ledger != nil {
		info, err := c.ledger.Sync(ctx, query, accumulated)
		if err != nil {
			// Crediting is best effort; the discovered list is still
			// delivered even when the ledger is unreachable.
			log.Printf("Warning: credit sync failed for %q: %v", query, err)
		} else if info != nil {
			out.CreditsRemaining = info.CreditsRemaining
		}
	}

	return out
}

// evaluate applies the quality filter, scoring and email extraction to one
// enriched channel record.
func (c *Controller) evaluate(ctx context.Context, query string, ch *models.ChannelStats) (*models.Creator, bool) {
	if isTopicChannel(ch.Title) {
		return nil, false
	}
	if ch.SubscriberCount < minSubscribers {
		return nil, false
	}

	score, reason := ScoreChannel(ch.SubscriberCount, ch.ViewCount, ch.VideoCount)
	if score.AvgViews < minAvgViews {
		return nil, false
	}

	email, source := c.extractEmail(ctx, ch)

	return &models.Creator{
		ChannelID:       ch.ID,
		Handle:          ch.Handle,
		Title:           ch.Title,
		Thumbnail:       ch.Thumbnail,
		SubscriberCount: ch.SubscriberCount,
		AvgViews:        score.AvgViews,
		EngagementRate:  score.EngagementRate,
		Reason:          reason,
		Score:           score.Composite,
		Email:           email,
		EmailSource:     source,
		Niche:           query,
	}, true
}

// extractEmail chains the email heuristic over text sources in priority
// order: title, then description (both already fetched in the stats call),
// then optionally recent upload descriptions.
func (c *Controller) extractEmail(ctx context.Context, ch *models.ChannelStats) (string, string) {
	if email := ExtractEmail(ch.Title); email != "" {
		return email, EmailSourceAbout
	}
	if email := ExtractEmail(ch.Description); email != "" {
		return email, EmailSourceAbout
	}

	if !c.DeepEmailScan {
		return "", ""
	}

	descriptions, err := c.catalog.RecentUploads(ctx, ch.ID, c.UploadScanSize)
	if err != nil {
		// The deep scan is opportunistic; a failed lookup never fails
		// the invocation.
		log.Printf("Warning: upload scan failed for channel %s: %v", ch.ID, err)
		return "", ""
	}
	for _, text := range descriptions {
		if email := ExtractEmail(text); email != "" {
			return email, EmailSourceVideo
		}
	}

	return "", ""
}

// isTopicChannel flags auto-generated topic-aggregation channels. The
// heuristic is a plain string match and can false-positive on legitimate
// channels whose name happens to end in "topic".
func isTopicChannel(title string) bool {
	lower := strings.ToLower(strings.TrimSpace(title))
	return strings.Contains(lower, " - topic") || strings.HasSuffix(lower, "topic")
}
