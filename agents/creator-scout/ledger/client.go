package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"creator-scout/internal/models"
)

// syncSentinel marks a ledger request as a result sync rather than a
// backend-driven search.
const syncSentinel = "#sync"

// syncLimit echoes the discovery target count in the request body.
const syncLimit = 50

// SyncInfo is the useful part of a successful ledger response.
type SyncInfo struct {
	CreditsRemaining *int
}

// SyncError is a classified ledger failure. Callers treat it as a silent
// no-op; it never escalates into an invocation failure.
type SyncError struct {
	StatusCode int
	Err        error
}

func (e *SyncError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ledger sync rejected (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("ledger sync failed: %v", e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// Client reports finalized creator lists to the backend credit ledger and
// reads back the remaining-credit count.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// creatorProjection is the minimal per-creator payload the ledger needs.
type creatorProjection struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name"`
}

type syncRequest struct {
	Query    string              `json:"query"`
	Niche    string              `json:"niche"`
	Limit    int                 `json:"limit"`
	Creators []creatorProjection `json:"creators"`
}

type syncResponse struct {
	Success          bool `json:"success"`
	CreditsRemaining *int `json:"creditsRemaining"`
}

// Sync posts the creator list to the ledger. It returns (nil, nil) when
// there is nothing to report or no credential is configured; any failure
// comes back as a *SyncError for the caller to log and discard.
func (c *Client) Sync(ctx context.Context, niche string, creators []*models.Creator) (*SyncInfo, error) {
	if len(creators) == 0 || c.token == "" {
		return nil, nil
	}

	projections := make([]creatorProjection, 0, len(creators))
	for _, creator := range creators {
		projections = append(projections, creatorProjection{
			ID:     creator.ChannelID,
			Handle: creator.Handle,
			Email:  creator.Email,
			Name:   creator.Title,
		})
	}

	body, err := json.Marshal(syncRequest{
		Query:    syncSentinel,
		Niche:    niche,
		Limit:    syncLimit,
		Creators: projections,
	})
	if err != nil {
		return nil, &SyncError{Err: fmt.Errorf("failed to encode sync request: %w", err)}
	}

	url := c.baseURL + "/api/extension/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &SyncError{Err: fmt.Errorf("failed to create sync request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &SyncError{Err: fmt.Errorf("failed to reach ledger: %w", err)}
	}
	defer resp.Body.Close()

	// A 401 means the session expired; the sync is skipped, never
	// propagated as the overall failure.
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &SyncError{StatusCode: resp.StatusCode, Err: fmt.Errorf("session expired")}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &SyncError{StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected ledger status")}
	}

	var parsed syncResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &SyncError{Err: fmt.Errorf("failed to decode ledger response: %w", err)}
	}
	if !parsed.Success {
		return nil, &SyncError{Err: fmt.Errorf("ledger reported failure")}
	}

	return &SyncInfo{CreditsRemaining: parsed.CreditsRemaining}, nil
}
