package ai

import (
	"context"
	"fmt"
	"strings"

	"creator-scout/internal/models"
	"creator-scout/shared/config"

	"google.golang.org/genai"
)

// Drafter writes short personalized outreach pitches for creators that
// exposed a contact email. It is strictly best effort; callers log and
// drop any error.
type Drafter struct {
	client *genai.Client
	model  string
}

func NewDrafter(cfg *config.Config) (*Drafter, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.AI.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Drafter{
		client: client,
		model:  cfg.AI.Model,
	}, nil
}

// DraftPitch generates a two-sentence outreach opener for one creator.
func (d *Drafter) DraftPitch(ctx context.Context, creator *models.Creator) (string, error) {
	if creator == nil {
		return "", fmt.Errorf("creator cannot be nil")
	}

	prompt := d.buildPitchPrompt(creator)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	result, err := d.client.Models.GenerateContent(ctx, d.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to draft pitch for %s: %w", creator.ChannelID, err)
	}

	pitch := strings.TrimSpace(result.Text())
	if pitch == "" {
		return "", fmt.Errorf("empty pitch response for %s", creator.ChannelID)
	}

	return pitch, nil
}

func (d *Drafter) buildPitchPrompt(creator *models.Creator) string {
	return fmt.Sprintf(`You are an assistant that writes brand-collaboration outreach emails to video creators.

CREATOR:
Name: %s
Niche: %s
Subscribers: %d
Average views per video: %d
Why they ranked: %s

Write the opening two sentences of a friendly, specific outreach email to this creator.
Reference their niche and audience size naturally. No subject line, no greeting, no sign-off.
Plain text only.`,
		creator.Title,
		creator.Niche,
		creator.SubscriberCount,
		creator.AvgViews,
		creator.Reason,
	)
}
