package creatorscout

import (
	"context"
	"fmt"
	"log"
	"time"

	"creator-scout/agents/creator-scout/catalog"
	"creator-scout/agents/creator-scout/discovery"
	"creator-scout/agents/creator-scout/ledger"
	"creator-scout/internal/models"
	"creator-scout/shared/ai"
	"creator-scout/shared/config"
	"creator-scout/shared/email"
	"creator-scout/shared/scheduler"
	"creator-scout/shared/storage"
)

// ScoutAgent implements the scheduler.Agent interface. Each run performs
// one discovery invocation per configured niche and emails the ranked
// results as a digest.
type ScoutAgent struct {
	config        *config.Config
	catalogClient *catalog.Client
	ledgerClient  *ledger.Client
	drafter       *ai.Drafter
	emailSender   *email.Sender
	store         *storage.Store
}

// ScoutMetrics summarizes one scheduled run.
type ScoutMetrics struct {
	NichesSearched int
	NichesFailed   int
	CreatorsRanked int
	EmailsFound    int
}

func (m ScoutMetrics) GetSummary() string {
	return fmt.Sprintf("searched %d niches, ranked %d creators, %d with emails",
		m.NichesSearched, m.CreatorsRanked, m.EmailsFound)
}

func NewScoutAgent(cfg *config.Config) *ScoutAgent {
	return &ScoutAgent{
		config: cfg,
	}
}

func (s *ScoutAgent) Name() string {
	return "Creator Scout"
}

func (s *ScoutAgent) Initialize() error {
	log.Printf("Initializing %s...", s.Name())

	if s.store == nil {
		store, err := storage.NewStore(s.config.DataDir)
		if err != nil {
			return fmt.Errorf("failed to create state store: %w", err)
		}
		s.store = store
		log.Println("State store initialized")
	}

	if s.catalogClient == nil {
		client, err := catalog.NewClient(context.Background(), s.config.Catalog.Token, s.apiBase())
		if err != nil {
			return fmt.Errorf("failed to create catalog client: %w", err)
		}
		s.catalogClient = client
		log.Println("Catalog client initialized")
	}

	if s.ledgerClient == nil {
		s.ledgerClient = ledger.NewClient(s.config.Ledger.BaseURL, s.config.Ledger.Token)
		log.Println("Ledger client initialized")
	}

	if s.drafter == nil && s.config.AI.OutreachPitches && s.config.AI.GeminiAPIKey != "" {
		drafter, err := ai.NewDrafter(s.config)
		if err != nil {
			return fmt.Errorf("failed to create outreach drafter: %w", err)
		}
		s.drafter = drafter
		log.Println("Outreach drafter initialized")
	}

	if s.emailSender == nil {
		s.emailSender = email.NewSender(&s.config.Email)
		log.Println("Email sender initialized")
	}

	return nil
}

// apiBase resolves the catalog endpoint: explicit config wins, then the
// persisted override, then the SDK default.
func (s *ScoutAgent) apiBase() string {
	if s.config.Catalog.APIBase != "" {
		return s.config.Catalog.APIBase
	}
	if override, ok := s.store.Get(storage.KeyAPIBaseOverride); ok {
		return override
	}
	return ""
}

func (s *ScoutAgent) RunOnce(ctx context.Context, events *scheduler.AgentEvents) error {
	startTime := time.Now()

	discoveryCfg := discovery.Config{
		APIBase:    s.apiBase(),
		Credential: s.config.Catalog.Token,
	}

	reporter := discovery.ReporterFunc(func(out discovery.Outcome) {
		if out.Err != nil {
			reason := discovery.ReasonForError(out.Err)
			log.Printf("Discovery failed for %q: %s", out.Query, discovery.UserMessage(reason))
			return
		}
		log.Printf("Discovery delivered %d creators for %q", len(out.Creators), out.Query)
	})

	var metrics ScoutMetrics
	var reports []*models.DigestReport
	var lastCredits *int

	for _, niche := range s.config.Niches {
		log.Printf("Scouting niche %q...", niche)

		controller := discovery.NewController(discoveryCfg, s.catalogClient, s.ledgerClient, reporter)
		controller.DeepEmailScan = s.config.Discovery.DeepEmailScan
		controller.UploadScanSize = int64(s.config.Discovery.UploadScanSize)

		out := controller.Discover(ctx, niche)
		metrics.NichesSearched++

		if out.Err != nil {
			reason := discovery.ReasonForError(out.Err)
			// A dead credential or an exhausted quota will fail every
			// remaining niche too, so stop the run.
			if reason == discovery.ReasonUnauthenticated || reason == discovery.ReasonQuotaExceeded {
				return fmt.Errorf("discovery aborted on niche %q: %w", niche, out.Err)
			}
			metrics.NichesFailed++
			if events != nil && events.OnPartialFailure != nil {
				events.OnPartialFailure(fmt.Errorf("niche %q failed: %w", niche, out.Err), time.Since(startTime))
			}
			continue
		}

		metrics.CreatorsRanked += len(out.Creators)
		for _, creator := range out.Creators {
			if creator.Email != "" {
				metrics.EmailsFound++
			}
		}

		if out.CreditsRemaining != nil {
			lastCredits = out.CreditsRemaining
		}

		reports = append(reports, &models.DigestReport{
			Date:             time.Now(),
			Niche:            niche,
			Creators:         out.Creators,
			CreditsRemaining: out.CreditsRemaining,
		})
	}

	if metrics.NichesSearched > 0 && metrics.NichesFailed == metrics.NichesSearched {
		return fmt.Errorf("all %d niches failed", metrics.NichesSearched)
	}

	if lastCredits != nil {
		if err := s.store.SetInt(storage.KeyCreditsRemaining, *lastCredits); err != nil {
			log.Printf("Warning: failed to persist credit count: %v", err)
		}
	}

	s.draftPitches(ctx, reports)

	if len(reports) > 0 {
		log.Printf("Sending digest covering %d niches", len(reports))
		if err := s.emailSender.SendDigest(reports); err != nil {
			return fmt.Errorf("failed to send digest: %w", err)
		}
		log.Println("Digest sent successfully")
	}

	duration := time.Since(startTime)
	if events != nil && events.OnSuccess != nil {
		events.OnSuccess(metrics, duration)
	}

	log.Printf("Run complete: %s (took %v)", metrics.GetSummary(), duration)

	return nil
}

// draftPitches fills in outreach pitches for the top emailed creators per
// niche. Drafting is best effort and never fails the run.
func (s *ScoutAgent) draftPitches(ctx context.Context, reports []*models.DigestReport) {
	if s.drafter == nil {
		return
	}

	for _, report := range reports {
		drafted := 0
		for _, creator := range report.Creators {
			if drafted >= s.config.AI.MaxPitches {
				break
			}
			if creator.Email == "" {
				continue
			}

			pitch, err := s.drafter.DraftPitch(ctx, creator)
			if err != nil {
				log.Printf("Warning: pitch drafting failed for %s: %v", creator.Title, err)
				continue
			}
			creator.OutreachPitch = pitch
			drafted++
		}
	}
}
