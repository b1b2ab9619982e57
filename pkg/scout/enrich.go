package scout

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// defaultConcurrency bounds parallel candidate enrichment. The constraint
// is the remote rate-limit budget, not local CPU.
const defaultConcurrency = 4

// Enricher turns candidates into profiles by fetching supplementary data:
// contributor count, commit count on the default branch, and license
// metadata when the search payload lacked it. Age is recomputed from the
// already-known creation timestamp.
//
// Every lookup is independently tolerant: a failure degrades that single
// field to unknown and never aborts the rest of the profile or the batch.
type Enricher struct {
	client      Client
	logger      *log.Logger
	concurrency int
}

// NewEnricher creates an Enricher. concurrency <= 0 selects the default
// bound; a nil logger falls back to log.Default().
func NewEnricher(client Client, logger *log.Logger, concurrency int) *Enricher {
	if logger == nil {
		logger = log.Default()
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Enricher{client: client, logger: logger, concurrency: concurrency}
}

// Enrich produces a profile for one candidate. It never fails: fields whose
// lookups error stay nil.
func (e *Enricher) Enrich(ctx context.Context, c Candidate) Profile {
	p := Profile{
		Candidate: c,
		AgeYears:  ageYears(c.CreatedAt, time.Now()),
	}

	if n, err := e.client.CountContributors(ctx, c.Owner, c.Name); err != nil {
		e.logger.Debug("contributor count unavailable", "repo", c.FullName, "err", err)
	} else {
		p.Contributors = &n
	}

	if n, last, err := e.client.CountCommits(ctx, c.Owner, c.Name, c.DefaultBranch); err != nil {
		e.logger.Debug("commit count unavailable", "repo", c.FullName, "err", err)
	} else {
		p.Commits = &n
		p.LastCommit = last
	}

	if c.License == nil {
		if repo, err := e.client.GetRepository(ctx, c.Owner, c.Name); err != nil {
			e.logger.Debug("license lookup unavailable", "repo", c.FullName, "err", err)
		} else if repo.License != nil && repo.License.SPDXID != "" && repo.License.SPDXID != "NOASSERTION" {
			spdx := repo.License.SPDXID
			p.License = &spdx
		}
	}

	return p
}

// EnrichAll enriches a batch of candidates over a bounded worker pool.
// Output order matches input order, and one candidate's failures never
// stop enrichment of the others.
func (e *Enricher) EnrichAll(ctx context.Context, candidates []Candidate) []Profile {
	profiles := make([]Profile, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			profiles[i] = e.Enrich(gctx, c)
			return nil
		})
	}
	// Workers never return errors; per-field tolerance happens inside Enrich.
	_ = g.Wait()

	return profiles
}
