package scout

import (
	"context"

	"github.com/charmbracelet/log"

	apperrors "github.com/repolens/repolens/pkg/errors"
)

// ToolDetector infers build tools and frameworks for a repository.
// *detect.Detector satisfies it. Detection never fails; an inaccessible
// repository yields empty sets.
type ToolDetector interface {
	Detect(ctx context.Context, owner, repo string) (tools, frameworks []string)
}

// Analyzer produces an AnalysisResult for a single repository identifier,
// bypassing search: repository detail, then the same per-field enrichment
// as batch search, then manifest-based build tool and framework detection.
type Analyzer struct {
	client   Client
	enricher *Enricher
	detector ToolDetector
	logger   *log.Logger
}

// NewAnalyzer creates an Analyzer sharing the given client and detector.
func NewAnalyzer(client Client, detector ToolDetector, logger *log.Logger) *Analyzer {
	if logger == nil {
		logger = log.Default()
	}
	return &Analyzer{
		client:   client,
		enricher: NewEnricher(client, logger, 1),
		detector: detector,
		logger:   logger,
	}
}

// Analyze fetches and enriches the repository identified by owner/repo.
// Failure to fetch the repository itself is fatal; enrichment and
// detection sub-failures degrade individual fields as usual.
func (a *Analyzer) Analyze(ctx context.Context, owner, repo string) (*AnalysisResult, error) {
	r, err := a.client.GetRepository(ctx, owner, repo)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCodeNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, err, "repository %s/%s not found", owner, repo)
		}
		return nil, err
	}

	profile := a.enricher.Enrich(ctx, NewCandidate(*r))
	profile.BuildTools, profile.Frameworks = a.detector.Detect(ctx, owner, repo)

	return &profile, nil
}
