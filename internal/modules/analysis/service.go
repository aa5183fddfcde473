package analysis

import (
	"context"
	"time"

	"lambdatrip/internal/logger"
	"lambdatrip/internal/modules/enrichment"
)

const defaultGenerateTimeout = 30 * time.Second

// TextGenerator completes a prompt with free-form model text.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service runs the narrative analysis stage.
type Service struct {
	gen     TextGenerator
	log     *logger.Logger
	timeout time.Duration
}

// NewService builds a Service. gen may be nil; every analysis is then the degraded default.
func NewService(gen TextGenerator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{gen: gen, log: log.With("component", "analysis.Service"), timeout: defaultGenerateTimeout}
}

// Analyze never fails on model problems: transport errors and unparseable
// replies both degrade to the fixed fallback analysis.
func (s *Service) Analyze(ctx context.Context, rec *enrichment.Record) (*Result, error) {
	if isEmptyRecord(rec) {
		return nil, ErrNoAnalysisData
	}

	a, degradedResult := s.generate(ctx, rec)
	return &Result{
		Analysis:        a,
		Recommendations: Derive(rec, a),
		Degraded:        degradedResult,
	}, nil
}

func (s *Service) generate(ctx context.Context, rec *enrichment.Record) (TravelAnalysis, bool) {
	if s.gen == nil {
		s.log.Warn("text generator not configured, using degraded analysis", "landmark", rec.Landmark.Name)
		return degraded(technicalIssuesSummary), true
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.gen.Complete(ctx, BuildPrompt(rec))
	if err != nil {
		s.log.Error("text generation failed", "landmark", rec.Landmark.Name, "error", err)
		return degraded(technicalIssuesSummary), true
	}
	a, ok := tryParse(raw)
	if !ok {
		s.log.Warn("model reply not parseable, using fallback", "landmark", rec.Landmark.Name, "chars", len(raw))
		return Fallback(raw), true
	}
	return a, false
}
