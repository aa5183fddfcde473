package enrichment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lambdatrip/internal/logger"
	"lambdatrip/internal/modules/landmark"
)

const visionTimeout = 30 * time.Second

// Service runs the landmark enrichment stage.
type Service struct {
	vision     landmark.VisionProvider
	resolver   *landmark.Resolver
	aggregator *Aggregator
	log        *logger.Logger
	now        func() time.Time
}

func NewService(vision landmark.VisionProvider, resolver *landmark.Resolver, aggregator *Aggregator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		vision:     vision,
		resolver:   resolver,
		aggregator: aggregator,
		log:        log.With("component", "enrichment.Service"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Enrich detects the landmark in imageURL and merges whatever provider data is available.
// It fails only on missing input, a missing landmark, or a vision transport error.
func (s *Service) Enrich(ctx context.Context, imageURL string) (*Record, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, ErrNoImage
	}
	if s.vision == nil {
		return nil, ErrVisionUnavailable
	}

	vctx, cancel := context.WithTimeout(ctx, visionTimeout)
	det, err := s.vision.DetectLandmarks(vctx, imageURL)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("detect landmarks: %w", err)
	}

	res, err := s.resolver.Resolve(ctx, det)
	if err != nil {
		return nil, err
	}
	s.log.Info("landmark resolved", "landmark", res.Candidate.Name, "source", res.Source,
		"city", value(res.Location.City), "country", value(res.Location.Country))

	merged := s.aggregator.Fetch(ctx, res.Location, res.Candidate.Coordinates)

	return &Record{
		Landmark:       res.Candidate,
		Location:       res.Location,
		LocationSource: res.Source,
		Weather:        merged.Weather,
		CountryInfo:    merged.Country,
		TravelAdvisory: merged.Advisory,
		ImageURL:       imageURL,
		CreatedAt:      s.now(),
	}, nil
}
