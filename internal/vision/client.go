// README: Cloud Vision adapter; landmark + label detection normalized into landmark.Detection.
package vision

import (
	"context"
	"fmt"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"lambdatrip/internal/logger"
	"lambdatrip/internal/modules/landmark"
	"lambdatrip/internal/types"
)

const (
	maxLandmarks = 5
	maxLabels    = 10
)

// Client implements landmark.VisionProvider on top of ImageAnnotatorClient.
type Client struct {
	annotator *vision.ImageAnnotatorClient
	log       *logger.Logger
}

func NewClient(ctx context.Context, log *logger.Logger, opts ...option.ClientOption) (*Client, error) {
	if log == nil {
		log = logger.Nop()
	}
	c, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	return &Client{annotator: c, log: log.With("service", "vision.Client")}, nil
}

func (c *Client) Close() error {
	if c == nil || c.annotator == nil {
		return nil
	}
	return c.annotator.Close()
}

// DetectLandmarks asks for up to 5 landmarks and 10 labels for a remote image.
func (c *Client) DetectLandmarks(ctx context.Context, imageURL string) (*landmark.Detection, error) {
	req := &visionpb.BatchAnnotateImagesRequest{Requests: []*visionpb.AnnotateImageRequest{annotateRequest(imageURL)}}
	resp, err := c.annotator.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	if resp == nil || len(resp.Responses) == 0 {
		return &landmark.Detection{}, nil
	}
	det, err := detectionFromResponse(resp.Responses[0])
	if err != nil {
		return nil, err
	}
	c.log.Info("vision detection", "landmarks", len(det.Candidates), "labels", len(det.Labels))
	return det, nil
}

func annotateRequest(imageURL string) *visionpb.AnnotateImageRequest {
	return &visionpb.AnnotateImageRequest{
		Image: &visionpb.Image{Source: &visionpb.ImageSource{ImageUri: imageURL}},
		Features: []*visionpb.Feature{
			{Type: visionpb.Feature_LANDMARK_DETECTION, MaxResults: maxLandmarks},
			{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: maxLabels},
		},
	}
}

// detectionFromResponse keeps annotation order as returned by the API.
func detectionFromResponse(r *visionpb.AnnotateImageResponse) (*landmark.Detection, error) {
	det := &landmark.Detection{}
	if r == nil {
		return det, nil
	}
	if r.Error != nil && r.Error.Message != "" {
		return nil, fmt.Errorf("vision annotate error: %s", r.Error.Message)
	}
	for _, a := range r.LandmarkAnnotations {
		if a == nil {
			continue
		}
		name := strings.TrimSpace(a.Description)
		det.Candidates = append(det.Candidates, landmark.Candidate{
			Name:        name,
			Confidence:  float64(a.Score),
			Description: name,
			Coordinates: firstLatLng(a.Locations),
		})
	}
	for _, a := range r.LabelAnnotations {
		if a == nil {
			continue
		}
		det.Labels = append(det.Labels, landmark.Label{Description: a.Description, Score: float64(a.Score)})
	}
	return det, nil
}

func firstLatLng(locs []*visionpb.LocationInfo) *types.Point {
	if len(locs) == 0 || locs[0] == nil || locs[0].LatLng == nil {
		return nil
	}
	ll := locs[0].LatLng
	return &types.Point{Lat: ll.Latitude, Lng: ll.Longitude}
}
