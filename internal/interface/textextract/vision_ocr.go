package textextract

import (
	"context"
	"encoding/base64"
	"fmt"

	"ticketscan-service/pkg/logger"

	"golang.org/x/oauth2"
	vision "google.golang.org/api/vision/v1"
	"google.golang.org/api/option"
)

// VisionOCR extracts text from ticket images through the Google Vision API
type VisionOCR struct {
	service *vision.Service
	logger  logger.Logger
}

// NewVisionOCR creates a new Vision OCR client
func NewVisionOCR(ctx context.Context, tokenSource oauth2.TokenSource, logger logger.Logger) (*VisionOCR, error) {
	service, err := vision.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &VisionOCR{
		service: service,
		logger:  logger,
	}, nil
}

// ExtractText runs TEXT_DETECTION over the image bytes
func (v *VisionOCR) ExtractText(ctx context.Context, data []byte, filename string) (string, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{
			{
				Image: &vision.Image{
					Content: base64.StdEncoding.EncodeToString(data),
				},
				Features: []*vision.Feature{
					{Type: "TEXT_DETECTION"},
				},
			},
		},
	}

	resp, err := v.service.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("vision annotate request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return "", fmt.Errorf("vision returned no responses for %s", filename)
	}

	result := resp.Responses[0]
	if result.Error != nil {
		return "", fmt.Errorf("vision could not process %s: %s", filename, result.Error.Message)
	}

	if result.FullTextAnnotation == nil {
		v.logger.Warn("Vision found no text in image", "filename", filename)
		return "", nil
	}

	v.logger.Debug("Vision text extracted", "filename", filename, "chars", len(result.FullTextAnnotation.Text))
	return result.FullTextAnnotation.Text, nil
}
