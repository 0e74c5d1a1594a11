package ocr

import (
	"context"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"github.com/kafelab/coffee-lab-backend/internal/domain/providers"
	"github.com/kafelab/coffee-lab-backend/pkg/config"
	apperrors "github.com/kafelab/coffee-lab-backend/pkg/errors"
)

// defaultConfidence is reported when the response carries no per-token
// confidence values
const defaultConfidence = 0.8

// GoogleVisionProvider implements OCRProvider using Google Cloud Vision
// text detection
type GoogleVisionProvider struct {
	client *vision.ImageAnnotatorClient
}

// NewGoogleVisionProvider creates a Vision-backed OCR provider. Without
// an explicit credentials file it falls back to application default
// credentials.
func NewGoogleVisionProvider(ctx context.Context, cfg *config.OCRConfig) (*GoogleVisionProvider, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to create vision client", err)
	}

	return &GoogleVisionProvider{client: client}, nil
}

// Recognize runs text detection on the raw image bytes via a
// single-image batch annotate call.
func (p *GoogleVisionProvider) Recognize(ctx context.Context, image []byte) (*providers.OCRResult, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:    &visionpb.Image{Content: image},
			Features: []*visionpb.Feature{{Type: visionpb.Feature_TEXT_DETECTION}},
		}},
	}

	resp, err := p.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, apperrors.NewExternalError("vision text detection failed", err)
	}
	if len(resp.GetResponses()) == 0 {
		return &providers.OCRResult{}, nil
	}

	annotated := resp.GetResponses()[0]
	if annotated.GetError().GetMessage() != "" {
		return nil, apperrors.NewExternalError("vision annotate error: "+annotated.GetError().GetMessage(), nil)
	}

	return resultFromAnnotations(annotated.GetTextAnnotations()), nil
}

// resultFromAnnotations maps the Vision response into an OCRResult.
// The first annotation is the full recognized text; the remainder are
// individual tokens whose confidences are averaged.
func resultFromAnnotations(annotations []*visionpb.EntityAnnotation) *providers.OCRResult {
	if len(annotations) == 0 {
		return &providers.OCRResult{}
	}

	var sum float64
	var n int
	for _, annotation := range annotations[1:] {
		if c := annotation.GetConfidence(); c > 0 {
			sum += float64(c)
			n++
		}
	}

	confidence := defaultConfidence
	if n > 0 {
		confidence = sum / float64(n)
	}

	return &providers.OCRResult{
		Text:       annotations[0].GetDescription(),
		Confidence: confidence,
	}
}

// Close releases the underlying client
func (p *GoogleVisionProvider) Close() error {
	return p.client.Close()
}
