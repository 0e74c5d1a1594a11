package ocr

import (
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/stretchr/testify/assert"
)

func annotation(text string, confidence float32) *visionpb.EntityAnnotation {
	return &visionpb.EntityAnnotation{Description: text, Confidence: confidence}
}

func TestResultFromAnnotations(t *testing.T) {
	result := resultFromAnnotations([]*visionpb.EntityAnnotation{
		annotation("Ethiopia Yirgacheffe\nWashed", 0),
		annotation("Ethiopia", 0.9),
		annotation("Yirgacheffe", 0.7),
		annotation("Washed", 0.8),
	})

	assert.Equal(t, "Ethiopia Yirgacheffe\nWashed", result.Text)
	assert.InDelta(t, 0.8, result.Confidence, 0.0001)
}

func TestResultFromAnnotations_Empty(t *testing.T) {
	result := resultFromAnnotations(nil)

	assert.Empty(t, result.Text)
	assert.Zero(t, result.Confidence)
}

func TestResultFromAnnotations_NoTokenConfidence(t *testing.T) {
	result := resultFromAnnotations([]*visionpb.EntityAnnotation{
		annotation("Nyeri AA", 0),
		annotation("Nyeri", 0),
		annotation("AA", 0),
	})

	assert.Equal(t, "Nyeri AA", result.Text)
	assert.InDelta(t, defaultConfidence, result.Confidence, 0.0001)
}

func TestResultFromAnnotations_FullTextOnly(t *testing.T) {
	result := resultFromAnnotations([]*visionpb.EntityAnnotation{
		annotation("Geisha", 0),
	})

	assert.Equal(t, "Geisha", result.Text)
	assert.InDelta(t, defaultConfidence, result.Confidence, 0.0001)
}
