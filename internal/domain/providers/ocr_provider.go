package providers

import "context"

// OCRResult is the raw output of a text recognition call
type OCRResult struct {
	// Text is the full recognized text, empty when nothing was detected
	Text string

	// Confidence is the average per-token confidence in [0,1]
	Confidence float64
}

// OCRProvider is the external text recognition boundary. Callers must
// treat any error identically to an empty result: recognition quality
// degrades, the request does not fail.
type OCRProvider interface {
	Recognize(ctx context.Context, image []byte) (*OCRResult, error)
}
