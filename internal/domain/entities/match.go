package entities

// MatchCandidate is one scored catalog entry produced by a matching call.
// Confidence is a heuristic normalization of the score against the best
// possible score for the keyword count, not a probability.
type MatchCandidate struct {
	Coffee          *CoffeeBean `json:"coffee"`
	Score           int         `json:"score"`
	Confidence      float64     `json:"confidence"`
	MatchedKeywords []string    `json:"matched_keywords"`
}

// RecognitionResult is the full outcome of one recognize-and-search call
type RecognitionResult struct {
	Text      string           `json:"text"`
	Keywords  []string         `json:"keywords"`
	Results   []MatchCandidate `json:"results"`
	FromCache bool             `json:"from_cache"`
}
