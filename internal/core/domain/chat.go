package domain

import "math"

// DefaultTopK is the number of contexts requested per question.
const DefaultTopK = 3

// Answer is the result of an ask call.
type Answer struct {
	// Answer is the generated text.
	Answer string `json:"answer"`

	// Contexts are the ranked supporting documents.
	Contexts []Hit `json:"contexts"`

	// Model names the model that produced the answer, when reported.
	Model string `json:"model,omitempty"`
}

// ChatTurn is the live question with its answer and supporting contexts.
type ChatTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Contexts []Hit  `json:"contexts"`
}

// AverageScore returns the arithmetic mean of the context scores.
// It reports false when there are no contexts or the mean is not finite.
func (t ChatTurn) AverageScore() (float64, bool) {
	return MeanScore(t.Contexts)
}

// MeanScore returns the arithmetic mean of the hit scores.
func MeanScore(hits []Hit) (float64, bool) {
	if len(hits) == 0 {
		return 0, false
	}
	var sum float64
	for _, h := range hits {
		sum += h.Score
	}
	mean := sum / float64(len(hits))
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return 0, false
	}
	return mean, true
}
