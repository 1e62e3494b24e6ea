package api

import (
	"seqentropy/domain/core"
	"seqentropy/domain/sequence"
)

// ComplexityRequest asks for one or more estimators over one sequence
type ComplexityRequest struct {
	Sequence   sequence.Sequence `json:"sequence"`
	Estimators []string          `json:"estimators,omitempty"`
	Factors    bool              `json:"factors,omitempty"`
}

// ComplexityResponse carries one result per requested estimator
type ComplexityResponse struct {
	RunID       core.RunID                     `json:"run_id"`
	N           int                            `json:"n"`
	Fingerprint core.SequenceHash              `json:"fingerprint"`
	Results     map[string]sequence.Complexity `json:"results"`
}

// SurrogateRequest asks for a shuffle-surrogate test
type SurrogateRequest struct {
	Sequence   sequence.Sequence `json:"sequence"`
	Estimator  string            `json:"estimator,omitempty"`
	Surrogates *int              `json:"surrogates,omitempty"`
	Seed       *int64            `json:"seed,omitempty"`
}

// BatchRequest submits many sequences at once
type BatchRequest struct {
	Sequences  []sequence.Named `json:"sequences"`
	Estimators []string         `json:"estimators,omitempty"`
	Factors    bool             `json:"factors,omitempty"`
}

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
