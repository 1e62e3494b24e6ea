package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"seqentropy/domain/core"
	"seqentropy/domain/sequence"
	"seqentropy/internal/batch"
	"seqentropy/internal/complexity"
	"seqentropy/internal/errors"
	"seqentropy/internal/surrogate"
	"seqentropy/ports"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEstimators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"estimators": complexity.Kinds()})
}

func (s *Server) handleComplexity(w http.ResponseWriter, r *http.Request) {
	var req ComplexityRequest
	if !s.decode(w, r, &req, s.bodyLimit(1)) {
		return
	}
	if len(req.Sequence) > s.config.MaxLength {
		s.writeError(w, http.StatusRequestEntityTooLarge, errors.Newf(errors.CodeInvalidInput,
			"sequence has %d symbols, limit is %d", len(req.Sequence), s.config.MaxLength))
		return
	}
	estimators, err := s.estimators(req.Estimators)
	if err != nil {
		s.fail(w, err)
		return
	}

	resp := ComplexityResponse{
		RunID:       core.NewRunID(),
		N:           len(req.Sequence),
		Fingerprint: core.ComputeSequenceHash(req.Sequence),
		Results:     make(map[string]sequence.Complexity, len(estimators)),
	}
	for _, est := range estimators {
		res, err := est.Estimate(req.Sequence)
		if err != nil {
			s.fail(w, err)
			return
		}
		if !req.Factors {
			res.Factors = nil
		}
		resp.Results[est.Name()] = res
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSurrogate(w http.ResponseWriter, r *http.Request) {
	var req SurrogateRequest
	if !s.decode(w, r, &req, s.bodyLimit(1)) {
		return
	}
	if len(req.Sequence) > s.config.MaxLength {
		s.writeError(w, http.StatusRequestEntityTooLarge, errors.Newf(errors.CodeInvalidInput,
			"sequence has %d symbols, limit is %d", len(req.Sequence), s.config.MaxLength))
		return
	}
	name := req.Estimator
	if name == "" {
		name = string(complexity.KindLZ76)
	}
	estimators, err := s.estimators([]string{name})
	if err != nil {
		s.fail(w, err)
		return
	}

	// no RunID: the same seed reproduces the same shuffles across requests
	cfg := s.config.Surrogate
	if req.Surrogates != nil {
		cfg.Surrogates = *req.Surrogates
	}
	if req.Seed != nil {
		cfg.Seed = *req.Seed
	}
	if cfg.Surrogates > s.config.MaxSurrogates {
		s.writeError(w, http.StatusRequestEntityTooLarge, errors.Newf(errors.CodeInvalidInput,
			"%d surrogates requested, limit is %d", cfg.Surrogates, s.config.MaxSurrogates))
		return
	}
	tester, err := surrogate.NewTester(s.rng, cfg)
	if err != nil {
		s.fail(w, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}
	res, err := tester.Test(r.Context(), estimators[0], "request", req.Sequence)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !s.decode(w, r, &req, s.bodyLimit(s.config.MaxBatch)) {
		return
	}
	if len(req.Sequences) > s.config.MaxBatch {
		s.writeError(w, http.StatusRequestEntityTooLarge, errors.Newf(errors.CodeInvalidInput,
			"batch has %d sequences, limit is %d", len(req.Sequences), s.config.MaxBatch))
		return
	}
	for i, seq := range req.Sequences {
		if len(seq.Codes) > s.config.MaxLength {
			s.writeError(w, http.StatusRequestEntityTooLarge, errors.Newf(errors.CodeInvalidInput,
				"sequence %d has %d symbols, limit is %d", i, len(seq.Codes), s.config.MaxLength))
			return
		}
		if seq.Key == "" {
			req.Sequences[i].Key = core.SequenceKey(fmt.Sprintf("seq_%d", i+1))
		}
	}
	estimators, err := s.estimators(req.Estimators)
	if err != nil {
		s.fail(w, err)
		return
	}

	runner := batch.NewRunner(estimators, s.config.Workers, batch.WithFactors(req.Factors), batch.WithLogger(s.logger))
	report, err := runner.Run(r.Context(), req.Sequences)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// estimators resolves names into estimators; no names means all of them
func (s *Server) estimators(names []string) ([]ports.ComplexityEstimator, error) {
	kinds := complexity.Kinds()
	if len(names) > 0 {
		kinds = kinds[:0:0]
		for _, n := range names {
			k, err := complexity.ParseKind(n)
			if err != nil {
				return nil, err
			}
			kinds = append(kinds, k)
		}
	}
	out := make([]ports.ComplexityEstimator, 0, len(kinds))
	for _, k := range kinds {
		est, err := complexity.NewEstimator(k, s.config.EstimatorOptions...)
		if err != nil {
			return nil, err
		}
		out = append(out, est)
	}
	return out, nil
}

// Body size bounds: a symbol costs at most 20 digits plus separators, and
// each sequence gets a fixed allowance for keys and other fields.
const (
	maxSymbolBytes   = 24
	sequenceOverhead = 64 << 10
	maxBodyBytes     = 256 << 20
)

// bodyLimit returns the largest body that can carry sequences of at most
// MaxLength symbols each
func (s *Server) bodyLimit(sequences int) int64 {
	limit := int64(sequences) * (int64(s.config.MaxLength)*maxSymbolBytes + sequenceOverhead)
	if limit > maxBodyBytes {
		return maxBodyBytes
	}
	return limit
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}, limit int64) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, errors.Newf(errors.CodeInvalidInput,
				"request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		s.writeError(w, http.StatusBadRequest, errors.WithCode(errors.CodeInvalidInput,
			fmt.Errorf("malformed request body: %w", err)))
		return false
	}
	return true
}

// fail maps an error code onto an HTTP status
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeEmptyInput:
		status = http.StatusUnprocessableEntity
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed: %v", err)
	}
	s.writeError(w, status, err)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: errors.GetCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
