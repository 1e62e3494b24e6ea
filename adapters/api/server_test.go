package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqentropy/adapters/rng"
	"seqentropy/internal"
	"seqentropy/internal/complexity"
	"seqentropy/internal/surrogate"
)

func newTestServer(opts ...complexity.Option) *Server {
	return NewServer(Config{
		EstimatorOptions: opts,
		Surrogate:        surrogate.Config{Surrogates: 19, Seed: 7},
		Workers:          2,
		MaxLength:        64,
		MaxBatch:         3,
		MaxSurrogates:    50,
		RequestTimeout:   5 * time.Second,
	}, rng.New(), internal.NewLogger(internal.LogLevelError))
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestEstimatorsList(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/estimators", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{"lz76", "lz77"}, decodeBody(t, rec)["estimators"])
}

func TestComplexityBothEstimators(t *testing.T) {
	rec := post(t, newTestServer(), "/v1/complexity", `{"sequence":[0,0,0,1,1,0,1,0,0,1,0,0,0,1,0,1]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		N       int `json:"n"`
		Results map[string]struct {
			Count      int              `json:"count"`
			Normalized *float64         `json:"normalized"`
			Factors    []map[string]int `json:"factors"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 16, resp.N)
	assert.Equal(t, 6, resp.Results["lz76"].Count)
	assert.Equal(t, 9, resp.Results["lz77"].Count)
	require.NotNil(t, resp.Results["lz76"].Normalized)
	assert.InDelta(t, 6*4.0/16, *resp.Results["lz76"].Normalized, 1e-12)
	assert.Empty(t, resp.Results["lz76"].Factors)
}

func TestComplexitySingleEstimatorWithFactors(t *testing.T) {
	rec := post(t, newTestServer(), "/v1/complexity", `{"sequence":[0,1,0,1,0,1,0,1],"estimators":["LZ77"],"factors":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ComplexityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, []int{0, 1, 2, 4}, resp.Results["lz77"].Factors.Boundaries())
}

func TestComplexityEmptySequenceHasNullNormalized(t *testing.T) {
	rec := post(t, newTestServer(), "/v1/complexity", `{"sequence":[],"estimators":["lz76"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	results := decodeBody(t, rec)["results"].(map[string]interface{})
	lz76 := results["lz76"].(map[string]interface{})
	assert.Equal(t, float64(0), lz76["count"])
	assert.Nil(t, lz76["normalized"])
}

func TestComplexityStrictEmptyIsRejected(t *testing.T) {
	rec := post(t, newTestServer(complexity.WithStrict(true)), "/v1/complexity", `{"sequence":[]}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "EMPTY_INPUT", decodeBody(t, rec)["code"])
}

func TestComplexityRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"not json", `{"sequence":`, http.StatusBadRequest},
		{"non-integer symbol", `{"sequence":[0,1.5]}`, http.StatusBadRequest},
		{"string symbol", `{"sequence":["a"]}`, http.StatusBadRequest},
		{"unknown field", `{"seq":[0]}`, http.StatusBadRequest},
		{"unknown estimator", `{"sequence":[0],"estimators":["lz78"]}`, http.StatusBadRequest},
		{"too long", `{"sequence":[` + repeat("0,", 64) + `0]}`, http.StatusRequestEntityTooLarge},
	}
	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s, "/v1/complexity", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, "INVALID_INPUT", decodeBody(t, rec)["code"])
		})
	}
}

func TestSurrogate(t *testing.T) {
	s := newTestServer()
	body := `{"sequence":[0,1,0,1,0,1,0,1,0,1,0,1,0,1,0,1,0,1,0,1,0,1,0,1,0,1,0,1,0,1,0,1],"estimator":"lz77","surrogates":9}`

	rec := post(t, s, "/v1/surrogate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decodeBody(t, rec)
	assert.Equal(t, "lz77", out["estimator"])
	assert.Equal(t, float64(9), out["surrogates"])
	assert.Equal(t, float64(32), out["n"])

	again := decodeBody(t, post(t, s, "/v1/surrogate", body))
	assert.Equal(t, out["p_value"], again["p_value"])
}

func TestSurrogateRejectsNegativeCount(t *testing.T) {
	rec := post(t, newTestServer(), "/v1/surrogate", `{"sequence":[0,1],"surrogates":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSurrogateCountIsBounded(t *testing.T) {
	s := newTestServer()

	for _, body := range []string{
		`{"sequence":[0,1,0,1],"surrogates":51}`,
		`{"sequence":[0,1,0,1],"surrogates":10000000000000}`,
	} {
		rec := post(t, s, "/v1/surrogate", body)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, body)
		assert.Equal(t, "INVALID_INPUT", decodeBody(t, rec)["code"])
	}

	rec := post(t, s, "/v1/surrogate", `{"sequence":[0,1,0,1],"surrogates":50}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestSurrogateDefaultCountAboveLimit(t *testing.T) {
	s := NewServer(Config{
		Surrogate:     surrogate.Config{Surrogates: 99},
		MaxLength:     64,
		MaxBatch:      1,
		MaxSurrogates: 10,
	}, rng.New(), internal.NewLogger(internal.LogLevelError))

	rec := post(t, s, "/v1/surrogate", `{"sequence":[0,1,0,1]}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestOversizedBodyIsRejectedWhileReading(t *testing.T) {
	s := newTestServer()
	padding := strings.Repeat(" ", int(s.bodyLimit(1))+1)

	rec := post(t, s, "/v1/complexity", `{"sequence":[0,1]`+padding+`}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decodeBody(t, rec)["code"])

	rec = post(t, s, "/v1/complexity", `{"sequence":[0,1]`+strings.Repeat(" ", 1024)+`}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	padding = strings.Repeat(" ", int(s.bodyLimit(3))+1)
	rec = post(t, s, "/v1/batch", `{"sequences":[{"codes":[0]}]`+padding+`}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestBatch(t *testing.T) {
	body := `{"sequences":[{"key":"ks","codes":[0,0,0,1,1,0,1,0,0,1,0,0,0,1,0,1]},{"codes":[1,1,1,1]}]}`
	rec := post(t, newTestServer(), "/v1/batch", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report struct {
		RunID string `json:"run_id"`
		Items []struct {
			Key     string `json:"key"`
			Results map[string]struct {
				Count int `json:"count"`
			} `json:"results"`
		} `json:"items"`
		Summaries []map[string]interface{} `json:"summaries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.NotEmpty(t, report.RunID)
	require.Len(t, report.Items, 2)
	assert.Equal(t, "ks", report.Items[0].Key)
	assert.Equal(t, 6, report.Items[0].Results["lz76"].Count)
	assert.Equal(t, "seq_2", report.Items[1].Key)
	assert.Equal(t, 2, report.Items[1].Results["lz76"].Count)
	assert.Equal(t, 3, report.Items[1].Results["lz77"].Count)
	assert.Len(t, report.Summaries, 2)
}

func TestBatchLimits(t *testing.T) {
	s := newTestServer()

	rec := post(t, s, "/v1/batch", `{"sequences":[{"codes":[0]},{"codes":[0]},{"codes":[0]},{"codes":[0]}]}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = post(t, s, "/v1/batch", `{"sequences":[{"codes":[`+repeat("1,", 64)+`1]}]}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func repeat(s string, n int) string {
	return string(bytes.Repeat([]byte(s), n))
}
