package runner

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srcmap/evalkit/internal/apperr"
	"github.com/srcmap/evalkit/internal/dataset"
	"github.com/srcmap/evalkit/internal/judge"
	"github.com/srcmap/evalkit/internal/srcmap"
)

type stubJudge struct {
	scores judge.Scores
	err    error
	calls  int
}

func (s *stubJudge) Name() string { return "stub" }
func (s *stubJudge) ScoreCase(context.Context, dataset.TestCase, []srcmap.Card) (judge.Scores, error) {
	s.calls++
	return s.scores, s.err
}

func testCases() []dataset.TestCase {
	return []dataset.TestCase{
		{ID: "billing", Query: "how does billing work", ExpectedFlows: []string{"Billing"}},
		{ID: "shipping", Query: "how does shipping work", ExpectedFlows: []string{"Shipping"}},
	}
}

func searchServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"title": "t", "flow": "Billing", "content": "body"}], "cacheHit": true}`))
	}))
}

func TestRunScoresEachCase(t *testing.T) {
	srv := searchServer(t)
	defer srv.Close()

	r := New(srcmap.NewClient(srv.URL), nil, Config{Limit: 10})
	result, err := r.Run(context.Background(), testCases())
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 2)

	billing := result.Outcomes[0]
	assert.InDelta(t, 1.0, billing.Deterministic.FlowHitRate, 1e-9)
	assert.True(t, billing.CacheHit)
	assert.Nil(t, billing.Judge)

	shipping := result.Outcomes[1]
	assert.InDelta(t, 0.0, shipping.Deterministic.FlowHitRate, 1e-9)
	assert.Equal(t, []string{"shipping"}, shipping.Deterministic.MissingFlows)
}

func TestRunAbortsOnProtocolFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) > 1 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	r := New(srcmap.NewClient(srv.URL), nil, Config{Limit: 10})
	_, err := r.Run(context.Background(), testCases())

	var pe *apperr.ProtocolError
	require.ErrorAs(t, err, &pe)
}

func TestRunAbortsOnTransportFailure(t *testing.T) {
	r := New(srcmap.NewClient("http://127.0.0.1:1"), nil, Config{Limit: 10})
	_, err := r.Run(context.Background(), testCases()[:1])

	var te *apperr.TransportError
	require.ErrorAs(t, err, &te)
}

func TestRunJudgeFailureIsNotFatal(t *testing.T) {
	srv := searchServer(t)
	defer srv.Close()

	j := &stubJudge{err: errors.New("quota exceeded")}
	r := New(srcmap.NewClient(srv.URL), j, Config{Limit: 10})

	result, err := r.Run(context.Background(), testCases())
	require.NoError(t, err)
	assert.Equal(t, 2, j.calls)
	for _, o := range result.Outcomes {
		assert.Nil(t, o.Judge)
	}
}

func TestRunJudgePartialScoresKept(t *testing.T) {
	srv := searchServer(t)
	defer srv.Close()

	precision := 0.8
	j := &stubJudge{scores: judge.Scores{ContextPrecision: &precision}, err: errors.New("recall timed out")}
	r := New(srcmap.NewClient(srv.URL), j, Config{Limit: 10})

	result, err := r.Run(context.Background(), testCases()[:1])
	require.NoError(t, err)

	require.NotNil(t, result.Outcomes[0].Judge)
	assert.InDelta(t, 0.8, *result.Outcomes[0].Judge.ContextPrecision, 1e-9)
	assert.Nil(t, result.Outcomes[0].Judge.ContextRecall)
}

func TestMeasurements(t *testing.T) {
	srv := searchServer(t)
	defer srv.Close()

	r := New(srcmap.NewClient(srv.URL), nil, Config{Limit: 10})
	result, err := r.Run(context.Background(), testCases())
	require.NoError(t, err)

	ms := result.Measurements()
	require.Len(t, ms, 2)
	assert.Equal(t, "how does billing work", ms[0].Query)
	assert.True(t, ms[0].CacheHit)
	assert.Equal(t, 1, ms[0].ResultCount)
	// One card with four characters of content floors to the 1-token minimum.
	assert.Equal(t, 1, ms[0].ToolTokens)
	assert.GreaterOrEqual(t, ms[0].LatencyMS, int64(0))
}
